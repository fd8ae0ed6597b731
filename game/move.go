package game

import (
	"fmt"
	"strconv"
	"strings"
)

// MoveKind records which rule produced a move.
type MoveKind int

const (
	Reported MoveKind = iota // read from the channel, origin unknown
	OpenMove
	KillMove
	AdvanceMove
)

func (k MoveKind) String() string {
	switch k {
	case OpenMove:
		return "open"
	case KillMove:
		return "kill"
	case AdvanceMove:
		return "advance"
	default:
		return "reported"
	}
}

// Move advances one coin by one die.
type Move struct {
	Coin CoinID
	Die  int
	Kind MoveKind
}

// String renders the move as a protocol token, e.g. "R0_6".
func (m Move) String() string {
	return m.Coin.String() + "_" + strconv.Itoa(m.Die)
}

// ParseMove parses a single "<coin>_<die>" token.
func ParseMove(token string) (Move, error) {
	name, die, ok := strings.Cut(token, "_")
	if !ok {
		return Move{}, fmt.Errorf("%w: move token %q", ErrMalformed, token)
	}
	id, err := ParseCoinID(name)
	if err != nil {
		return Move{}, err
	}
	value, err := strconv.Atoi(die)
	if err != nil {
		return Move{}, fmt.Errorf("%w: move token %q", ErrMalformed, token)
	}
	if value < MinDie || value > MaxDie {
		return Move{}, fmt.Errorf("%w: %d in %q", ErrDieOutOfRange, value, token)
	}
	return Move{Coin: id, Die: value}, nil
}

// Kill pairs a coin that can move with the opponent coin it would capture.
type Kill struct {
	Killer    CoinID
	Target    CoinID
	TargetRel int
}

// Outcome summarises the effect of applying a list of moves.
type Outcome struct {
	Killed   []CoinID // opponent coins sent back to jail
	Finished []CoinID // own coins that reached the finish
}

// GrantsRepeat reports whether the outcome earns another turn under the local
// rules: capturing a coin or bringing one home.
func (o Outcome) GrantsRepeat() bool {
	return len(o.Killed) > 0 || len(o.Finished) > 0
}

func (o *Outcome) merge(other Outcome) {
	o.Killed = append(o.Killed, other.Killed...)
	o.Finished = append(o.Finished, other.Finished...)
}
