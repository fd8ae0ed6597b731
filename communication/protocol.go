package communication

import (
	"fmt"
	"ludo/game"
	"strconv"
	"strings"
)

// Protocol tokens.
const (
	Throw     = "<THROW>"
	NoMove    = "NA"
	Repeat    = "REPEAT"
	Separator = "<next>"
)

// Duck is the single roll sent after three sixes in a row; it allows no move.
const Duck = 0

// Startup holds the parameters of the first line of a match.
type Startup struct {
	PlayerID  int // 1 or 2
	TimeLimit int // seconds
	Mode      int // 0 selects red and yellow, anything else blue and green
}

func (s Startup) String() string {
	return fmt.Sprintf("%d %d %d", s.PlayerID, s.TimeLimit, s.Mode)
}

// ParseStartup parses "<player id> <time limit> <game mode>".
func ParseStartup(line string) (Startup, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return Startup{}, fmt.Errorf("%w: startup %q", game.ErrMalformed, line)
	}
	values := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return Startup{}, fmt.Errorf("%w: startup %q", game.ErrMalformed, line)
		}
		values[i] = v
	}
	s := Startup{PlayerID: values[0], TimeLimit: values[1], Mode: values[2]}
	if s.PlayerID != 1 && s.PlayerID != 2 {
		return Startup{}, fmt.Errorf("%w: player id %d", game.ErrProtocol, s.PlayerID)
	}
	return s, nil
}

// ParseRoll extracts the dice from a roll line. The first two tokens are a
// description and are ignored.
func ParseRoll(line string) ([]int, error) {
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return nil, fmt.Errorf("%w: roll %q", game.ErrMalformed, line)
	}
	dice := make([]int, 0, len(fields)-2)
	for _, f := range fields[2:] {
		die, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: roll %q", game.ErrMalformed, line)
		}
		dice = append(dice, die)
	}
	if len(dice) == 1 && dice[0] == Duck {
		return dice, nil
	}
	for _, die := range dice {
		if die < game.MinDie || die > game.MaxDie {
			return nil, fmt.Errorf("%w: %d in %q", game.ErrDieOutOfRange, die, line)
		}
	}
	return dice, nil
}

// FormatRoll renders a roll line announcing dice thrown by who.
func FormatRoll(who string, dice []int) string {
	parts := make([]string, 0, len(dice)+2)
	parts = append(parts, who, "ROLLED")
	for _, die := range dice {
		parts = append(parts, strconv.Itoa(die))
	}
	return strings.Join(parts, " ")
}

// ParseMoves parses a move line. NA tokens stand for no move; a trailing
// REPEAT means the mover plays again.
func ParseMoves(line string) (moves []game.Move, repeat bool, err error) {
	if strings.TrimSpace(line) == "" {
		return nil, false, fmt.Errorf("%w: empty move line", game.ErrMalformed)
	}
	tokens := strings.Split(line, Separator)
	for i := range tokens {
		tokens[i] = strings.TrimSpace(tokens[i])
	}
	if tokens[len(tokens)-1] == Repeat {
		repeat = true
		tokens = tokens[:len(tokens)-1]
	}
	for _, token := range tokens {
		if token == NoMove {
			continue
		}
		move, err := game.ParseMove(token)
		if err != nil {
			return nil, false, err
		}
		moves = append(moves, move)
	}
	return moves, repeat, nil
}

// FormatMoves renders moves for the channel, NA when there are none.
func FormatMoves(moves []game.Move, repeat bool) string {
	tokens := make([]string, 0, len(moves)+1)
	for _, m := range moves {
		tokens = append(tokens, m.String())
	}
	if len(tokens) == 0 {
		tokens = append(tokens, NoMove)
	}
	if repeat {
		tokens = append(tokens, Repeat)
	}
	return strings.Join(tokens, Separator)
}
