package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

type StateHash uint64

// State is the board as seen by one side of a match: exactly two players, one
// of which is played locally.
type State struct {
	players [2]Player
	local   int
}

// NewState seats the color pair of the given game mode. playerID is the
// protocol's 1-based id of the local side.
func NewState(mode, playerID int) (*State, error) {
	if playerID != 1 && playerID != 2 {
		return nil, fmt.Errorf("%w: player id %d", ErrProtocol, playerID)
	}
	pair := ColorPair(mode)
	return &State{
		players: [2]Player{*NewPlayer(pair[0]), *NewPlayer(pair[1])},
		local:   playerID - 1,
	}, nil
}

// Player returns the player seated with the 1-based protocol id.
func (s *State) Player(playerID int) *Player {
	return &s.players[playerID-1]
}

func (s *State) Local() *Player {
	return &s.players[s.local]
}

func (s *State) Opponent() *Player {
	return &s.players[1-s.local]
}

// OpponentOf returns the player facing p.
func (s *State) OpponentOf(p *Player) *Player {
	if p == &s.players[0] {
		return &s.players[1]
	}
	return &s.players[0]
}

// PlayerOf returns the seated player with the given color.
func (s *State) PlayerOf(color Color) (*Player, error) {
	for i := range s.players {
		if s.players[i].color == color {
			return &s.players[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s is not playing", ErrUnknownCoin, color)
}

// Copy returns an independent copy of the state.
func (s *State) Copy() *State {
	cp := *s
	return &cp
}

// Winner returns the color of a player whose coins have all finished.
func (s *State) Winner() (Color, bool) {
	for i := range s.players {
		if s.players[i].HasWon() {
			return s.players[i].color, true
		}
	}
	return 0, false
}

// Hash fingerprints every coin position. Two sides mirroring the same match
// agree on it after every turn.
func (s *State) Hash() StateHash {
	hasher := fnv.New64a()
	for i := range s.players {
		p := &s.players[i]
		binary.Write(hasher, binary.LittleEndian, int64(p.color))
		for j := range p.coins {
			binary.Write(hasher, binary.LittleEndian, int64(p.coins[j].rel))
		}
	}
	return StateHash(hasher.Sum64())
}

// Position is a coin's location in both coordinate systems.
type Position struct {
	Rel int `json:"rel"`
	Abs int `json:"abs"`
}

// Snapshot is an immutable picture of the board handed to observers.
type Snapshot struct {
	Turn  int                 `json:"turn"`
	Mover Color               `json:"mover"`
	Moves []string            `json:"moves"`
	Coins map[CoinID]Position `json:"coins"`
	Hash  StateHash           `json:"hash"`
}

// Snapshot copies the coin positions out of the state.
func (s *State) Snapshot() Snapshot {
	coins := make(map[CoinID]Position, len(s.players)*CoinsPerPlayer)
	for i := range s.players {
		for _, c := range s.players[i].Coins() {
			coins[c.ID()] = Position{Rel: c.Rel(), Abs: c.Abs()}
		}
	}
	return Snapshot{Coins: coins, Hash: s.Hash()}
}
