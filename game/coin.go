package game

import (
	"fmt"
	"strconv"
)

// CoinID uniquely identifies a coin by its owner and index.
type CoinID struct {
	Color Color
	Index int
}

// String renders the id the way the protocol names coins, e.g. "R0".
func (id CoinID) String() string {
	return string(id.Color.Initial()) + strconv.Itoa(id.Index)
}

func (id CoinID) Valid() bool {
	return id.Color.Valid() && id.Index >= 0 && id.Index < CoinsPerPlayer
}

func (id CoinID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *CoinID) UnmarshalText(text []byte) error {
	parsed, err := ParseCoinID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseCoinID parses a coin name such as "Y3".
func ParseCoinID(s string) (CoinID, error) {
	if len(s) != 2 {
		return CoinID{}, fmt.Errorf("%w: %q", ErrUnknownCoin, s)
	}
	color, ok := ColorFromInitial(s[0])
	if !ok {
		return CoinID{}, fmt.Errorf("%w: %q", ErrUnknownCoin, s)
	}
	idx := int(s[1] - '0')
	if idx < 0 || idx >= CoinsPerPlayer {
		return CoinID{}, fmt.Errorf("%w: %q", ErrUnknownCoin, s)
	}
	return CoinID{Color: color, Index: idx}, nil
}

// Coin is a single piece. Its absolute position is cached and kept in step
// with the relative one by SetRelativePosition.
type Coin struct {
	id  CoinID
	rel int
	abs int
}

func NewCoin(id CoinID) Coin {
	return Coin{id: id, rel: Jail, abs: AbsJail}
}

func (c *Coin) ID() CoinID { return c.id }

// Rel returns the position relative to the owner's start (0-57).
func (c *Coin) Rel() int { return c.rel }

// Abs returns the position on the shared ring, or AbsJail / AbsHomeColumn.
func (c *Coin) Abs() int { return c.abs }

func (c *Coin) InJail() bool { return c.rel == Jail }

func (c *Coin) Finished() bool { return c.rel == Finish }

func (c *Coin) OnHomeColumn() bool { return c.rel >= HomeColumn && c.rel < Finish }

// SetRelativePosition moves the coin to pos. A finished coin stays finished.
func (c *Coin) SetRelativePosition(pos int) {
	if c.rel == Finish {
		return
	}
	c.rel = pos
	c.abs = c.RelativeToAbsolute(pos)
}

// Advance moves the coin die squares forward.
func (c *Coin) Advance(die int) {
	c.SetRelativePosition(c.rel + die)
}

// RelativeToAbsolute maps a position on this coin's path onto the shared ring.
func (c *Coin) RelativeToAbsolute(rel int) int {
	return RelativeToAbsolute(c.id.Color, rel)
}

// RelativeToAbsolute maps rel, relative to color's start, onto the shared ring.
// Every color's start is rotated by a quarter of the ring from the previous one.
func RelativeToAbsolute(color Color, rel int) int {
	switch {
	case rel == Jail:
		return AbsJail
	case rel >= HomeColumn:
		return AbsHomeColumn
	}
	// shift to 0 based before wrapping, then back
	return (rel-1+colorOffset*color.Index())%TrackSize + 1
}
