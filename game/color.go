package game

import (
	"fmt"
	"slices"
)

// Color identifies a player. The numeric value is the color's position in the
// board rotation, which fixes where its coins enter the shared track.
type Color int

const (
	Red Color = iota
	Green
	Yellow
	Blue
)

const NumColors = 4

var colorNames = []string{"RED", "GREEN", "YELLOW", "BLUE"}

var colorInitials = []byte{'R', 'G', 'Y', 'B'}

func (c Color) Valid() bool {
	return c >= Red && c <= Blue
}

// Index returns the color's rotation index (0-3).
func (c Color) Index() int {
	return int(c)
}

func (c Color) Initial() byte {
	if !c.Valid() {
		return '?'
	}
	return colorInitials[c]
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", int(c))
	}
	return colorNames[c]
}

// ColorFromInitial looks up a color by the initial used in coin identities.
func ColorFromInitial(initial byte) (Color, bool) {
	idx := slices.Index(colorInitials, initial)
	if idx < 0 {
		return 0, false
	}
	return Color(idx), true
}

// ColorPair returns the two colors playing in the given game mode. Mode 0
// seats RED against YELLOW, every other mode seats BLUE against GREEN.
func ColorPair(mode int) [2]Color {
	if mode == 0 {
		return [2]Color{Red, Yellow}
	}
	return [2]Color{Blue, Green}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
