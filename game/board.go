package game

// Board geometry. Positions are relative to a player's own starting square.
const (
	Jail       = 0  // still in the yard
	TrackSize  = 52 // squares on the shared ring
	HomeColumn = 52 // first square of the home column
	Finish     = 57 // last square of the home column

	// Sentinels returned by the relative to absolute transform.
	AbsJail       = 0
	AbsHomeColumn = -1

	CoinsPerPlayer = 4
	MinDie         = 1
	MaxDie         = 6

	// rotation between consecutive colors' starting squares
	colorOffset = TrackSize / NumColors
)

// Starting squares and star squares.
var safeSquares = map[int]bool{
	1: true, 9: true, 14: true, 22: true,
	27: true, 35: true, 40: true, 48: true,
}

// IsSafe reports whether a coin standing on the relative position rel can not
// be sent back to jail. Safe squares are spaced by the color rotation, so the
// answer is the same whichever color stands there.
func IsSafe(rel int) bool {
	if rel >= HomeColumn && rel <= Finish {
		return true
	}
	return safeSquares[rel]
}

// IsOpeningDie reports whether die lets a coin leave jail.
func IsOpeningDie(die int) bool {
	return die == 1 || die == 6
}
