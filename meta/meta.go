// meta/meta.go
package meta

// MaxTurns caps a refereed match so a stalled game still ends.
const MaxTurns = 1000

// TimeLimit is the per-read time limit, in seconds, handed to seated players.
const TimeLimit = 5

// DefaultSeed seeds the dice when no seed is given.
const DefaultSeed = 1

// SnapshotBuffer is the default capacity of a snapshot channel.
const SnapshotBuffer = 16
