package engine

import "context"

// Engine plays one side of a match until it ends or the channel fails.
type Engine interface {
	Run(ctx context.Context) error
}

// Role is whose move the driver is waiting for.
type Role int

const (
	Deciding  Role = iota // our turn to throw and move
	Observing             // waiting for the opponent's report
)

func (r Role) String() string {
	if r == Deciding {
		return "deciding"
	}
	return "observing"
}
