package communication

import "context"

// Communicator abstracts the line channel to the external client.
type Communicator interface {
	// ReadLine blocks until the next line arrives or ctx is done.
	ReadLine(ctx context.Context) (string, error)
	WriteLine(line string) error
	Close() error
}
