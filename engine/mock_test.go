package engine

import (
	"context"
	"ludo/communication"
)

// mockComm replays scripted input lines and records what the driver writes.
type mockComm struct {
	input   []string
	written []string
	block   bool // block once the script runs out instead of closing
}

var _ communication.Communicator = &mockComm{}

func (m *mockComm) ReadLine(ctx context.Context) (string, error) {
	if len(m.input) == 0 {
		if m.block {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "", communication.ErrClosed
	}
	line := m.input[0]
	m.input = m.input[1:]
	return line, nil
}

func (m *mockComm) WriteLine(line string) error {
	m.written = append(m.written, line)
	return nil
}

func (m *mockComm) Close() error {
	return nil
}
