package communication

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// ErrClosed is returned once the other end has closed the channel.
var ErrClosed = errors.New("channel closed")

type Option func(sc *StreamCommunicator)

func WithLogger(logger zerolog.Logger) Option {
	return func(sc *StreamCommunicator) {
		sc.log = logger
	}
}

// StreamCommunicator exchanges newline terminated lines over a reader and a
// writer, typically stdin and stdout. Lines are read on a background
// goroutine so that a pending read can be abandoned.
type StreamCommunicator struct {
	r       io.Reader
	w       io.Writer
	lines   chan string
	done    chan struct{}
	readErr error // set before lines is closed
	mutex   sync.Mutex
	once    sync.Once
	log     zerolog.Logger
}

var _ Communicator = &StreamCommunicator{}

func NewStreamCommunicator(r io.Reader, w io.Writer, options ...Option) *StreamCommunicator {
	sc := &StreamCommunicator{
		r:     r,
		w:     w,
		lines: make(chan string, 8),
		done:  make(chan struct{}),
		log:   zerolog.Nop(),
	}
	for _, option := range options {
		option(sc)
	}
	go sc.readLines()
	return sc
}

func (sc *StreamCommunicator) readLines() {
	defer close(sc.lines)

	scanner := bufio.NewScanner(sc.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		select {
		case sc.lines <- line:
		case <-sc.done:
			return
		}
	}
	sc.readErr = scanner.Err()
}

func (sc *StreamCommunicator) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-sc.lines:
		if !ok {
			if sc.readErr != nil {
				return "", fmt.Errorf("failed to read line: %w", sc.readErr)
			}
			return "", ErrClosed
		}
		sc.log.Debug().Str("line", line).Msg("<-")
		return line, nil
	}
}

func (sc *StreamCommunicator) WriteLine(line string) error {
	sc.mutex.Lock()
	defer sc.mutex.Unlock()

	if _, err := io.WriteString(sc.w, line+"\n"); err != nil {
		if errors.Is(err, io.ErrClosedPipe) {
			return ErrClosed
		}
		return fmt.Errorf("failed to write line: %w", err)
	}
	sc.log.Debug().Str("line", line).Msg("->")
	return nil
}

// Close stops the reader and closes the underlying streams when they can be
// closed.
func (sc *StreamCommunicator) Close() error {
	var err error
	sc.once.Do(func() {
		close(sc.done)
		if c, ok := sc.w.(io.Closer); ok {
			err = c.Close()
		}
		if c, ok := sc.r.(io.Closer); ok {
			err = errors.Join(err, c.Close())
		}
	})
	return err
}
