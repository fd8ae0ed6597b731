package communication

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStreamCommunicatorReadLine(t *testing.T) {
	t.Run("reads trimmed lines then reports the closed channel", func(t *testing.T) {
		sc := NewStreamCommunicator(strings.NewReader("1 10 0\r\n  <THROW>\n"), io.Discard)
		ctx := context.Background()

		line, err := sc.ReadLine(ctx)
		require.NoError(t, err)
		require.Equal(t, "1 10 0", line)

		line, err = sc.ReadLine(ctx)
		require.NoError(t, err)
		require.Equal(t, "<THROW>", line)

		_, err = sc.ReadLine(ctx)
		require.ErrorIs(t, err, ErrClosed)
	})

	t.Run("a pending read can be cancelled", func(t *testing.T) {
		r, w := io.Pipe()
		defer w.Close()
		sc := NewStreamCommunicator(r, io.Discard)
		defer sc.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := sc.ReadLine(ctx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("lines written after a cancelled read are still delivered", func(t *testing.T) {
		r, w := io.Pipe()
		sc := NewStreamCommunicator(r, io.Discard)
		defer sc.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := sc.ReadLine(ctx)
		require.ErrorIs(t, err, context.Canceled)

		go io.WriteString(w, "REPEAT\n")
		line, err := sc.ReadLine(context.Background())
		require.NoError(t, err)
		require.Equal(t, "REPEAT", line)
	})
}

func TestStreamCommunicatorWriteLine(t *testing.T) {
	t.Run("terminates every line", func(t *testing.T) {
		var out bytes.Buffer
		sc := NewStreamCommunicator(strings.NewReader(""), &out)

		require.NoError(t, sc.WriteLine(Throw))
		require.NoError(t, sc.WriteLine("R0_6"))
		require.Equal(t, "<THROW>\nR0_6\n", out.String())
	})

	t.Run("writing to a closed pipe reports the closed channel", func(t *testing.T) {
		r, w := io.Pipe()
		r.Close()
		sc := NewStreamCommunicator(strings.NewReader(""), w)

		require.ErrorIs(t, sc.WriteLine(Throw), ErrClosed)
	})
}
