// Package visual delivers board snapshots to whatever draws the board. Sinks
// only consume snapshots; nothing flows back into the game.
package visual

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"ludo/game"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

type Sink interface {
	Render(ctx context.Context, snap game.Snapshot) error
}

// LogSink writes a line per snapshot.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{log: logger}
}

func (s *LogSink) Render(_ context.Context, snap game.Snapshot) error {
	positions := zerolog.Dict()
	for id, pos := range snap.Coins {
		positions.Int(id.String(), pos.Rel)
	}
	s.log.Debug().
		Int("turn", snap.Turn).
		Str("mover", snap.Mover.String()).
		Strs("moves", snap.Moves).
		Dict("coins", positions).
		Msg("board")
	return nil
}

// HTTPSink posts every snapshot as JSON to a visualizer hook.
type HTTPSink struct {
	url    string
	client *http.Client
}

func NewHTTPSink(url string) *HTTPSink {
	return &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: 2 * time.Second},
	}
}

func (s *HTTPSink) Render(ctx context.Context, snap game.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build visual hook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		out, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("visual hook returned status %d: %s", resp.StatusCode, out)
	}
	return nil
}

// Forward hands every snapshot to each sink until snapshots is closed or ctx
// is done. Sink failures are logged and otherwise ignored.
func Forward(ctx context.Context, logger zerolog.Logger, snapshots <-chan game.Snapshot, sinks ...Sink) {
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			for _, sink := range sinks {
				if err := sink.Render(ctx, snap); err != nil {
					logger.Warn().Err(err).Int("turn", snap.Turn).Msg("failed to render snapshot")
				}
			}
		}
	}
}
