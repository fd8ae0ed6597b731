package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"ludo/communication"
	"ludo/engine"
	"ludo/experiments/metrics"
	"ludo/game"
	"sync"

	"github.com/rs/zerolog"
)

// MatchResult is the outcome of a local match with what each player recorded.
type MatchResult struct {
	Result
	Players [2]metrics.PlayerMetric
	Colors  [2]game.Color
	// Hashes are the final board hashes seen by each driver.
	Hashes [2]game.StateHash
}

// LocalMatch seats two drivers against a referee over in-memory pipes and
// plays one match. Snapshots from the first driver go to snapshots when it is
// not nil; the caller must keep draining it until LocalMatch returns.
func LocalMatch(ctx context.Context, logger zerolog.Logger, snapshots chan<- game.Snapshot, options ...Option) (MatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		seats   [2]communication.Communicator
		drivers [2]*engine.Driver
		clients [2]*communication.StreamCommunicator
	)
	for i := range drivers {
		// referee -> driver
		toDriverR, toDriverW := io.Pipe()
		// driver -> referee
		toRefereeR, toRefereeW := io.Pipe()

		clients[i] = communication.NewStreamCommunicator(toDriverR, toRefereeW)
		seats[i] = communication.NewStreamCommunicator(toRefereeR, toDriverW)

		driverLog := logger.With().Int("player", i+1).Logger()
		driverOptions := []engine.Option{
			engine.WithLogger(driverLog),
			engine.WithMetrics(metrics.NewCollector()),
		}
		if i == 0 && snapshots != nil {
			driverOptions = append(driverOptions, engine.WithSnapshots(snapshots))
		}
		drivers[i] = engine.NewDriver(clients[i], driverOptions...)
	}

	var wg sync.WaitGroup
	errs := make([]error, len(drivers))
	for i, d := range drivers {
		i, d := i, d
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer clients[i].Close()
			if err := d.Run(ctx); err != nil && !errors.Is(err, communication.ErrClosed) && !errors.Is(err, context.Canceled) {
				errs[i] = fmt.Errorf("player %d: %w", i+1, err)
			}
		}()
	}

	referee := NewReferee(seats, append([]Option{WithLogger(logger.With().Str("role", "referee").Logger())}, options...)...)
	result, refErr := referee.Run(ctx)

	// closing the referee side unblocks drivers still waiting for input
	for _, seat := range seats {
		seat.Close()
	}
	if refErr != nil {
		cancel()
	}
	wg.Wait()

	match := MatchResult{Result: result}
	for i, d := range drivers {
		match.Players[i] = d.Metrics()
		if state := d.State(); state != nil {
			match.Hashes[i] = state.Hash()
			match.Colors[i] = state.Local().Color()
		}
	}
	return match, errors.Join(refErr, errs[0], errs[1])
}
