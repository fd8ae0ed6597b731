package main

import (
	"context"
	"errors"
	"flag"
	"ludo/communication"
	"ludo/config"
	"ludo/engine"
	"ludo/experiments"
	"ludo/game"
	"ludo/meta"
	"ludo/visual"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	selfPlay := flag.Int("selfplay", 0, "Number of local self-play matches to run instead of playing on stdin/stdout")
	mode := flag.Int("mode", 0, "Game mode for self-play: 0 is red against yellow, anything else blue against green")
	maxTurns := flag.Int("max-turns", meta.MaxTurns, "Turn cap of a self-play match")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create logger")
	}
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *selfPlay > 0 {
		dir, err := experiments.RunSelfPlay(ctx, experiments.Config{
			Matches:  *selfPlay,
			Seed:     cfg.DiceSeed(),
			Mode:     *mode,
			MaxTurns: *maxTurns,
			Dir:      cfg.ExperimentDir,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("self-play failed")
		}
		logger.Info().Str("dir", dir).Msg("self-play records written")
		return
	}

	if err := play(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("match aborted")
	}
}

// play runs the bot against the client on stdin and stdout.
func play(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	comm := communication.NewStreamCommunicator(os.Stdin, os.Stdout,
		communication.WithLogger(logger.With().Str("component", "channel").Logger()))
	defer comm.Close()

	sinks := []visual.Sink{visual.NewLogSink(logger.With().Str("component", "visual").Logger())}
	if cfg.VisualHook != "" {
		sinks = append(sinks, visual.NewHTTPSink(cfg.VisualHook))
	}
	snapshots := make(chan game.Snapshot, cfg.SnapshotBuffer)
	forwarded := make(chan struct{})
	go func() {
		defer close(forwarded)
		visual.Forward(ctx, logger, snapshots, sinks...)
	}()

	driver := engine.NewDriver(comm,
		engine.WithLogger(logger),
		engine.WithSnapshots(snapshots),
	)
	err := driver.Run(ctx)
	close(snapshots)
	<-forwarded

	if errors.Is(err, communication.ErrClosed) {
		logger.Info().Msg("client closed the channel")
		return nil
	}
	return err
}
