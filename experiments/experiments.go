package experiments

import (
	"context"
	"fmt"
	"ludo/experiments/metrics"
	"ludo/gamemaster"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const Name = "selfplay"

type Config struct {
	Matches  int
	Seed     uint64 // seed of the first match, later matches count up from it
	Mode     int
	MaxTurns int
	Dir      string // root directory for the CSV records
}

// RunSelfPlay plays cfg.Matches local matches and stores their records. It
// returns the directory the records were written to.
func RunSelfPlay(ctx context.Context, cfg Config) (string, error) {
	matchRecords := []metrics.MatchRecord{}
	playerRecords := []metrics.PlayerRecord{}

	log.Info().Msgf("starting %s experiment with %d matches...", Name, cfg.Matches)

	for i := 0; i < cfg.Matches; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		seed := cfg.Seed + uint64(i)
		log.Info().Msgf("starting match %d of %d with seed %d...", i+1, cfg.Matches, seed)

		record, players, err := runMatch(ctx, i+1, seed, cfg)
		if err != nil {
			return "", fmt.Errorf("match %d: %w", i+1, err)
		}
		matchRecords = append(matchRecords, record)
		playerRecords = append(playerRecords, players...)

		log.Info().Msgf("completed match %d of %d in %d turns with winner: %s", i+1, cfg.Matches, record.Turns, record.Winner)
	}

	log.Info().Msgf("completed %s experiment", Name)

	writer, err := metrics.NewWriter(cfg.Dir, Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteMatchRecords(matchRecords); err != nil {
		return "", fmt.Errorf("failed to write match records: %w", err)
	}
	log.Info().Msg("stored match records")

	if err := writer.WritePlayerRecords(playerRecords); err != nil {
		return "", fmt.Errorf("failed to write player records: %w", err)
	}
	log.Info().Msg("stored player records")
	return writer.Dir(), nil
}

func runMatch(ctx context.Context, id int, seed uint64, cfg Config) (metrics.MatchRecord, []metrics.PlayerRecord, error) {
	options := []gamemaster.Option{gamemaster.WithSeed(seed), gamemaster.WithMode(cfg.Mode)}
	if cfg.MaxTurns > 0 {
		options = append(options, gamemaster.WithMaxTurns(cfg.MaxTurns))
	}

	start := time.Now()
	match, err := gamemaster.LocalMatch(ctx, zerolog.Nop(), nil, options...)
	if err != nil {
		return metrics.MatchRecord{}, nil, err
	}
	if match.Hashes[0] != match.Hash || match.Hashes[1] != match.Hash {
		return metrics.MatchRecord{}, nil, fmt.Errorf("players disagree on the final board: %x %x, referee %x",
			match.Hashes[0], match.Hashes[1], match.Hash)
	}
	end := time.Now()

	record := metrics.MatchRecord{
		ID:   id,
		Seed: seed,
		MatchMetric: metrics.MatchMetric{
			Winner:    match.WinnerName(),
			Turns:     match.Turns,
			StartTime: start,
			EndTime:   end,
			Duration:  end.Sub(start),
		},
	}

	players := make([]metrics.PlayerRecord, 0, len(match.Players))
	for i, pm := range match.Players {
		players = append(players, metrics.PlayerRecord{
			Match:        id,
			PlayerID:     i + 1,
			Color:        match.Colors[i].String(),
			PlayerMetric: pm,
		})
	}
	return record, players, nil
}
