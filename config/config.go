package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config is read from LUDO_* environment variables.
type Config struct {
	LogLevel       string `env:"LUDO_LOG_LEVEL"       envDefault:"info"`
	LogFormat      string `env:"LUDO_LOG_FORMAT"      envDefault:"console"`
	VisualHook     string `env:"LUDO_VISUAL_HOOK"`
	SnapshotBuffer int    `env:"LUDO_SNAPSHOT_BUFFER" envDefault:"16"`
	ExperimentDir  string `env:"LUDO_EXPERIMENT_DIR"  envDefault:"experiments"`
	Seed           uint64 `env:"LUDO_SEED"            envDefault:"0"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SnapshotBuffer < 0 {
		return Config{}, fmt.Errorf("LUDO_SNAPSHOT_BUFFER must not be negative, got %d", cfg.SnapshotBuffer)
	}
	if cfg.LogFormat != "console" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("LUDO_LOG_FORMAT must be console or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

// DiceSeed returns the configured seed, or one taken from the clock when none
// is set.
func (c Config) DiceSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}

// NewLogger builds the process logger. It writes to w, which must not be the
// protocol channel.
func (c Config) NewLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if w == nil {
		w = os.Stderr
	}
	if c.LogFormat == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}
