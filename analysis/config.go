package analysis

import (
	"errors"
	"log/slog"

	"github.com/arloliu/iqrfit/format"
	"github.com/arloliu/iqrfit/internal/logging"
	"github.com/arloliu/iqrfit/internal/options"
)

// Config selects how an analysis runs.
type Config struct {
	// Iterate repeats rounds until no outliers are found; otherwise exactly
	// one round runs.
	Iterate bool `json:"iterate"`
	// SwapAxes additionally analyses the dataset with X regressed on Y.
	SwapAxes bool `json:"swap_axes"`
	// Sequential runs the orientations one after the other.
	Sequential bool `json:"-"`

	logger *slog.Logger
}

// Option is a functional option for Config.
type Option = options.Option[*Config]

// NewConfig builds a Config from opts. The zero configuration runs a single
// round in the normal orientation.
func NewConfig(opts ...Option) (Config, error) {
	cfg := Config{}
	if err := options.Apply(&cfg, opts...); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WithIterate enables or disables iteration until convergence.
func WithIterate(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.Iterate = enabled
	})
}

// WithSwapAxes enables or disables the swapped orientation.
func WithSwapAxes(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.SwapAxes = enabled
	})
}

// WithSequential runs the orientations in the calling goroutine.
func WithSequential() Option {
	return options.NoError(func(cfg *Config) {
		cfg.Sequential = true
	})
}

// WithLogger sets the logger used for round and termination records.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(cfg *Config) error {
		if logger == nil {
			return errors.New("analysis: nil logger")
		}
		cfg.logger = logger

		return nil
	})
}

func (c Config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}

	return logging.New("analysis")
}

// Orientations returns the orientations the configuration analyses, in order.
func (c Config) Orientations() []format.Orientation {
	if c.SwapAxes {
		return []format.Orientation{format.OrientationNormal, format.OrientationSwapped}
	}

	return []format.Orientation{format.OrientationNormal}
}
