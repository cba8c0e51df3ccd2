package partition

import (
	"log/slog"
	"strings"

	"github.com/neatniets/number-partitioning-genetic-algorithm/config"
	"github.com/neatniets/number-partitioning-genetic-algorithm/ga"
	"github.com/neatniets/number-partitioning-genetic-algorithm/rng"
)

type options struct {
	source           rng.Source
	seed             uint64
	seeded           bool
	maxGenerations   int
	populationSize   int
	populationFactor int
	memoryLimit      int64
	logger           *Logger
	observer         func(ga.Stats)
}

// Option configures Solve.
type Option func(*options)

// WithSeed makes the run reproducible: the same seed and items always give
// the same Result.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithSource draws all randomness from src, which takes precedence over
// WithSeed.
func WithSource(src rng.Source) Option {
	return func(o *options) {
		o.source = src
	}
}

// WithMaxGenerations bounds the number of generations, the initial
// population included. The default is 100.
func WithMaxGenerations(n int) Option {
	return func(o *options) {
		o.maxGenerations = n
	}
}

// WithPopulationSize fixes the number of chromosomes per generation.
// By default it is the number of items times the population factor.
func WithPopulationSize(n int) Option {
	return func(o *options) {
		o.populationSize = n
	}
}

// WithPopulationFactor scales the number of items into the population size.
// The default is 1.
func WithPopulationFactor(f int) Option {
	return func(o *options) {
		o.populationFactor = f
	}
}

// WithMemoryLimit bounds the bytes of chromosome storage used by a run.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithLogger configures logging. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithObserver registers fn to be called with the statistics of every
// generation.
func WithObserver(fn func(ga.Stats)) Option {
	return func(o *options) {
		o.observer = fn
	}
}

// WithConfig applies settings loaded by the config package. A zero seed
// leaves the run seeded from the clock.
func WithConfig(cfg config.Config) Option {
	return func(o *options) {
		o.maxGenerations = cfg.MaxGenerations
		o.populationFactor = cfg.PopulationFactor
		o.populationSize = cfg.PopulationSize
		o.memoryLimit = cfg.MemoryLimit
		if cfg.Seed != 0 {
			o.seed = cfg.Seed
			o.seeded = true
		}

		level, err := cfg.Level()
		if err != nil {
			level = slog.LevelInfo
		}
		if strings.EqualFold(cfg.LogFormat, "json") {
			o.logger = NewJSONLogger(level)
		} else {
			o.logger = NewTextLogger(level)
		}
	}
}
