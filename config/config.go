// Package config loads solver settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config controls a partitioning run.
type Config struct {
	MaxGenerations   int    `env:"PARTITION_MAX_GENERATIONS"   envDefault:"100"`
	PopulationFactor int    `env:"PARTITION_POPULATION_FACTOR" envDefault:"1"`
	PopulationSize   int    `env:"PARTITION_POPULATION_SIZE"`
	Seed             uint64 `env:"PARTITION_SEED"`
	MemoryLimit      int64  `env:"PARTITION_MEMORY_LIMIT"      envDefault:"1073741824"`
	LogLevel         string `env:"PARTITION_LOG_LEVEL"         envDefault:"info"`
	LogFormat        string `env:"PARTITION_LOG_FORMAT"        envDefault:"text"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration found in the environment, with defaults
// for unset variables.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the solver cannot run with.
func (c Config) Validate() error {
	if c.MaxGenerations < 1 {
		return fmt.Errorf("config: max generations must be positive, got %d", c.MaxGenerations)
	}
	if c.PopulationFactor < 1 {
		return fmt.Errorf("config: population factor must be positive, got %d", c.PopulationFactor)
	}
	if c.PopulationSize < 0 {
		return fmt.Errorf("config: population size must not be negative, got %d", c.PopulationSize)
	}
	if c.MemoryLimit < 1 {
		return fmt.Errorf("config: memory limit must be positive, got %d", c.MemoryLimit)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("config: %w", err)
	}
	return level, nil
}
