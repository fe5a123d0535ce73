// Package usecase contains the round-trip planning use cases: the assignment
// optimizer (build, solve, extract) and synthetic study-case generation.
package usecase

import (
	"time"

	"github.com/fleet-planning/round-trip-optimizer/internal/generator"
)

// Default use case settings.
const (
	DefaultSolverTimeout = 5 * time.Second
	DefaultMaxNBest      = 10
)

// Config contains configuration options for the use cases.
type Config struct {
	// SolverTimeout bounds the wall-clock time of one solve
	SolverTimeout time.Duration

	// MaxNBest caps the number of pairings one run may select
	MaxNBest int

	// Generator holds the study-case generator defaults
	Generator generator.Config
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SolverTimeout: DefaultSolverTimeout,
		MaxNBest:      DefaultMaxNBest,
		Generator:     generator.DefaultConfig(),
	}
}

// mergeConfig overlays the positive fields of config on the defaults.
func mergeConfig(config *Config) Config {
	cfg := DefaultConfig()
	if config == nil {
		return cfg
	}
	if config.SolverTimeout > 0 {
		cfg.SolverTimeout = config.SolverTimeout
	}
	if config.MaxNBest > 0 {
		cfg.MaxNBest = config.MaxNBest
	}
	if config.Generator.Days > 0 {
		cfg.Generator = config.Generator
	}
	return cfg
}
