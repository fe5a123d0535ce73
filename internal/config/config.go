// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/fleet-planning/round-trip-optimizer/internal/generator"
	"github.com/fleet-planning/round-trip-optimizer/internal/usecase"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Timeouts  TimeoutConfig
	Optimizer OptimizerConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
	App       AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"30s"`

	// RateLimit is the sustained requests per second allowed per client on the API group
	RateLimit float64 `env:"SERVER_RATE_LIMIT" envDefault:"20"`
}

// TimeoutConfig holds timeout settings for optimization requests.
type TimeoutConfig struct {
	// Solver bounds one solve; the solver reports time_limit when it passes
	Solver time.Duration `env:"TIMEOUT_SOLVER" envDefault:"5s"`

	// Request bounds a whole API request
	Request time.Duration `env:"TIMEOUT_REQUEST" envDefault:"15s"`
}

// OptimizerConfig holds assignment optimizer settings.
type OptimizerConfig struct {
	MaxNBest int   `env:"OPTIMIZER_MAX_N_BEST" envDefault:"10"`
	MaxNodes int64 `env:"OPTIMIZER_MAX_NODES" envDefault:"0"`
}

// GeneratorConfig holds study-case generator settings.
type GeneratorConfig struct {
	Seed                int64         `env:"GENERATOR_SEED" envDefault:"77"`
	Days                int           `env:"GENERATOR_DAYS" envDefault:"5"`
	DayStart            time.Duration `env:"GENERATOR_DAY_START" envDefault:"6h"`
	DayEnd              time.Duration `env:"GENERATOR_DAY_END" envDefault:"20h"`
	FreeTime            float64       `env:"GENERATOR_FREE_TIME" envDefault:"0"`
	ChainProbability    float64       `env:"GENERATOR_CHAIN_PROBABILITY" envDefault:"0.5"`
	MaxChainLength      int           `env:"GENERATOR_MAX_CHAIN_LENGTH" envDefault:"3"`
	KeepBothProbability float64       `env:"GENERATOR_KEEP_BOTH_PROBABILITY" envDefault:"0.34"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env string `env:"APP_ENV" envDefault:"development"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate server port
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	// Validate timeouts are positive
	if cfg.Server.ReadTimeout <= 0 {
		return fmt.Errorf("SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must be positive")
	}
	if cfg.Server.RateLimit <= 0 {
		return fmt.Errorf("SERVER_RATE_LIMIT must be positive")
	}
	if cfg.Timeouts.Solver <= 0 {
		return fmt.Errorf("TIMEOUT_SOLVER must be positive")
	}
	if cfg.Timeouts.Request <= 0 {
		return fmt.Errorf("TIMEOUT_REQUEST must be positive")
	}

	// Validate solver timeout is less than request timeout
	if cfg.Timeouts.Solver >= cfg.Timeouts.Request {
		return fmt.Errorf("TIMEOUT_SOLVER (%s) should be less than TIMEOUT_REQUEST (%s)",
			cfg.Timeouts.Solver, cfg.Timeouts.Request)
	}

	// Validate optimizer limits
	if cfg.Optimizer.MaxNBest < 1 {
		return fmt.Errorf("OPTIMIZER_MAX_N_BEST must be at least 1, got %d", cfg.Optimizer.MaxNBest)
	}
	if cfg.Optimizer.MaxNodes < 0 {
		return fmt.Errorf("OPTIMIZER_MAX_NODES must not be negative")
	}

	// Validate generator settings
	if err := cfg.GeneratorSettings().Validate(); err != nil {
		return fmt.Errorf("GENERATOR_*: %w", err)
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	// Validate app environment
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[cfg.App.Env] {
		return fmt.Errorf("APP_ENV must be one of: development, staging, production; got %q", cfg.App.Env)
	}

	return nil
}

// GeneratorSettings converts the generator group to the generator configuration.
func (c *Config) GeneratorSettings() generator.Config {
	return generator.Config{
		Seed:                c.Generator.Seed,
		Days:                c.Generator.Days,
		DayStart:            c.Generator.DayStart,
		DayEnd:              c.Generator.DayEnd,
		FreeTime:            c.Generator.FreeTime,
		ChainProbability:    c.Generator.ChainProbability,
		MaxChainLength:      c.Generator.MaxChainLength,
		KeepBothProbability: c.Generator.KeepBothProbability,
	}
}

// UseCaseSettings returns the use case configuration.
func (c *Config) UseCaseSettings() usecase.Config {
	return usecase.Config{
		SolverTimeout: c.Timeouts.Solver,
		MaxNBest:      c.Optimizer.MaxNBest,
		Generator:     c.GeneratorSettings(),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
