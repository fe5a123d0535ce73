// Package main is the entry point for the round-trip optimizer service.
//
//	@title						Round-Trip Fleet Assignment API
//	@version					1.0.0
//	@description				Selects the cheapest feasible departure and return itinerary pairings across an aircraft fleet, and generates synthetic study cases.
//
//	@contact.name				API Support
//	@contact.url				https://github.com/fleet-planning/round-trip-optimizer/issues
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	// Import generated docs for swagger
	_ "github.com/fleet-planning/round-trip-optimizer/docs"

	// Application layers
	apihttp "github.com/fleet-planning/round-trip-optimizer/internal/adapter/http"
	"github.com/fleet-planning/round-trip-optimizer/internal/adapter/http/middleware"
	"github.com/fleet-planning/round-trip-optimizer/internal/config"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/metrics"
	"github.com/fleet-planning/round-trip-optimizer/internal/solver"
	"github.com/fleet-planning/round-trip-optimizer/internal/usecase"
)

const (
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load configuration
	cfg := config.MustLoad()

	// Initialize logger with config
	log := setupLogger(cfg)

	log.Info().
		Str("env", cfg.App.Env).
		Int("port", cfg.Server.Port).
		Dur("solver_timeout", cfg.Timeouts.Solver).
		Int("max_n_best", cfg.Optimizer.MaxNBest).
		Msg("Configuration loaded")

	metrics.RegisterDefault()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure server timeouts from config
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	middleware.Setup(e, log.WithComponent("http"))
	setupRoutes(e, cfg, log)

	// Start server with graceful shutdown
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Info().Str("address", addr).Msg("Starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	gracefulShutdown(e, log)
}

// setupLogger builds the process logger from config and installs it as the
// default.
func setupLogger(cfg *config.Config) *logger.Logger {
	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.EnableCaller = cfg.IsDevelopment()
	log := logger.New(logCfg, nil)
	logger.SetDefault(log)
	return log
}

// setupRoutes wires solver, use cases and handler, then registers the routes.
func setupRoutes(e *echo.Echo, cfg *config.Config, log *logger.Logger) {
	backend := solver.NewBranchAndBound(&solver.Config{MaxNodes: cfg.Optimizer.MaxNodes})

	ucConfig := cfg.UseCaseSettings()
	optimizer := usecase.NewRoundTripUseCase(backend, &ucConfig, usecase.WithLogger(log))
	studyCases := usecase.NewStudyCaseUseCase(optimizer, &ucConfig, log)

	handler := apihttp.NewRoundTripHandler(optimizer, studyCases, cfg.Optimizer.MaxNBest)

	// API group: per-client rate limit, then a whole-request deadline
	apihttp.RegisterRoutesWithMiddleware(e, handler,
		middleware.RateLimit(cfg.Server.RateLimit),
		echomw.ContextTimeout(cfg.Timeouts.Request),
	)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
}

// gracefulShutdown handles graceful server shutdown on interrupt signals.
func gracefulShutdown(e *echo.Echo, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
