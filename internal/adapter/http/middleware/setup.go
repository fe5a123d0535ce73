package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
)

// Setup registers the global middleware on the Echo instance. Order matters:
//  1. RequestID, which also puts the id on the request context so the
//     optimizer logs carry it (see logger.Logger.Ctx)
//  2. RequestLogger, which sees the final status of everything below it
//  3. Metrics
//  4. Recover, innermost, so a panic becomes a logged and counted 500
//
// Rate limiting is applied per route group with RateLimit.
func Setup(e *echo.Echo, log *logger.Logger) {
	SetupWithConfig(e, log, RecoveryConfig{})
}

// SetupWithConfig registers middleware with custom recovery configuration.
func SetupWithConfig(e *echo.Echo, log *logger.Logger, recoveryConfig RecoveryConfig) {
	e.Use(Chain(log, recoveryConfig)...)
}

// Chain returns the global middleware as a slice for use with route groups.
func Chain(log *logger.Logger, recoveryConfig RecoveryConfig) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		RequestID(),
		RequestLogger(log),
		Metrics(),
		RecoverWithConfig(log, recoveryConfig),
	}
}
