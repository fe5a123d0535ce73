package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	"github.com/fleet-planning/round-trip-optimizer/internal/adapter/http/response"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
)

// RecoveryConfig controls what the recovery middleware logs.
type RecoveryConfig struct {
	// DisablePrintStack omits the stack trace from the panic log entry
	DisablePrintStack bool
}

// Recover returns middleware that recovers from panics in the handler chain,
// logs them with a stack trace and answers 500.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return RecoverWithConfig(log, RecoveryConfig{})
}

// RecoverWithConfig returns recovery middleware with custom configuration.
func RecoverWithConfig(log *logger.Logger, config RecoveryConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				panicMsg := fmt.Sprintf("%v", r)
				if e, ok := r.(error); ok {
					panicMsg = e.Error()
				}

				event := log.WithRequestID(GetRequestID(c)).Error().
					Str("route", c.Path()).
					Str("panic", panicMsg)
				if !config.DisablePrintStack {
					event = event.Str("stack", string(debug.Stack()))
				}
				event.Msg("Panic recovered")

				if !c.Response().Committed {
					err = response.InternalServerError(c)
				}
			}()

			return next(c)
		}
	}
}
