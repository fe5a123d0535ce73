package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
)

// RequestLogger returns middleware that logs every request on completion.
// 4xx responses are logged at warn, 5xx at error.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				// Let Echo's error handler write the response
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			reqLog := log.WithRequestID(GetRequestID(c))

			var event *zerolog.Event
			switch status := res.Status; {
			case status >= 500:
				event = reqLog.Error()
			case status >= 400:
				event = reqLog.Warn()
			default:
				event = reqLog.Info()
			}

			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Str("route", c.Path()).
				Int("status", res.Status).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("bytes_in", req.ContentLength).
				Int64("bytes_out", res.Size).
				Str("client_ip", c.RealIP()).
				Msg("HTTP request")

			// the error was handled by c.Error
			return nil
		}
	}
}
