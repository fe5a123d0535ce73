package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/metrics"
)

// unmatchedRoute labels requests no route matched, keeping label cardinality bounded.
const unmatchedRoute = "unmatched"

// Metrics returns middleware that records request count and latency per
// route template (c.Path()), never per raw URL.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			metrics.ObserveRequest(
				c.Request().Method,
				route,
				strconv.Itoa(c.Response().Status),
				time.Since(start),
			)
			return nil
		}
	}
}
