package middleware

import (
	"math"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/fleet-planning/round-trip-optimizer/internal/adapter/http/response"
)

// rateLimitExpiry is how long an idle client's limiter is kept.
const rateLimitExpiry = 3 * time.Minute

// RateLimit returns a per-client token bucket limiter allowing rps requests
// per second with a burst of twice that (at least one). Clients are keyed by
// their real IP; rejected requests get a 429.
func RateLimit(rps float64) echo.MiddlewareFunc {
	burst := int(math.Ceil(2 * rps))
	if burst < 1 {
		burst = 1
	}

	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(rps),
		Burst:     burst,
		ExpiresIn: rateLimitExpiry,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return response.TooManyRequests(c)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return response.TooManyRequests(c)
		},
	})
}
