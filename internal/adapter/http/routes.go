package http

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes registers all optimizer API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *RoundTripHandler) {
	RegisterRoutesWithMiddleware(e, h)
}

// RegisterRoutesWithMiddleware registers routes with middleware applied to
// the API group only; /health stays outside it.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *RoundTripHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	// API v1 group
	api := e.Group("/api/v1", middleware...)

	api.POST("/round-trips/optimize", h.OptimizeRoundTrips)
	api.POST("/study-cases", h.GenerateStudyCase)
}
