package http

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/fleet-planning/round-trip-optimizer/internal/adapter/http/response"
	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
	"github.com/fleet-planning/round-trip-optimizer/internal/usecase"
)

// RoundTripHandler handles HTTP requests for the optimizer endpoints.
type RoundTripHandler struct {
	optimizer  usecase.RoundTripUseCase
	studyCases usecase.StudyCaseUseCase
	maxNBest   int
}

// NewRoundTripHandler creates a new RoundTripHandler.
// maxNBest bounds the nBest accepted by both endpoints.
func NewRoundTripHandler(optimizer usecase.RoundTripUseCase, studyCases usecase.StudyCaseUseCase, maxNBest int) *RoundTripHandler {
	if maxNBest < 1 {
		maxNBest = usecase.DefaultMaxNBest
	}
	return &RoundTripHandler{
		optimizer:  optimizer,
		studyCases: studyCases,
		maxNBest:   maxNBest,
	}
}

// OptimizeRoundTrips handles POST /api/v1/round-trips/optimize
//
// @Summary Optimize round trips
// @Description Select the nBest cheapest feasible departure and return pairings across the fleet
// @Tags round-trips
// @Accept json
// @Produce json
// @Param request body OptimizeRequest true "Fleet options and nBest"
// @Success 200 {object} domain.OptimizationResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 429 {object} response.ErrorDetail "Rate limited"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/round-trips/optimize [post]
func (h *RoundTripHandler) OptimizeRoundTrips(c echo.Context) error {
	var req OptimizeRequest
	if err := bindStrict(c, &req); err != nil {
		return response.InvalidRequestBody(c, err.Error())
	}

	if err := req.Validate(h.maxNBest); err != nil {
		return h.handleValidationError(c, err)
	}

	fleet, err := ToDomainFleet(&req)
	if err != nil {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	result, err := h.optimizer.Optimize(c.Request().Context(), fleet, req.NBest)
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, result)
}

// GenerateStudyCase handles POST /api/v1/study-cases
//
// @Summary Generate a study case
// @Description Generate a synthetic fleet from a seed, optionally optimized
// @Tags study-cases
// @Accept json
// @Produce json
// @Param request body StudyCaseRequest true "Generation criteria"
// @Success 200 {object} usecase.StudyCase
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 429 {object} response.ErrorDetail "Rate limited"
// @Failure 500 {object} response.ErrorDetail "Generation failed"
// @Failure 504 {object} response.ErrorDetail "Gateway timeout"
// @Router /api/v1/study-cases [post]
func (h *RoundTripHandler) GenerateStudyCase(c echo.Context) error {
	var req StudyCaseRequest
	if err := bindStrict(c, &req); err != nil {
		return response.InvalidRequestBody(c, err.Error())
	}

	if err := req.Validate(h.maxNBest); err != nil {
		return h.handleValidationError(c, err)
	}

	result, err := h.studyCases.Generate(c.Request().Context(), ToStudyCaseCriteria(&req))
	if err != nil {
		return h.handleError(c, err)
	}
	return response.OK(c, result)
}

// Health handles GET /health
func (h *RoundTripHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// bindStrict decodes a single JSON object and rejects unknown fields,
// which echo's default binder accepts silently.
func bindStrict(c echo.Context, v interface{}) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("body must contain a single JSON object")
	}
	return nil
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *RoundTripHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *RoundTripHandler) handleError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest), errors.Is(err, domain.ErrUnknownAirport):
		return response.ValidationErrorWithMessage(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return response.GatewayTimeout(c)
	case errors.Is(err, context.Canceled):
		return response.RequestCancelled(c)
	default:
		// construction and backend failures
		return response.InternalServerError(c)
	}
}
