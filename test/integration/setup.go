// Package integration provides helpers and integration tests for the round-trip optimizer.
// Integration tests run requests through the real echo stack: middleware,
// handlers, use cases and the branch-and-bound solver.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpAdapter "github.com/fleet-planning/round-trip-optimizer/internal/adapter/http"
	"github.com/fleet-planning/round-trip-optimizer/internal/adapter/http/middleware"
	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/metrics"
	"github.com/fleet-planning/round-trip-optimizer/internal/solver"
	"github.com/fleet-planning/round-trip-optimizer/internal/usecase"
)

// ServerOptions customizes the test server.
type ServerOptions struct {
	// Solver defaults to the branch-and-bound backend
	Solver solver.Solver

	// Config defaults to usecase.DefaultConfig
	Config *usecase.Config

	// GroupMiddleware is applied to the API group, like the rate limit in cmd/server
	GroupMiddleware []echo.MiddlewareFunc

	// Logger is shared by middleware and use cases; defaults to logger.Nop
	Logger *logger.Logger
}

// TestServer wraps an Echo instance and provides helper methods for integration testing.
type TestServer struct {
	Echo    *echo.Echo
	Handler *httpAdapter.RoundTripHandler
}

// NewTestServer creates a test server wired the way cmd/server wires production.
func NewTestServer(opts ServerOptions) *TestServer {
	s := opts.Solver
	if s == nil {
		s = solver.NewBranchAndBound(nil)
	}
	cfg := usecase.DefaultConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	optimizer := usecase.NewRoundTripUseCase(s, &cfg, usecase.WithLogger(log))
	studyCases := usecase.NewStudyCaseUseCase(optimizer, &cfg, log)
	handler := httpAdapter.NewRoundTripHandler(optimizer, studyCases, cfg.MaxNBest)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	middleware.Setup(e, log)
	httpAdapter.RegisterRoutesWithMiddleware(e, handler, opts.GroupMiddleware...)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	return &TestServer{
		Echo:    e,
		Handler: handler,
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method string
	Path   string
	Body   interface{}
	Header http.Header
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
// []byte bodies are sent as-is, anything else is JSON encoded.
func (ts *TestServer) Do(req Request) Response {
	var body []byte
	switch b := req.Body.(type) {
	case nil:
	case []byte:
		body = b
	default:
		body, _ = json.Marshal(b)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bytes.NewReader(body))
	if body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}

	rec := httptest.NewRecorder()
	ts.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// Optimize posts an optimization request.
func (ts *TestServer) Optimize(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/round-trips/optimize",
		Body:   body,
	})
}

// StudyCase posts a study-case request.
func (ts *TestServer) StudyCase(body interface{}) Response {
	return ts.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/study-cases",
		Body:   body,
	})
}

// HealthRequest makes a health check request.
func (ts *TestServer) HealthRequest() Response {
	return ts.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// ParseOptimization parses the response body as an OptimizationResponse.
func (r *Response) ParseOptimization() (*domain.OptimizationResponse, error) {
	var resp domain.OptimizationResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseStudyCase parses the response body as a StudyCase.
func (r *Response) ParseStudyCase() (*usecase.StudyCase, error) {
	var sc usecase.StudyCase
	if err := json.Unmarshal(r.Body, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// OptimizeBody builds an optimization request body from a domain fleet.
func OptimizeBody(fleet domain.Fleet, nBest int) map[string]interface{} {
	return map[string]interface{}{
		"nBest": nBest,
		"fleet": fleet,
	}
}

// StudyCaseBody is a helper struct for building study-case request bodies.
type StudyCaseBody struct {
	AircraftCount int    `json:"aircraftCount,omitempty"`
	AirportCount  int    `json:"airportCount,omitempty"`
	Days          int    `json:"days,omitempty"`
	FromAirport   string `json:"fromAirport"`
	ToAirport     string `json:"toAirport"`
	Seed          *int64 `json:"seed,omitempty"`
	Optimize      bool   `json:"optimize,omitempty"`
	NBest         int    `json:"nBest,omitempty"`
}

// DefaultStudyCase returns a valid study-case request body for testing.
func DefaultStudyCase(seed int64) StudyCaseBody {
	return StudyCaseBody{
		AircraftCount: 3,
		AirportCount:  5,
		Days:          3,
		FromAirport:   "airport1",
		ToAirport:     "airport3",
		Seed:          &seed,
	}
}

// blockingSolver waits for its context to end. When failDeadline is set the
// deadline is returned as an error, otherwise it is reported as a time limit.
type blockingSolver struct {
	failDeadline bool
}

func (b *blockingSolver) Name() string { return "blocking" }

func (b *blockingSolver) Solve(ctx context.Context, _ *solver.Model) (solver.Result, error) {
	<-ctx.Done()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) && !b.failDeadline {
		return solver.Result{Status: solver.StatusTimeLimit}, nil
	}
	return solver.Result{}, ctx.Err()
}

// requestTimeout is the group middleware cmd/server uses to bound a request.
func requestTimeout(d time.Duration) echo.MiddlewareFunc {
	return echomw.ContextTimeout(d)
}
