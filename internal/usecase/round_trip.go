package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/metrics"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/timeutil"
	"github.com/fleet-planning/round-trip-optimizer/internal/solver"
)

// RoundTripUseCase defines the round-trip assignment operation.
type RoundTripUseCase interface {
	// Optimize selects the nBest cheapest feasible (departure, return) pairings
	// over the whole fleet. Recoverable outcomes (no options, infeasible model,
	// solver time limit) come back as a single failure answer; only an invalid
	// nBest, caller cancellation or a backend failure is returned as an error.
	Optimize(ctx context.Context, fleet domain.Fleet, nBest int) (*domain.OptimizationResponse, error)
}

// roundTripUseCase implements RoundTripUseCase on top of a pluggable solver.
type roundTripUseCase struct {
	solver        solver.Solver
	solverTimeout time.Duration
	maxNBest      int
	clock         timeutil.Clock
	log           *logger.Logger
}

// Option customizes the round-trip use case.
type Option func(*roundTripUseCase)

// WithClock replaces the clock used to time runs.
func WithClock(c timeutil.Clock) Option {
	return func(uc *roundTripUseCase) { uc.clock = c }
}

// WithLogger replaces the logger. Defaults to a disabled logger.
func WithLogger(l *logger.Logger) Option {
	return func(uc *roundTripUseCase) {
		if l != nil {
			uc.log = l
		}
	}
}

// NewRoundTripUseCase creates the optimizer use case.
// If config is nil, default values are used.
func NewRoundTripUseCase(s solver.Solver, config *Config, opts ...Option) RoundTripUseCase {
	cfg := mergeConfig(config)
	uc := &roundTripUseCase{
		solver:        s,
		solverTimeout: cfg.SolverTimeout,
		maxNBest:      cfg.MaxNBest,
		clock:         timeutil.NewRealClock(),
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	uc.log = uc.log.WithComponent("optimizer").WithSolver(s.Name())
	return uc
}

// Optimize implements RoundTripUseCase.Optimize: Build -> Solve -> Extract.
func (uc *roundTripUseCase) Optimize(ctx context.Context, fleet domain.Fleet, nBest int) (*domain.OptimizationResponse, error) {
	if nBest < 1 || nBest > uc.maxNBest {
		return nil, fmt.Errorf("%w: nBest must be between 1 and %d, got %d", domain.ErrInvalidRequest, uc.maxNBest, nBest)
	}

	log := uc.log.Ctx(ctx)
	start := uc.clock.Now()
	meta := domain.OptimizationMetadata{
		Solver: uc.solver.Name(),
		NBest:  nBest,
	}
	finish := func(status string, answers []domain.Answer, solve time.Duration) *domain.OptimizationResponse {
		meta.Status = status
		meta.DurationMs = uc.clock.Now().Sub(start).Milliseconds()
		metrics.ObserveOptimization(status, meta.Candidates, solve)
		resp := domain.NewOptimizationResponse(answers, meta)
		log.Info().
			Str("status", status).
			Int("n_best", nBest).
			Int("candidates", meta.Candidates).
			Float64("total_price", resp.Metadata.TotalPrice).
			Int64("duration_ms", meta.DurationMs).
			Msg("round trip optimization finished")
		return &resp
	}

	if fleet.IsDegenerate() {
		return finish(domain.OutcomeDegenerate, []domain.Answer{domain.NewFailureAnswer(domain.MsgNoItineraries)}, 0), nil
	}

	// Build
	am, err := buildModel(ctx, fleet, nBest)
	if err != nil {
		metrics.ObserveOptimization("error", 0, 0)
		return nil, err
	}
	meta.Candidates = len(am.candidates)
	meta.Infeasible = am.infeasible
	log.Debug().
		Int("candidates", meta.Candidates).
		Int("infeasible", meta.Infeasible).
		Msg("assignment model built")

	// Solve
	solveCtx, cancel := context.WithTimeout(ctx, uc.solverTimeout)
	defer cancel()

	solveStart := uc.clock.Now()
	res, err := uc.solver.Solve(solveCtx, am.model)
	solveTime := uc.clock.Now().Sub(solveStart)
	if err != nil {
		metrics.ObserveOptimization("error", meta.Candidates, solveTime)
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, fmt.Errorf("solve with %s: %w", meta.Solver, err)
	}
	meta.Nodes = res.Nodes
	log.Debug().
		Str("solver_status", string(res.Status)).
		Float64("objective", res.Objective).
		Int64("nodes", res.Nodes).
		Msg("assignment model solved")

	// Extract
	if !res.Status.IsOptimal() {
		return finish(outcome(res.Status), []domain.Answer{domain.NewFailureAnswer(domain.MsgNotSuccessful)}, solveTime), nil
	}

	if err := am.verify(res, nBest); err != nil {
		log.Warn().
			Err(err).
			Int("n_best", nBest).
			Float64("objective", res.Objective).
			Msg("optimal assignment failed verification")
		return finish(domain.OutcomeInfeasible, []domain.Answer{domain.NewFailureAnswer(domain.MsgNotSuccessful)}, solveTime), nil
	}
	return finish(domain.OutcomeOptimal, am.extractAnswers(fleet, res), solveTime), nil
}

func outcome(s solver.Status) string {
	switch s {
	case solver.StatusInfeasible:
		return domain.OutcomeInfeasible
	case solver.StatusTimeLimit:
		return domain.OutcomeTimeLimit
	default:
		return string(s)
	}
}

// Ensure interface is implemented.
var _ RoundTripUseCase = (*roundTripUseCase)(nil)
