package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
	"github.com/fleet-planning/round-trip-optimizer/internal/generator"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/timeutil"
	"github.com/fleet-planning/round-trip-optimizer/internal/solver"
	"github.com/fleet-planning/round-trip-optimizer/test/testutil"
)

func newOptimizer(s solver.Solver) RoundTripUseCase {
	clock := timeutil.NewStepClockFromString("2025-12-15T08:00:00Z", 10*time.Millisecond)
	return NewRoundTripUseCase(s, nil, WithClock(clock))
}

func newExactOptimizer() RoundTripUseCase {
	return newOptimizer(solver.NewBranchAndBound(nil))
}

// setupMockSolver creates a mock solver returning a fixed result.
func setupMockSolver(ctrl *gomock.Controller, res solver.Result, err error) *solver.MockSolver {
	mock := solver.NewMockSolver(ctrl)
	mock.EXPECT().Name().Return("mock").AnyTimes()
	mock.EXPECT().Solve(gomock.Any(), gomock.Any()).Return(res, err).AnyTimes()
	return mock
}

// ============================================================================
// Reference scenarios
// ============================================================================

func TestOptimize_CrossAircraftPairing(t *testing.T) {
	resp, err := newExactOptimizer().Optimize(context.Background(), testutil.TwoAircraftFleet(t), 1)
	require.NoError(t, err)

	require.Len(t, resp.Answers, 1)
	a := resp.Answers[0]
	assert.True(t, a.IsSuccess)
	assert.Equal(t, domain.MsgOptimalRoundTrip, a.Msg)
	assert.Equal(t, "A", a.DepartureAircraft)
	assert.Equal(t, "B", a.ReturnAircraft)
	assert.Equal(t, float64(70), a.Price)
	assert.False(t, a.IsSameSegment)
	require.NotNil(t, a.DeparturePath)
	require.NotNil(t, a.ReturnPath)
	assert.Equal(t, "dep-A", a.DeparturePath.Key)
	assert.Equal(t, "ret-B", a.ReturnPath.Key)

	assert.Equal(t, domain.OutcomeOptimal, resp.Metadata.Status)
	assert.Equal(t, "branch_and_bound", resp.Metadata.Solver)
	assert.Equal(t, 1, resp.Metadata.Candidates)
	assert.Equal(t, float64(70), resp.Metadata.TotalPrice)
	// four clock readings of 10ms each: start, solve start, solve end, finish
	assert.Equal(t, int64(30), resp.Metadata.DurationMs)
}

func TestOptimize_SameSegmentPairing(t *testing.T) {
	dep := testutil.NewItinerary("s1").Window(0, 100).Prices(10, 20, 10).Build(t)
	ret := testutil.NewItinerary("s1").Window(0, 100).Prices(5, 20, 5).
		Airports("y", "f", "e", "x").Build(t)
	fleet := domain.Fleet{testutil.Schedule("A", 6, testutil.Itineraries(dep), testutil.Itineraries(ret))}

	resp, err := newExactOptimizer().Optimize(context.Background(), fleet, 1)
	require.NoError(t, err)

	require.Len(t, resp.Answers, 1)
	assert.True(t, resp.Answers[0].IsSuccess)
	assert.True(t, resp.Answers[0].IsSameSegment)
	assert.Equal(t, float64(55), resp.Answers[0].Price)
}

func TestOptimize_CapacityExclusion(t *testing.T) {
	dep := testutil.NewItinerary("dep-B").Window(0, 100).Prices(10, 20, 10).Build(t)
	cheapRet := testutil.NewItinerary("ret-C").Window(150, 250).Prices(1, 1, 1).Build(t)
	ret := testutil.NewItinerary("ret-A").Window(150, 250).Prices(5, 20, 5).Build(t)

	fleet := domain.Fleet{
		testutil.Schedule("A", 8, nil, testutil.Itineraries(ret)),
		testutil.Schedule("B", 6, testutil.Itineraries(dep), nil),
		testutil.Schedule("C", 4, nil, testutil.Itineraries(cheapRet)),
	}

	resp, err := newExactOptimizer().Optimize(context.Background(), fleet, 1)
	require.NoError(t, err)

	require.Len(t, resp.Answers, 1)
	a := resp.Answers[0]
	assert.True(t, a.IsSuccess)
	assert.Equal(t, "B", a.DepartureAircraft)
	assert.Equal(t, "A", a.ReturnAircraft, "the cheaper return lacks seats")
	assert.Equal(t, float64(70), a.Price)
	assert.Equal(t, 1, resp.Metadata.Infeasible)
}

func TestOptimize_NBest(t *testing.T) {
	d1 := testutil.NewItinerary("d1").Window(0, 100).Prices(10, 20, 10).Build(t)
	d2 := testutil.NewItinerary("d2").Window(0, 100).Prices(20, 20, 20).Build(t)
	r1 := testutil.NewItinerary("r1").Window(150, 250).Prices(5, 20, 5).Build(t)
	r2 := testutil.NewItinerary("r2").Window(150, 250).Prices(15, 20, 15).Build(t)
	early := testutil.NewItinerary("r3").Window(50, 150).Prices(0, 1, 0).Build(t)

	fleet := domain.Fleet{
		testutil.Schedule("A", 6, testutil.Itineraries(d1, d2), nil),
		testutil.Schedule("B", 8, nil, testutil.Itineraries(r1, r2, early)),
	}

	tests := []struct {
		name      string
		nBest     int
		wantTotal float64
	}{
		{name: "best pairing", nBest: 1, wantTotal: 70},
		{name: "two best pairings", nBest: 2, wantTotal: 160},
		{name: "every feasible pairing", nBest: 4, wantTotal: 70 + 90 + 90 + 110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := newExactOptimizer().Optimize(context.Background(), fleet, tt.nBest)
			require.NoError(t, err)

			require.Len(t, resp.Answers, tt.nBest)
			assert.Equal(t, tt.wantTotal, resp.Metadata.TotalPrice)
			assert.Equal(t, tt.wantTotal, domain.TotalPrice(resp.Answers))
			for _, a := range resp.Answers {
				assert.True(t, a.IsSuccess)
				assert.NotEqual(t, "r3", a.ReturnPath.Key, "early return overlaps every departure")
			}
		})
	}

	t.Run("more pairings than feasible", func(t *testing.T) {
		resp, err := newExactOptimizer().Optimize(context.Background(), fleet, 5)
		require.NoError(t, err)

		require.Len(t, resp.Answers, 1)
		assert.False(t, resp.Answers[0].IsSuccess)
		assert.Equal(t, domain.MsgNotSuccessful, resp.Answers[0].Msg)
		assert.Equal(t, domain.OutcomeInfeasible, resp.Metadata.Status)
	})
}

func TestOptimize_Idempotent(t *testing.T) {
	fleet := generatedFleet(t, 3)
	uc := newExactOptimizer()

	first, err := uc.Optimize(context.Background(), fleet, 2)
	require.NoError(t, err)
	second, err := uc.Optimize(context.Background(), fleet, 2)
	require.NoError(t, err)

	assert.Equal(t, first.Metadata.TotalPrice, second.Metadata.TotalPrice)
	assert.Equal(t, first.Metadata.Status, second.Metadata.Status)
}

// ============================================================================
// Properties over generated study cases
// ============================================================================

func generatedFleet(t *testing.T, seed int64) domain.Fleet {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	params := generator.NewParameters(rng, generator.GenerateAircraft(rng, 3), generator.GenerateAirports(5))

	cfg := generator.DefaultConfig()
	cfg.Seed = seed
	g, err := generator.NewGenerator(params, &cfg)
	require.NoError(t, err)

	fleet, err := g.Generate("airport1", "airport3")
	require.NoError(t, err)
	return fleet
}

func TestOptimize_GeneratedStudyCases(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		fleet := generatedFleet(t, seed)
		seats := make(map[string]int, len(fleet))
		for _, s := range fleet {
			seats[s.Aircraft.Code] = s.Aircraft.Seats
		}

		resp, err := newExactOptimizer().Optimize(context.Background(), fleet, 2)
		require.NoError(t, err)
		if !resp.IsSuccess() {
			require.Len(t, resp.Answers, 1)
			continue
		}

		require.Len(t, resp.Answers, 2, "seed %d", seed)
		for _, a := range resp.Answers {
			dep, ret := *a.DeparturePath, *a.ReturnPath

			assert.GreaterOrEqual(t, seats[a.ReturnAircraft], seats[a.DepartureAircraft], "seed %d", seed)
			assert.Equal(t, domain.Evaluate(dep, ret).Cost, a.Price, "seed %d", seed)

			if a.IsSameSegment {
				assert.Less(t, dep.PreTripDuration()+ret.TripPostDuration(), ret.SegmentDuration(), "seed %d", seed)
			} else {
				assert.LessOrEqual(t, dep.SegmentEnd, ret.SegmentStart, "seed %d", seed)
			}
		}
	}
}

// ============================================================================
// Failure outcomes
// ============================================================================

func TestOptimize_DegenerateFleet(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := solver.NewMockSolver(ctrl)
	mock.EXPECT().Name().Return("mock").AnyTimes()
	// Solve must not be reached

	dep := testutil.NewItinerary("d").Build(t)
	fleet := domain.Fleet{
		testutil.Schedule("A", 6, testutil.Itineraries(dep), nil),
		testutil.Schedule("B", 6, nil, nil),
	}

	resp, err := newOptimizer(mock).Optimize(context.Background(), fleet, 1)
	require.NoError(t, err)

	require.Len(t, resp.Answers, 1)
	assert.False(t, resp.Answers[0].IsSuccess)
	assert.Equal(t, domain.MsgNoItineraries, resp.Answers[0].Msg)
	assert.Nil(t, resp.Answers[0].DeparturePath)
	assert.Equal(t, domain.OutcomeDegenerate, resp.Metadata.Status)
	assert.Equal(t, int64(10), resp.Metadata.DurationMs)
}

// capacityMismatchFleet has a single pairing whose return aircraft seats
// fewer passengers than the departure aircraft.
func capacityMismatchFleet(t *testing.T) domain.Fleet {
	t.Helper()
	dep := testutil.NewItinerary("dep-BIG").Window(0, 100).Prices(10, 20, 10).Build(t)
	ret := testutil.NewItinerary("ret-SMALL").Window(150, 250).Prices(5, 20, 5).Build(t)
	return domain.Fleet{
		testutil.Schedule("BIG", 9, testutil.Itineraries(dep), nil),
		testutil.Schedule("SMALL", 3, nil, testutil.Itineraries(ret)),
	}
}

func TestOptimize_SolverOutcomes(t *testing.T) {
	tests := []struct {
		name       string
		fleet      func(t *testing.T) domain.Fleet
		result     solver.Result
		wantStatus string
	}{
		{name: "infeasible", result: solver.Result{Status: solver.StatusInfeasible}, wantStatus: domain.OutcomeInfeasible},
		{name: "time limit", result: solver.Result{Status: solver.StatusTimeLimit}, wantStatus: domain.OutcomeTimeLimit},
		{
			name:       "optimal with a wrong selection count",
			result:     solver.Result{Status: solver.StatusOptimal, Values: []float64{0}},
			wantStatus: domain.OutcomeInfeasible,
		},
		{
			name:       "optimal with missing values",
			result:     solver.Result{Status: solver.StatusOptimal, Objective: 70},
			wantStatus: domain.OutcomeInfeasible,
		},
		{
			name:       "optimal with a mismatched objective",
			result:     solver.Result{Status: solver.StatusOptimal, Objective: 12345, Values: []float64{1}},
			wantStatus: domain.OutcomeInfeasible,
		},
		{
			name:       "optimal selecting a capacity-infeasible pairing",
			fleet:      capacityMismatchFleet,
			result:     solver.Result{Status: solver.StatusOptimal, Objective: 70, Values: []float64{1}},
			wantStatus: domain.OutcomeInfeasible,
		},
		{
			name:       "optimal selecting a capacity-infeasible pairing with a bogus objective",
			fleet:      capacityMismatchFleet,
			result:     solver.Result{Status: solver.StatusOptimal, Objective: 12345, Values: []float64{1}},
			wantStatus: domain.OutcomeInfeasible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mock := setupMockSolver(ctrl, tt.result, nil)

			fleet := testutil.TwoAircraftFleet(t)
			if tt.fleet != nil {
				fleet = tt.fleet(t)
			}

			resp, err := newOptimizer(mock).Optimize(context.Background(), fleet, 1)
			require.NoError(t, err)

			require.Len(t, resp.Answers, 1)
			assert.False(t, resp.Answers[0].IsSuccess)
			assert.Equal(t, domain.MsgNotSuccessful, resp.Answers[0].Msg)
			assert.Nil(t, resp.Answers[0].DeparturePath)
			assert.Equal(t, tt.wantStatus, resp.Metadata.Status)
			assert.Zero(t, resp.Metadata.TotalPrice)
		})
	}
}

func TestOptimize_SolverErrors(t *testing.T) {
	t.Run("cancellation is returned as is", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mock := setupMockSolver(ctrl, solver.Result{}, context.Canceled)

		_, err := newOptimizer(mock).Optimize(context.Background(), testutil.TwoAircraftFleet(t), 1)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("backend failure is wrapped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		backendErr := errors.New("backend crashed")
		mock := setupMockSolver(ctrl, solver.Result{}, backendErr)

		_, err := newOptimizer(mock).Optimize(context.Background(), testutil.TwoAircraftFleet(t), 1)
		assert.ErrorIs(t, err, backendErr)
		assert.Contains(t, err.Error(), "mock")
	})

	t.Run("cancelled caller context with the exact backend", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newExactOptimizer().Optimize(ctx, testutil.TwoAircraftFleet(t), 1)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestOptimize_InvalidNBest(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := solver.NewMockSolver(ctrl)
	mock.EXPECT().Name().Return("mock").AnyTimes()

	for _, nBest := range []int{0, -1, DefaultMaxNBest + 1} {
		_, err := newOptimizer(mock).Optimize(context.Background(), testutil.TwoAircraftFleet(t), nBest)
		assert.ErrorIs(t, err, domain.ErrInvalidRequest, "nBest %d", nBest)
	}
}

// ============================================================================
// Model handed to the solver
// ============================================================================

func TestOptimize_ModelSentToSolver(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := solver.NewMockSolver(ctrl)
	mock.EXPECT().Name().Return("mock").AnyTimes()
	mock.EXPECT().Solve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, m *solver.Model) (solver.Result, error) {
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "solve runs under the solver timeout")

			require.Len(t, m.Variables, 1)
			assert.Equal(t, "bs[A,B,0,0]", m.Variables[0].Name)
			assert.Equal(t, float64(70), m.Variables[0].Cost)

			require.Len(t, m.Constraints, 1)
			c := m.Constraints[0]
			assert.Equal(t, "select_n_best", c.Name)
			assert.Equal(t, solver.Equal, c.Sense)
			assert.Equal(t, float64(1), c.RHS)

			return solver.Result{Status: solver.StatusOptimal, Objective: 70, Values: []float64{1}, Nodes: 2}, nil
		},
	).Times(1)

	resp, err := newOptimizer(mock).Optimize(context.Background(), testutil.TwoAircraftFleet(t), 1)
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, int64(2), resp.Metadata.Nodes)
	assert.Equal(t, "mock", resp.Metadata.Solver)
}

func TestBuildModel(t *testing.T) {
	d1 := testutil.NewItinerary("d1").Window(0, 100).Prices(10, 20, 10).Build(t)
	r1 := testutil.NewItinerary("r1").Window(150, 250).Prices(5, 20, 5).Build(t)
	r2 := testutil.NewItinerary("r2").Window(50, 150).Prices(5, 20, 5).Build(t)

	fleet := domain.Fleet{
		testutil.Schedule("A", 6, testutil.Itineraries(d1), testutil.Itineraries(r1)),
		testutil.Schedule("B", 4, nil, testutil.Itineraries(r2)),
	}

	am, err := buildModel(context.Background(), fleet, 1)
	require.NoError(t, err)

	// A->A r1, A->B r2; B has no departures
	require.Len(t, am.candidates, 2)
	assert.Equal(t, "bs[A,A,0,0]", am.model.Variables[0].Name)
	assert.Equal(t, "bs[A,B,0,0]", am.model.Variables[1].Name)
	assert.Equal(t, domain.Feasible, am.candidates[0].reason)
	assert.Equal(t, domain.InfeasibleTiming, am.candidates[1].reason)
	assert.Equal(t, 1, am.infeasible)

	// one forced zero plus the selection constraint
	require.Len(t, am.model.Constraints, 2)
	assert.Equal(t, "bs[A,B,0,0]_timing", am.model.Constraints[0].Name)
}

func TestBuildModel_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	am, err := buildModel(ctx, testutil.TwoAircraftFleet(t), 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, am)
}

func TestAssignmentModel_Verify(t *testing.T) {
	d1 := testutil.NewItinerary("d1").Window(0, 100).Prices(10, 20, 10).Build(t)
	r1 := testutil.NewItinerary("r1").Window(150, 250).Prices(5, 20, 5).Build(t)
	r2 := testutil.NewItinerary("r2").Window(150, 250).Prices(15, 20, 15).Build(t)

	// A->A r1 (70), A->A r2 (90), A->B r1 (capacity), A->B r2 (capacity)
	fleet := domain.Fleet{
		testutil.Schedule("A", 6, testutil.Itineraries(d1), testutil.Itineraries(r1, r2)),
		testutil.Schedule("B", 4, nil, testutil.Itineraries(r1, r2)),
	}
	am, err := buildModel(context.Background(), fleet, 2)
	require.NoError(t, err)
	require.Len(t, am.candidates, 4)
	require.Equal(t, domain.InfeasibleCapacity, am.candidates[2].reason)

	tests := []struct {
		name    string
		result  solver.Result
		wantErr string
	}{
		{name: "valid", result: solver.Result{Objective: 160, Values: []float64{1, 1, 0, 0}}},
		{name: "objective within tolerance", result: solver.Result{Objective: 160.0000001, Values: []float64{1, 1, 0, 0}}},
		{name: "values length", result: solver.Result{Objective: 160, Values: []float64{1, 1}}, wantErr: "2 values for 4 variables"},
		{name: "selection count", result: solver.Result{Objective: 70, Values: []float64{1, 0, 0, 0}}, wantErr: "1 pairings selected, want 2"},
		{name: "forced zero selected", result: solver.Result{Objective: 140, Values: []float64{1, 0, 1, 0}}, wantErr: "bs[A,B,0,0] is capacity-infeasible"},
		{name: "objective mismatch", result: solver.Result{Objective: 12345, Values: []float64{1, 1, 0, 0}}, wantErr: "objective 12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := am.verify(tt.result, 2)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, errRejectedSolution)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// logEntries decodes every JSON line written to buf.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), "log line: %s", line)
		entries = append(entries, entry)
	}
	return entries
}

func findLogEntry(t *testing.T, buf *bytes.Buffer, msg string) map[string]interface{} {
	t.Helper()
	for _, entry := range logEntries(t, buf) {
		if entry["message"] == msg {
			return entry
		}
	}
	require.Failf(t, "log entry not found", "message %q in %s", msg, buf.String())
	return nil
}

func TestOptimize_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug"}, &buf)
	clock := timeutil.NewStepClockFromString("2025-12-15T08:00:00Z", 10*time.Millisecond)
	uc := NewRoundTripUseCase(solver.NewBranchAndBound(nil), nil, WithClock(clock), WithLogger(log))

	ctx := logger.ContextWithRequestID(context.Background(), "req-7")
	_, err := uc.Optimize(ctx, testutil.TwoAircraftFleet(t), 1)
	require.NoError(t, err)

	for _, msg := range []string{"assignment model built", "round trip optimization finished"} {
		entry := findLogEntry(t, &buf, msg)
		assert.Equal(t, "req-7", entry["request_id"], msg)
		assert.Equal(t, "optimizer", entry["component"], msg)
		assert.Equal(t, "branch_and_bound", entry["solver"], msg)
	}

	buf.Reset()
	_, err = uc.Optimize(context.Background(), testutil.TwoAircraftFleet(t), 1)
	require.NoError(t, err)
	assert.NotContains(t, findLogEntry(t, &buf, "round trip optimization finished"), "request_id")
}

func TestOptimize_RejectedAssignmentLogged(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := setupMockSolver(ctrl, solver.Result{Status: solver.StatusOptimal, Objective: 70, Values: []float64{1}}, nil)

	var buf bytes.Buffer
	log := logger.New(logger.DefaultConfig(), &buf)
	uc := NewRoundTripUseCase(mock, nil, WithLogger(log))

	ctx := logger.ContextWithRequestID(context.Background(), "req-8")
	resp, err := uc.Optimize(ctx, capacityMismatchFleet(t), 1)
	require.NoError(t, err)
	assert.False(t, resp.IsSuccess())

	entry := findLogEntry(t, &buf, "optimal assignment failed verification")
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "req-8", entry["request_id"])
	assert.Contains(t, entry["error"], "capacity-infeasible")
	assert.Equal(t, float64(70), entry["objective"])

	finished := findLogEntry(t, &buf, "round trip optimization finished")
	assert.Equal(t, domain.OutcomeInfeasible, finished["status"])
}

func TestNewRoundTripUseCase_Config(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := solver.NewMockSolver(ctrl)
	mock.EXPECT().Name().Return("mock").AnyTimes()

	uc := NewRoundTripUseCase(mock, &Config{SolverTimeout: time.Second, MaxNBest: 3}).(*roundTripUseCase)
	assert.Equal(t, time.Second, uc.solverTimeout)
	assert.Equal(t, 3, uc.maxNBest)

	uc = NewRoundTripUseCase(mock, nil).(*roundTripUseCase)
	assert.Equal(t, DefaultSolverTimeout, uc.solverTimeout)
	assert.Equal(t, DefaultMaxNBest, uc.maxNBest)
}
