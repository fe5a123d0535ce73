package solver

import "context"

//go:generate mockgen -source=solver.go -destination=mock_solver.go -package=solver

// Solver solves a 0-1 model to optimality.
//
// Implementations must honor ctx: when its deadline passes the search stops and
// reports StatusTimeLimit; when ctx is cancelled for any other reason the
// cancellation error is returned.
type Solver interface {
	// Name returns the backend identifier used in logs and metrics.
	Name() string

	// Solve minimizes the model objective subject to its constraints.
	Solve(ctx context.Context, m *Model) (Result, error)
}
