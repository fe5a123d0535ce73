package solver

import (
	"context"
	"errors"
	"math"
	"sort"
)

const (
	// eps absorbs floating point noise in activity and bound comparisons.
	eps = 1e-9

	// checkEvery is the node interval between context checks (power of two minus one).
	checkEvery = 4095
)

// Config tunes the branch-and-bound backend.
type Config struct {
	// MaxNodes stops the search with StatusTimeLimit after this many nodes (0 = no limit)
	MaxNodes int64
}

// BranchAndBound is an exact depth-first branch-and-bound backend for 0-1 models.
//
// Search outline:
//  1. Presolve: single-variable constraints become variable fixings.
//  2. Free variables are branched in ascending cost order (index tie-break),
//     trying 1 before 0, so the first leaf reached is usually a strong incumbent.
//  3. Each constraint tracks its activity and the minimum and maximum
//     contribution still available from unassigned variables; a branch is cut
//     as soon as a constraint can no longer be satisfied.
//  4. Lower bound = cost so far + negative remaining costs + the cheapest
//     completion of every cardinality constraint (all coefficients 1, sense
//     == or >=). The bound is admissible, so pruning keeps optimality.
//
// The search is deterministic: equal inputs give equal assignments.
// A BranchAndBound value holds no per-solve state and is safe for concurrent use.
type BranchAndBound struct {
	maxNodes int64
}

// NewBranchAndBound creates the backend. A nil config means no node limit.
func NewBranchAndBound(cfg *Config) *BranchAndBound {
	b := &BranchAndBound{}
	if cfg != nil && cfg.MaxNodes > 0 {
		b.maxNodes = cfg.MaxNodes
	}
	return b
}

// Name implements Solver.
func (b *BranchAndBound) Name() string {
	return "branch_and_bound"
}

// Solve implements Solver.
func (b *BranchAndBound) Solve(ctx context.Context, m *Model) (Result, error) {
	if m == nil {
		return Result{}, ErrInvalidModel
	}
	if err := m.Validate(); err != nil {
		return Result{}, err
	}
	if res, done, err := contextOutcome(ctx); done {
		return res, err
	}

	e, feasible := newEngine(m)
	if !feasible {
		return Result{Status: StatusInfeasible}, nil
	}
	e.ctx = ctx
	e.maxNodes = b.maxNodes

	e.search(0, e.baseCost)

	if e.stopErr != nil {
		if errors.Is(e.stopErr, context.DeadlineExceeded) || errors.Is(e.stopErr, errNodeLimit) {
			return Result{Status: StatusTimeLimit, Nodes: e.nodes}, nil
		}
		return Result{Nodes: e.nodes}, e.stopErr
	}
	if !e.found {
		return Result{Status: StatusInfeasible, Nodes: e.nodes}, nil
	}
	return Result{
		Status:    StatusOptimal,
		Objective: e.bestCost,
		Values:    e.bestValues,
		Nodes:     e.nodes,
	}, nil
}

var errNodeLimit = errors.New("node limit reached")

// contextOutcome maps an already finished context to a solve outcome.
func contextOutcome(ctx context.Context) (Result, bool, error) {
	err := ctx.Err()
	if err == nil {
		return Result{}, false, nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Result{Status: StatusTimeLimit}, true, nil
	}
	return Result{}, true, err
}

// row is the search-time state of a multi-variable constraint.
type row struct {
	sense    Sense
	rhs      float64
	activity float64 // contribution of assigned and fixed variables
	minRem   float64 // sum of negative coefficients of unassigned variables
	maxRem   float64 // sum of positive coefficients of unassigned variables

	// cardinality rows only: membership of free variables
	member []bool
}

func (r *row) satisfiable() bool {
	if r.sense != GreaterEqual && r.activity+r.minRem > r.rhs+eps {
		return false
	}
	if r.sense != LessEqual && r.activity+r.maxRem < r.rhs-eps {
		return false
	}
	return true
}

type rowRef struct {
	row  int
	coef float64
}

type engine struct {
	ctx      context.Context
	maxNodes int64
	nodes    int64
	stopErr  error

	cost     []float64
	values   []float64
	order    []int     // free variables in branching order
	negTail  []float64 // negTail[d] = sum of negative costs of order[d:]
	rows     []row
	varRows  [][]rowRef
	cardRows []int

	baseCost   float64
	found      bool
	bestCost   float64
	bestValues []float64
}

// newEngine presolves the model. It reports false when the model is
// infeasible before any branching.
func newEngine(m *Model) (*engine, bool) {
	n := len(m.Variables)
	lo := make([]float64, n)
	hi := make([]float64, n)
	for i := range hi {
		hi[i] = 1
	}

	multi := make([]Constraint, 0, len(m.Constraints))
	for _, c := range m.Constraints {
		switch len(c.Terms) {
		case 0:
			if !holds(0, c.Sense, c.RHS) {
				return nil, false
			}
		case 1:
			t := c.Terms[0]
			zeroOK := holds(0, c.Sense, c.RHS)
			oneOK := holds(t.Coef, c.Sense, c.RHS)
			if !zeroOK {
				lo[t.Var] = 1
			}
			if !oneOK {
				hi[t.Var] = 0
			}
			if lo[t.Var] > hi[t.Var] {
				return nil, false
			}
		default:
			multi = append(multi, c)
		}
	}

	e := &engine{
		cost:     make([]float64, n),
		values:   make([]float64, n),
		varRows:  make([][]rowRef, n),
		order:    make([]int, 0, n),
		bestCost: math.Inf(1),
	}
	free := make([]bool, n)
	for i, v := range m.Variables {
		e.cost[i] = v.Cost
		if lo[i] < hi[i] {
			free[i] = true
			e.order = append(e.order, i)
			continue
		}
		e.values[i] = lo[i]
		e.baseCost += v.Cost * lo[i]
	}

	e.rows = make([]row, len(multi))
	for ri, c := range multi {
		r := row{sense: c.Sense, rhs: c.RHS}
		cardinality := c.Sense != LessEqual
		for _, t := range c.Terms {
			if math.Abs(t.Coef-1) > eps {
				cardinality = false
			}
			if !free[t.Var] {
				r.activity += t.Coef * e.values[t.Var]
				continue
			}
			if t.Coef < 0 {
				r.minRem += t.Coef
			} else {
				r.maxRem += t.Coef
			}
			e.varRows[t.Var] = append(e.varRows[t.Var], rowRef{row: ri, coef: t.Coef})
		}
		if !r.satisfiable() {
			return nil, false
		}
		if cardinality {
			r.member = make([]bool, n)
			for _, t := range c.Terms {
				if free[t.Var] {
					r.member[t.Var] = true
				}
			}
			e.cardRows = append(e.cardRows, ri)
		}
		e.rows[ri] = r
	}

	sort.SliceStable(e.order, func(a, b int) bool {
		ca, cb := e.cost[e.order[a]], e.cost[e.order[b]]
		if ca != cb {
			return ca < cb
		}
		return e.order[a] < e.order[b]
	})

	e.negTail = make([]float64, len(e.order)+1)
	for d := len(e.order) - 1; d >= 0; d-- {
		e.negTail[d] = e.negTail[d+1] + math.Min(0, e.cost[e.order[d]])
	}
	return e, true
}

func holds(lhs float64, sense Sense, rhs float64) bool {
	switch sense {
	case LessEqual:
		return lhs <= rhs+eps
	case GreaterEqual:
		return lhs >= rhs-eps
	default:
		return math.Abs(lhs-rhs) <= eps
	}
}

func (e *engine) search(depth int, cost float64) {
	if e.stopErr != nil || e.interrupted() {
		return
	}
	bound := cost + e.lowerBound(depth)
	if math.IsInf(bound, 1) || (e.found && bound >= e.bestCost-eps) {
		return
	}
	if depth == len(e.order) {
		e.found = true
		e.bestCost = cost
		e.bestValues = append(e.bestValues[:0], e.values...)
		return
	}

	v := e.order[depth]
	for _, val := range [2]float64{1, 0} {
		if e.assign(v, val) {
			e.values[v] = val
			e.search(depth+1, cost+val*e.cost[v])
			e.values[v] = 0
		}
		e.unassign(v, val)
		if e.stopErr != nil {
			return
		}
	}
}

// interrupted counts a node and checks the context and node limit sparsely.
func (e *engine) interrupted() bool {
	e.nodes++
	if e.maxNodes > 0 && e.nodes > e.maxNodes {
		e.stopErr = errNodeLimit
		return true
	}
	if e.nodes&checkEvery != 0 {
		return false
	}
	if err := e.ctx.Err(); err != nil {
		e.stopErr = err
		return true
	}
	return false
}

// assign moves v out of the unassigned pool of its rows with value val and
// reports whether every touched row is still satisfiable.
func (e *engine) assign(v int, val float64) bool {
	ok := true
	for _, ref := range e.varRows[v] {
		r := &e.rows[ref.row]
		if ref.coef < 0 {
			r.minRem -= ref.coef
		} else {
			r.maxRem -= ref.coef
		}
		r.activity += ref.coef * val
		if !r.satisfiable() {
			ok = false
		}
	}
	return ok
}

func (e *engine) unassign(v int, val float64) {
	for _, ref := range e.varRows[v] {
		r := &e.rows[ref.row]
		if ref.coef < 0 {
			r.minRem += ref.coef
		} else {
			r.maxRem += ref.coef
		}
		r.activity -= ref.coef * val
	}
}

// lowerBound returns an admissible bound on the cost of completing order[depth:].
func (e *engine) lowerBound(depth int) float64 {
	var extra float64
	for _, ri := range e.cardRows {
		r := &e.rows[ri]
		needed := int(math.Ceil(r.rhs - r.activity - eps))
		if needed <= 0 {
			continue
		}
		var sum float64
		count := 0
		for k := depth; k < len(e.order) && count < needed; k++ {
			v := e.order[k]
			if !r.member[v] {
				continue
			}
			sum += math.Max(0, e.cost[v])
			count++
		}
		if count < needed {
			return math.Inf(1)
		}
		extra = math.Max(extra, sum)
	}
	return e.negTail[depth] + extra
}
