package solver

import (
	"context"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cardinalityModel builds min sum(c_i x_i) s.t. sum(x_i) == k.
func cardinalityModel(costs []float64, k int) *Model {
	m := NewModel("cardinality")
	terms := make([]Term, 0, len(costs))
	for _, c := range costs {
		v := m.AddVariable("x", c)
		terms = append(terms, Term{Var: v, Coef: 1})
	}
	m.AddConstraint("pick", terms, Equal, float64(k))
	return m
}

func TestBranchAndBound_PicksCheapest(t *testing.T) {
	tests := []struct {
		name     string
		costs    []float64
		k        int
		wantSel  []int
		wantCost float64
	}{
		{name: "single best", costs: []float64{70, 55, 90}, k: 1, wantSel: []int{1}, wantCost: 55},
		{name: "two best", costs: []float64{70, 55, 90, 60}, k: 2, wantSel: []int{1, 3}, wantCost: 115},
		{name: "ties keep the lowest index", costs: []float64{10, 10, 10}, k: 2, wantSel: []int{0, 1}, wantCost: 20},
		{name: "select all", costs: []float64{3, 1, 2}, k: 3, wantSel: []int{0, 1, 2}, wantCost: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewBranchAndBound(nil).Solve(context.Background(), cardinalityModel(tt.costs, tt.k))
			require.NoError(t, err)
			require.Equal(t, StatusOptimal, res.Status)
			assert.Equal(t, tt.wantSel, res.Selected())
			assert.InDelta(t, tt.wantCost, res.Objective, 1e-9)
		})
	}
}

func TestBranchAndBound_FixZero(t *testing.T) {
	m := cardinalityModel([]float64{5, 10, 20}, 1)
	m.FixZero("forbid-cheapest", 0)

	res, err := NewBranchAndBound(nil).Solve(context.Background(), m)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, res.Status)
	assert.Equal(t, []int{1}, res.Selected())
	assert.Equal(t, float64(0), res.Values[0])
}

func TestBranchAndBound_Infeasible(t *testing.T) {
	t.Run("more selections than free variables", func(t *testing.T) {
		m := cardinalityModel([]float64{5, 10, 20}, 3)
		m.FixZero("z", 2)

		res, err := NewBranchAndBound(nil).Solve(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, StatusInfeasible, res.Status)
		assert.Nil(t, res.Values)
	})

	t.Run("contradicting fixings", func(t *testing.T) {
		m := NewModel("contradiction")
		v := m.AddVariable("x", 1)
		m.AddConstraint("one", []Term{{Var: v, Coef: 1}}, Equal, 1)
		m.FixZero("zero", v)

		res, err := NewBranchAndBound(nil).Solve(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, StatusInfeasible, res.Status)
	})

	t.Run("empty model with violated constant constraint", func(t *testing.T) {
		m := NewModel("empty")
		m.AddConstraint("pick", nil, Equal, 1)

		res, err := NewBranchAndBound(nil).Solve(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, StatusInfeasible, res.Status)
	})
}

func TestBranchAndBound_EmptyModel(t *testing.T) {
	res, err := NewBranchAndBound(nil).Solve(context.Background(), NewModel("empty"))
	require.NoError(t, err)
	assert.Equal(t, StatusOptimal, res.Status)
	assert.Equal(t, float64(0), res.Objective)
	assert.Empty(t, res.Selected())
}

func TestBranchAndBound_InvalidModel(t *testing.T) {
	t.Run("nil model", func(t *testing.T) {
		_, err := NewBranchAndBound(nil).Solve(context.Background(), nil)
		assert.ErrorIs(t, err, ErrInvalidModel)
	})

	t.Run("unknown variable", func(t *testing.T) {
		m := NewModel("bad")
		m.AddVariable("x", 1)
		m.AddConstraint("c", []Term{{Var: 3, Coef: 1}}, LessEqual, 1)

		_, err := NewBranchAndBound(nil).Solve(context.Background(), m)
		assert.ErrorIs(t, err, ErrInvalidModel)
	})

	t.Run("non-finite cost", func(t *testing.T) {
		m := NewModel("bad")
		m.AddVariable("x", math.Inf(1))

		_, err := NewBranchAndBound(nil).Solve(context.Background(), m)
		assert.ErrorIs(t, err, ErrInvalidModel)
	})
}

func TestBranchAndBound_Context(t *testing.T) {
	t.Run("cancelled context is an error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewBranchAndBound(nil).Solve(ctx, cardinalityModel([]float64{1, 2}, 1))
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("expired deadline is a time limit", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
		defer cancel()
		time.Sleep(time.Millisecond)

		res, err := NewBranchAndBound(nil).Solve(ctx, cardinalityModel([]float64{1, 2}, 1))
		require.NoError(t, err)
		assert.Equal(t, StatusTimeLimit, res.Status)
		assert.False(t, res.Status.IsOptimal())
	})
}

func TestBranchAndBound_NodeLimit(t *testing.T) {
	res, err := NewBranchAndBound(&Config{MaxNodes: 2}).Solve(context.Background(), cardinalityModel([]float64{4, 3, 2, 1}, 2))
	require.NoError(t, err)
	assert.Equal(t, StatusTimeLimit, res.Status)
	assert.Nil(t, res.Values)
}

// bruteForce enumerates every assignment of a small model.
func bruteForce(m *Model) (float64, bool) {
	n := len(m.Variables)
	best := math.Inf(1)
	found := false
	values := make([]float64, n)
	for mask := 0; mask < 1<<n; mask++ {
		var cost float64
		for i := 0; i < n; i++ {
			values[i] = float64((mask >> i) & 1)
			cost += values[i] * m.Variables[i].Cost
		}
		ok := true
		for _, c := range m.Constraints {
			var lhs float64
			for _, term := range c.Terms {
				lhs += term.Coef * values[term.Var]
			}
			if !holds(lhs, c.Sense, c.RHS) {
				ok = false
				break
			}
		}
		if ok && cost < best {
			best = cost
			found = true
		}
	}
	return best, found
}

func TestBranchAndBound_MatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	senses := []Sense{LessEqual, Equal, GreaterEqual}

	for round := 0; round < 200; round++ {
		n := 2 + rng.Intn(9)
		m := NewModel("random")
		for i := 0; i < n; i++ {
			m.AddVariable("x", float64(rng.Intn(41)-10))
		}
		for c := 0; c < 1+rng.Intn(3); c++ {
			terms := make([]Term, 0, n)
			for i := 0; i < n; i++ {
				if rng.Intn(2) == 0 {
					terms = append(terms, Term{Var: i, Coef: float64(rng.Intn(7) - 2)})
				}
			}
			m.AddConstraint("c", terms, senses[rng.Intn(len(senses))], float64(rng.Intn(6)))
		}
		if rng.Intn(3) == 0 {
			m.FixZero("z", rng.Intn(n))
		}

		want, feasible := bruteForce(m)
		res, err := NewBranchAndBound(nil).Solve(context.Background(), m)
		require.NoError(t, err)

		if !feasible {
			assert.Equal(t, StatusInfeasible, res.Status, "round %d", round)
			continue
		}
		require.Equal(t, StatusOptimal, res.Status, "round %d", round)
		assert.InDelta(t, want, res.Objective, 1e-9, "round %d", round)

		var recomputed float64
		for i, v := range res.Values {
			recomputed += v * m.Variables[i].Cost
		}
		assert.InDelta(t, res.Objective, recomputed, 1e-9, "round %d", round)
	}
}

func TestSense_String(t *testing.T) {
	assert.Equal(t, "<=", LessEqual.String())
	assert.Equal(t, "==", Equal.String())
	assert.Equal(t, ">=", GreaterEqual.String())
	assert.Equal(t, "Sense(7)", Sense(7).String())
}
