// Package solver defines the boundary between the round-trip optimizer and an
// exact 0-1 optimization backend: binary decision variables, a linear
// objective to minimize and linear constraints. Any backend that implements
// Solver and reproduces optimality guarantees can be plugged in.
package solver

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidModel is returned when a model references unknown variables or
// carries non-finite coefficients.
var ErrInvalidModel = errors.New("invalid model")

// Sense is the relation of a linear constraint to its right-hand side.
type Sense int

// Constraint senses.
const (
	LessEqual Sense = iota
	Equal
	GreaterEqual
)

// String returns the mathematical operator of the sense.
func (s Sense) String() string {
	switch s {
	case LessEqual:
		return "<="
	case Equal:
		return "=="
	case GreaterEqual:
		return ">="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// Status is the termination status reported by a backend.
type Status string

// Termination statuses.
const (
	// StatusOptimal means the returned assignment is a proven minimum.
	StatusOptimal Status = "optimal"

	// StatusInfeasible means no assignment satisfies the constraints.
	StatusInfeasible Status = "infeasible"

	// StatusTimeLimit means the search stopped before proving optimality.
	StatusTimeLimit Status = "time_limit"
)

// IsOptimal reports whether the status carries a usable assignment.
func (s Status) IsOptimal() bool {
	return s == StatusOptimal
}

// Variable is a binary decision variable.
type Variable struct {
	// Name identifies the variable in logs, e.g. "bs[aircraft0,aircraft1,0,2]"
	Name string

	// Cost is the objective coefficient
	Cost float64
}

// Term is one coefficient-variable product of a constraint.
type Term struct {
	Var  int
	Coef float64
}

// Constraint is a linear constraint: sum(Terms) Sense RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// Model is a 0-1 linear program with a minimization objective.
type Model struct {
	Name        string
	Variables   []Variable
	Constraints []Constraint
}

// NewModel creates an empty model.
func NewModel(name string) *Model {
	return &Model{
		Name:        name,
		Variables:   make([]Variable, 0),
		Constraints: make([]Constraint, 0),
	}
}

// AddVariable appends a binary variable and returns its index.
func (m *Model) AddVariable(name string, cost float64) int {
	m.Variables = append(m.Variables, Variable{Name: name, Cost: cost})
	return len(m.Variables) - 1
}

// AddConstraint appends a linear constraint.
func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{
		Name:  name,
		Terms: terms,
		Sense: sense,
		RHS:   rhs,
	})
}

// FixZero forces a variable to zero.
func (m *Model) FixZero(name string, v int) {
	m.AddConstraint(name, []Term{{Var: v, Coef: 1}}, Equal, 0)
}

// Validate checks that every term references a declared variable and that
// all numbers are finite.
func (m *Model) Validate() error {
	for i, v := range m.Variables {
		if !isFinite(v.Cost) {
			return fmt.Errorf("%w: variable %d (%s) has non-finite cost", ErrInvalidModel, i, v.Name)
		}
	}
	for _, c := range m.Constraints {
		if c.Sense < LessEqual || c.Sense > GreaterEqual {
			return fmt.Errorf("%w: constraint %q has unknown sense %s", ErrInvalidModel, c.Name, c.Sense)
		}
		if !isFinite(c.RHS) {
			return fmt.Errorf("%w: constraint %q has non-finite right-hand side", ErrInvalidModel, c.Name)
		}
		for _, t := range c.Terms {
			if t.Var < 0 || t.Var >= len(m.Variables) {
				return fmt.Errorf("%w: constraint %q references variable %d of %d",
					ErrInvalidModel, c.Name, t.Var, len(m.Variables))
			}
			if !isFinite(t.Coef) {
				return fmt.Errorf("%w: constraint %q has non-finite coefficient", ErrInvalidModel, c.Name)
			}
		}
	}
	return nil
}

// Result is what a backend returns after solving a model.
type Result struct {
	// Status is the termination status
	Status Status

	// Objective is the objective value of Values; meaningful when Status is optimal
	Objective float64

	// Values holds 0 or 1 per variable; set only when Status is optimal
	Values []float64

	// Nodes is the number of search nodes explored
	Nodes int64
}

// Selected returns the indices of the variables set to 1.
func (r Result) Selected() []int {
	out := make([]int, 0)
	for i, v := range r.Values {
		if v > 0.5 {
			out = append(out, i)
		}
	}
	return out
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
