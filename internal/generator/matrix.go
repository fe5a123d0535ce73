package generator

import (
	"fmt"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
)

// Matrix is a square airport-by-airport table of float values.
type Matrix struct {
	names  []string
	index  map[string]int
	values [][]float64
}

// NewMatrix creates a zero-filled matrix over the given airports.
func NewMatrix(airports []string) *Matrix {
	m := &Matrix{
		names:  append([]string(nil), airports...),
		index:  make(map[string]int, len(airports)),
		values: make([][]float64, len(airports)),
	}
	for i, name := range airports {
		m.index[name] = i
		m.values[i] = make([]float64, len(airports))
	}
	return m
}

// Airports returns the airport names in matrix order.
func (m *Matrix) Airports() []string {
	return append([]string(nil), m.names...)
}

// Has reports whether the airport belongs to the matrix.
func (m *Matrix) Has(airport string) bool {
	_, ok := m.index[airport]
	return ok
}

// At returns the value for the ordered pair (from, to).
// Returns a wrapped ErrUnknownAirport if either airport is missing.
func (m *Matrix) At(from, to string) (float64, error) {
	i, ok := m.index[from]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownAirport, from)
	}
	j, ok := m.index[to]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownAirport, to)
	}
	return m.values[i][j], nil
}

func (m *Matrix) set(i, j int, v float64) {
	m.values[i][j] = v
}

func (m *Matrix) get(i, j int) float64 {
	return m.values[i][j]
}
