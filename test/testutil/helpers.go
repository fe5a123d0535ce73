// Package testutil provides test helper functions and fixture builders for
// unit and integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
)

// LoadTestJSON loads a JSON file from the testdata directory.
// The filename should be relative to the testdata directory.
func LoadTestJSON(t *testing.T, filename string) []byte {
	t.Helper()

	// Get the path to testdata relative to this file
	_, currentFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}

	// Navigate to project root (testutil is in test/testutil)
	projectRoot := filepath.Join(filepath.Dir(currentFile), "..", "..")
	testDataPath := filepath.Join(projectRoot, "test", "testdata", filename)

	data, err := os.ReadFile(testDataPath)
	if err != nil {
		t.Fatalf("Failed to load test file %s: %v", filename, err)
	}
	return data
}

// Ptr returns a pointer to the given value.
// Useful for creating pointers to literals in tests.
func Ptr[T any](v T) *T {
	return &v
}

// ItineraryBuilder builds itinerary fixtures with explicit prices and windows.
// Legs are laid out back to back from the segment start over airports
// x -> e -> f -> y unless Airports is called.
type ItineraryBuilder struct {
	key       string
	start     float64
	end       float64
	prices    [3]float64
	durations [3]float64
	airports  [4]string
	next      []string
}

// NewItinerary starts a fixture with the given key, window [0, 100) and
// legs of 10 minutes priced 0.
func NewItinerary(key string) *ItineraryBuilder {
	return &ItineraryBuilder{
		key:       key,
		end:       100,
		durations: [3]float64{10, 10, 10},
		airports:  [4]string{"x", "e", "f", "y"},
	}
}

// Window sets the segment window.
func (b *ItineraryBuilder) Window(start, end float64) *ItineraryBuilder {
	b.start, b.end = start, end
	return b
}

// Prices sets the pre-reposition, trip and post-reposition prices.
func (b *ItineraryBuilder) Prices(pre, trip, post float64) *ItineraryBuilder {
	b.prices = [3]float64{pre, trip, post}
	return b
}

// Durations sets the leg durations in minutes.
func (b *ItineraryBuilder) Durations(pre, trip, post float64) *ItineraryBuilder {
	b.durations = [3]float64{pre, trip, post}
	return b
}

// Airports sets the four stops of the itinerary.
func (b *ItineraryBuilder) Airports(pre, from, to, post string) *ItineraryBuilder {
	b.airports = [4]string{pre, from, to, post}
	return b
}

// Next sets the continuous chain keys.
func (b *ItineraryBuilder) Next(keys ...string) *ItineraryBuilder {
	b.next = keys
	return b
}

// Build creates the itinerary, failing the test on invalid input.
func (b *ItineraryBuilder) Build(t testing.TB) domain.Itinerary {
	t.Helper()

	var legs [3]domain.Flight
	clock := b.start
	for i := range legs {
		f, err := domain.NewFlight(b.airports[i], b.airports[i+1], b.prices[i], clock, clock+b.durations[i])
		if err != nil {
			t.Fatalf("invalid fixture flight: %v", err)
		}
		legs[i] = f
		clock += b.durations[i]
	}

	it, err := domain.NewItinerary(b.key, b.start, b.end, legs[0], legs[1], legs[2], b.next)
	if err != nil {
		t.Fatalf("invalid fixture itinerary: %v", err)
	}
	return it
}

// Schedule creates an aircraft schedule fixture.
func Schedule(code string, seats int, departures, returns []domain.Itinerary) domain.AircraftSchedule {
	s := domain.NewAircraftSchedule(domain.Aircraft{Code: code, Seats: seats})
	s.Departures = append(s.Departures, departures...)
	s.Returns = append(s.Returns, returns...)
	return s
}

// Itineraries is a readability helper for Schedule arguments.
func Itineraries(its ...domain.Itinerary) []domain.Itinerary {
	return its
}

// TwoAircraftFleet is the reference cross-aircraft case: aircraft A (6 seats)
// has one departure priced {10, 20, 10} ending at minute 100 and aircraft B
// (8 seats) has one return priced {5, 20, 5} starting at minute 150.
// The only pairing costs 70.
func TwoAircraftFleet(t testing.TB) domain.Fleet {
	t.Helper()
	dep := NewItinerary("dep-A").Window(0, 100).Prices(10, 20, 10).Build(t)
	ret := NewItinerary("ret-B").Window(150, 250).Prices(5, 20, 5).
		Airports("y", "f", "e", "x").Build(t)

	return domain.Fleet{
		Schedule("A", 6, Itineraries(dep), nil),
		Schedule("B", 8, nil, Itineraries(ret)),
	}
}
