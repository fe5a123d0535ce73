package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItineraryBuilder(t *testing.T) {
	it := NewItinerary("k1").
		Window(100, 200).
		Prices(10, 20, 30).
		Durations(5, 15, 25).
		Next("k0", "k1").
		Build(t)

	assert.Equal(t, "k1", it.Key)
	assert.Equal(t, float64(100), it.SegmentStart)
	assert.Equal(t, float64(200), it.SegmentEnd)
	assert.Equal(t, float64(60), it.TotalPrice())
	assert.Equal(t, float64(45), it.TotalDuration())
	assert.Equal(t, float64(105), it.Trip.StartTime)
	assert.Equal(t, float64(145), it.PostReposition.EndTime)
	assert.Equal(t, []string{"k0", "k1"}, it.NextPossibleSegments)
}

func TestSchedule(t *testing.T) {
	dep := NewItinerary("d").Build(t)
	s := Schedule("A", 6, Itineraries(dep), nil)

	assert.Equal(t, "A", s.Aircraft.Code)
	assert.Equal(t, 6, s.Aircraft.Seats)
	assert.Len(t, s.Departures, 1)
	assert.NotNil(t, s.Returns)
	assert.Empty(t, s.Returns)
}

func TestTwoAircraftFleet(t *testing.T) {
	fleet := TwoAircraftFleet(t)

	require.Len(t, fleet, 2)
	departures, returns := fleet.CountOptions()
	assert.Equal(t, 1, departures)
	assert.Equal(t, 1, returns)
	assert.False(t, fleet.IsDegenerate())
}

func TestPtr(t *testing.T) {
	intVal := Ptr(42)
	require.NotNil(t, intVal)
	assert.Equal(t, 42, *intVal)

	seed := Ptr(int64(77))
	assert.Equal(t, int64(77), *seed)
}

func TestLoadTestJSON(t *testing.T) {
	data := LoadTestJSON(t, "optimize_request.json")
	assert.NotEmpty(t, data)
	assert.Contains(t, string(data), "departureItineraries")
}
