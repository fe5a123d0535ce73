package generator

import (
	"math"

	"github.com/google/uuid"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
)

// BuildRequest describes one itinerary option to build:
// Pre -> From (reposition), From -> To (required leg), To -> Post (reposition).
type BuildRequest struct {
	// AircraftCode selects the time and cost matrices
	AircraftCode string

	// Pre is where the aircraft starts before the required leg
	Pre string

	// From is the required leg origin
	From string

	// To is the required leg destination
	To string

	// Post is where the aircraft ends after the required leg
	Post string

	// StartTime is the segment start in minutes
	StartTime float64

	// FreeTime is idle buffer added on top of the flying time, in minutes
	FreeTime float64

	// MaxTime is the operating ceiling the segment is clipped to
	MaxTime float64

	// Key is the reservation key; empty means a fresh key is drawn
	Key string

	// Chain lists the keys of the continuous chain this option belongs to
	Chain []string
}

// Builder turns build requests into itinerary options using one parameter set.
type Builder struct {
	params *Parameters
	newKey func() string
}

// NewBuilder creates a builder. newKey supplies keys for requests without one;
// nil falls back to random UUIDs.
func NewBuilder(params *Parameters, newKey func() string) *Builder {
	if newKey == nil {
		newKey = uuid.NewString
	}
	return &Builder{params: params, newKey: newKey}
}

// Build computes a single itinerary option.
//
// The three legs are laid out back to back from StartTime. The segment ends at
// min(StartTime + flying time + FreeTime, MaxTime); the legs keep their natural
// times even when the window is clipped.
// Returns a wrapped ErrInvalidItinerary when the clipped window is not positive.
func (b *Builder) Build(req BuildRequest) (domain.Itinerary, error) {
	stops := [4]string{req.Pre, req.From, req.To, req.Post}

	var legs [3]domain.Flight
	clock := req.StartTime
	for i := range legs {
		duration, price, err := b.params.Leg(req.AircraftCode, stops[i], stops[i+1])
		if err != nil {
			return domain.Itinerary{}, err
		}
		legs[i], err = domain.NewFlight(stops[i], stops[i+1], price, clock, clock+duration)
		if err != nil {
			return domain.Itinerary{}, err
		}
		clock += duration
	}

	key := req.Key
	if key == "" {
		key = b.newKey()
	}

	segmentEnd := math.Min(clock+req.FreeTime, req.MaxTime)
	return domain.NewItinerary(key, req.StartTime, segmentEnd, legs[0], legs[1], legs[2], req.Chain)
}
