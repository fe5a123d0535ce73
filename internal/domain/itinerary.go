package domain

import (
	"fmt"
	"slices"
)

// Itinerary is one candidate repositioning pattern around the required trip leg:
// the aircraft flies from its position to the required origin (PreReposition),
// flies the required leg (Trip) and then repositions again (PostReposition).
type Itinerary struct {
	// Key is the reservation key. Outbound and return options sharing a key
	// belong to the same physical out-and-back segment.
	Key string `json:"key" yaml:"key"`

	// SegmentStart is the start of the segment window in minutes (inclusive)
	SegmentStart float64 `json:"segmentStart" yaml:"segmentStart"`

	// SegmentEnd is the end of the segment window in minutes (exclusive)
	SegmentEnd float64 `json:"segmentEnd" yaml:"segmentEnd"`

	// PreReposition moves the aircraft to the required origin
	PreReposition Flight `json:"preReposition" yaml:"preReposition"`

	// Trip is the required leg
	Trip Flight `json:"trip" yaml:"trip"`

	// PostReposition moves the aircraft away from the required destination
	PostReposition Flight `json:"postReposition" yaml:"postReposition"`

	// NextPossibleSegments lists keys of options this one may legally follow
	// without re-idling the aircraft (continuous chain membership).
	NextPossibleSegments []string `json:"nextPossibleSegments,omitempty" yaml:"nextPossibleSegments,omitempty"`
}

// NewItinerary creates an itinerary option and checks its window.
// The chain key list is copied so the option never shares its container.
// Returns a wrapped ErrInvalidItinerary when segmentEnd <= segmentStart.
func NewItinerary(key string, segmentStart, segmentEnd float64, pre, trip, post Flight, next []string) (Itinerary, error) {
	if key == "" {
		return Itinerary{}, fmt.Errorf("%w: key is required", ErrInvalidItinerary)
	}
	if !(segmentEnd > segmentStart) {
		return Itinerary{}, fmt.Errorf("%w: segment %q window [%v, %v) is not positive",
			ErrInvalidItinerary, key, segmentStart, segmentEnd)
	}

	it := Itinerary{
		Key:            key,
		SegmentStart:   segmentStart,
		SegmentEnd:     segmentEnd,
		PreReposition:  pre,
		Trip:           trip,
		PostReposition: post,
	}
	if len(next) > 0 {
		it.NextPossibleSegments = slices.Clone(next)
	}
	return it, nil
}

// SegmentDuration returns the length of the segment window in minutes.
func (it Itinerary) SegmentDuration() float64 {
	return it.SegmentEnd - it.SegmentStart
}

// PreTripPrice returns the price of the pre-reposition and the required leg.
func (it Itinerary) PreTripPrice() float64 {
	return it.PreReposition.Price + it.Trip.Price
}

// TripPostPrice returns the price of the required leg and the post-reposition.
func (it Itinerary) TripPostPrice() float64 {
	return it.Trip.Price + it.PostReposition.Price
}

// TotalPrice returns the price of all three legs.
func (it Itinerary) TotalPrice() float64 {
	return it.PreReposition.Price + it.Trip.Price + it.PostReposition.Price
}

// PreTripDuration returns the flying time of the pre-reposition and the required leg.
func (it Itinerary) PreTripDuration() float64 {
	return it.PreReposition.Duration() + it.Trip.Duration()
}

// TripPostDuration returns the flying time of the required leg and the post-reposition.
func (it Itinerary) TripPostDuration() float64 {
	return it.Trip.Duration() + it.PostReposition.Duration()
}

// TotalDuration returns the flying time of all three legs.
func (it Itinerary) TotalDuration() float64 {
	return it.PreReposition.Duration() + it.Trip.Duration() + it.PostReposition.Duration()
}

// Follows reports whether this option may continue the segment identified by key,
// either because it is the same segment or because it lists key in its chain.
func (it Itinerary) Follows(key string) bool {
	return it.Key == key || slices.Contains(it.NextPossibleSegments, key)
}

// String renders a compact one-line summary, mostly for logs and the CLI.
func (it Itinerary) String() string {
	short := it.Key
	if len(short) > 3 {
		short = short[len(short)-3:]
	}
	return fmt.Sprintf("..%s: %s | %s | %s : (%s, %s) = %.2f",
		short, it.PreReposition, it.Trip, it.PostReposition,
		formatMinutes(it.SegmentStart), formatMinutes(it.SegmentEnd), it.TotalPrice())
}
