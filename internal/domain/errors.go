package domain

import "errors"

// Sentinel errors for the round-trip planning domain.
// Callers should wrap them with fmt.Errorf("%w: ...") and test with errors.Is.
var (
	// ErrInvalidFlight is returned when a flight leg violates its invariants
	// (end time not after start time, negative price, missing airports).
	ErrInvalidFlight = errors.New("invalid flight")

	// ErrInvalidItinerary is returned when an itinerary option cannot be built,
	// most notably when its segment window is not strictly positive.
	ErrInvalidItinerary = errors.New("invalid itinerary")

	// ErrInvalidRequest is returned when caller supplied parameters are invalid.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrUnknownAirport is returned when a lookup references an airport that
	// is not part of the generated parameter set.
	ErrUnknownAirport = errors.New("unknown airport")

	// ErrUnknownAircraft is returned when a lookup references an aircraft that
	// is not part of the generated parameter set.
	ErrUnknownAircraft = errors.New("unknown aircraft")
)
