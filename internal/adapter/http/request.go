// Package http provides the HTTP handler layer for the round-trip optimizer API.
// It handles request parsing, validation, and response formatting.
package http

import (
	"fmt"
	"math"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
)

// OptimizeRequest represents the request body for a round-trip optimization.
type OptimizeRequest struct {
	// NBest is the number of pairings to select (1 to the configured maximum)
	NBest int `json:"nBest" example:"1"`

	// Fleet holds the departure and return options of every aircraft
	Fleet []AircraftScheduleDTO `json:"fleet"`
}

// StudyCaseRequest represents the request body for study-case generation.
type StudyCaseRequest struct {
	// AircraftCount is the number of aircraft to generate (default: 3)
	AircraftCount int `json:"aircraftCount,omitempty" example:"3"`

	// AirportCount is the number of airports to generate (default: 5)
	AirportCount int `json:"airportCount,omitempty" example:"5"`

	// Days is the planning horizon (default: server setting)
	Days int `json:"days,omitempty" example:"5"`

	// FromAirport is the required leg origin
	FromAirport string `json:"fromAirport" example:"airport1"`

	// ToAirport is the required leg destination
	ToAirport string `json:"toAirport" example:"airport3"`

	// Seed drives every random draw (default: server setting)
	Seed *int64 `json:"seed,omitempty" example:"77"`

	// Optimize also runs the optimizer on the generated fleet
	Optimize bool `json:"optimize,omitempty"`

	// NBest is used when Optimize is set (default: 1)
	NBest int `json:"nBest,omitempty" example:"1"`
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors holds multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}
	return v.Errors[0].Message
}

// Add adds a validation error.
func (v *ValidationErrors) Add(field, message string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// ToMap converts validation errors to a map for API response.
// When a field fails more than once the first message wins.
func (v *ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string, len(v.Errors))
	for _, e := range v.Errors {
		if _, ok := result[e.Field]; !ok {
			result[e.Field] = e.Message
		}
	}
	return result
}

// Validate validates the optimization request and returns any validation errors.
// The optimizer assumes validated input, so everything it relies on is checked here.
func (r *OptimizeRequest) Validate(maxNBest int) error {
	errs := &ValidationErrors{}

	if r.NBest < 1 || r.NBest > maxNBest {
		errs.Add("nBest", fmt.Sprintf("nBest must be between 1 and %d", maxNBest))
	}

	if len(r.Fleet) == 0 {
		errs.Add("fleet", "fleet must contain at least one aircraft")
		return errs
	}

	seen := make(map[string]bool, len(r.Fleet))
	var departures, returns int
	for i := range r.Fleet {
		s := &r.Fleet[i]
		prefix := fmt.Sprintf("fleet[%d]", i)

		switch {
		case s.Aircraft.Code == "":
			errs.Add(prefix+".aircraft.aircraftCode", "aircraftCode is required")
		case seen[s.Aircraft.Code]:
			errs.Add(prefix+".aircraft.aircraftCode", fmt.Sprintf("aircraftCode %q is duplicated", s.Aircraft.Code))
		default:
			seen[s.Aircraft.Code] = true
		}
		if s.Aircraft.Seats < 1 {
			errs.Add(prefix+".aircraft.seats", "seats must be positive")
		}

		for j := range s.Departures {
			validateItinerary(errs, fmt.Sprintf("%s.departureItineraries[%d]", prefix, j), &s.Departures[j])
		}
		for j := range s.Returns {
			validateItinerary(errs, fmt.Sprintf("%s.returnItineraries[%d]", prefix, j), &s.Returns[j])
		}
		departures += len(s.Departures)
		returns += len(s.Returns)
	}

	if departures == 0 {
		errs.Add("departureItineraries", "at least one departure itinerary is required across the fleet")
	}
	if returns == 0 {
		errs.Add("returnItineraries", "at least one return itinerary is required across the fleet")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func validateItinerary(errs *ValidationErrors, field string, it *ItineraryDTO) {
	if it.Key == "" {
		errs.Add(field+".key", "key is required")
	}
	if !(it.SegmentEnd > it.SegmentStart) {
		errs.Add(field+".segmentEnd", "segmentEnd must be after segmentStart")
	}
	validateFlight(errs, field+".preReposition", &it.PreReposition)
	validateFlight(errs, field+".trip", &it.Trip)
	validateFlight(errs, field+".postReposition", &it.PostReposition)
}

func validateFlight(errs *ValidationErrors, field string, f *FlightDTO) {
	if f.FromAirport == "" || f.ToAirport == "" {
		errs.Add(field, "fromAirport and toAirport are required")
	}
	if f.Price < 0 || math.IsInf(f.Price, 0) {
		errs.Add(field+".price", "price must be non-negative")
	}
	if !(f.EndTime > f.StartTime) {
		errs.Add(field+".endTime", "endTime must be after startTime")
	}
}

// Validate validates the study-case request. Zero values select defaults;
// the generator checks the airports against the generated set.
func (r *StudyCaseRequest) Validate(maxNBest int) error {
	errs := &ValidationErrors{}

	if r.AircraftCount < 0 || r.AircraftCount > domain.MaxStudyAircraft {
		errs.Add("aircraftCount", fmt.Sprintf("aircraftCount must be between 1 and %d", domain.MaxStudyAircraft))
	}
	if r.AirportCount != 0 && (r.AirportCount < 2 || r.AirportCount > domain.MaxStudyAirports) {
		errs.Add("airportCount", fmt.Sprintf("airportCount must be between 2 and %d", domain.MaxStudyAirports))
	}
	if r.Days < 0 || r.Days > domain.MaxStudyDays {
		errs.Add("days", fmt.Sprintf("days must be between 1 and %d", domain.MaxStudyDays))
	}
	if r.FromAirport == "" {
		errs.Add("fromAirport", "fromAirport is required")
	}
	if r.ToAirport == "" {
		errs.Add("toAirport", "toAirport is required")
	}
	if r.FromAirport != "" && r.FromAirport == r.ToAirport {
		errs.Add("toAirport", "toAirport must be different from fromAirport")
	}
	if r.NBest < 0 || r.NBest > maxNBest {
		errs.Add("nBest", fmt.Sprintf("nBest must be between 1 and %d", maxNBest))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
