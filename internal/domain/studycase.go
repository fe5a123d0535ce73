package domain

import (
	"fmt"
	"regexp"
)

// Study case limits.
const (
	MaxStudyAircraft = 50
	MaxStudyAirports = 100
	MaxStudyDays     = 31
)

// StudyCaseCriteria defines the parameters of a synthetic study case.
type StudyCaseCriteria struct {
	// AircraftCount is the number of aircraft to generate (default: 3)
	AircraftCount int `json:"aircraftCount"`

	// AirportCount is the number of airports to generate (default: 5)
	AirportCount int `json:"airportCount"`

	// Days is the planning horizon in days (default: generator setting)
	Days int `json:"days"`

	// FromAirport is the required leg origin, e.g. "airport1"
	FromAirport string `json:"fromAirport"`

	// ToAirport is the required leg destination, e.g. "airport3"
	ToAirport string `json:"toAirport"`

	// Seed drives every random draw; nil means the configured seed
	Seed *int64 `json:"seed,omitempty"`

	// Optimize runs the optimizer on the generated fleet
	Optimize bool `json:"optimize"`

	// NBest is the number of pairings to select when Optimize is set (default: 1)
	NBest int `json:"nBest"`
}

// airportNameRegex matches generated airport names.
var airportNameRegex = regexp.MustCompile(`^airport\d+$`)

// SetDefaults applies default values to empty optional fields.
func (c *StudyCaseCriteria) SetDefaults() {
	if c.AircraftCount == 0 {
		c.AircraftCount = 3
	}
	if c.AirportCount == 0 {
		c.AirportCount = 5
	}
	if c.NBest == 0 {
		c.NBest = 1
	}
}

// Validate checks the criteria.
// Returns a wrapped ErrInvalidRequest error if validation fails.
func (c *StudyCaseCriteria) Validate() error {
	if c.AircraftCount < 1 || c.AircraftCount > MaxStudyAircraft {
		return fmt.Errorf("%w: aircraftCount must be between 1 and %d", ErrInvalidRequest, MaxStudyAircraft)
	}
	if c.AirportCount < 2 || c.AirportCount > MaxStudyAirports {
		return fmt.Errorf("%w: airportCount must be between 2 and %d", ErrInvalidRequest, MaxStudyAirports)
	}
	if c.Days < 0 || c.Days > MaxStudyDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidRequest, MaxStudyDays)
	}
	if c.NBest < 1 {
		return fmt.Errorf("%w: nBest must be at least 1", ErrInvalidRequest)
	}

	for _, f := range [2]struct{ field, airport string }{
		{"fromAirport", c.FromAirport},
		{"toAirport", c.ToAirport},
	} {
		field, airport := f.field, f.airport
		if airport == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidRequest, field)
		}
		if !airportNameRegex.MatchString(airport) {
			return fmt.Errorf("%w: %s must look like airport<N>, got %q", ErrInvalidRequest, field, airport)
		}
	}
	if c.FromAirport == c.ToAirport {
		return fmt.Errorf("%w: fromAirport and toAirport must be different", ErrInvalidRequest)
	}
	return nil
}
