// Package domain contains the core entities and rules for round-trip fleet planning.
// These entities are transport-agnostic and form the foundation upon which the
// generator, the optimizer and the HTTP layer are built.
package domain

import (
	"fmt"
	"math"
	"strconv"
)

// Flight represents one directed leg flown by an aircraft.
// Times are absolute minutes on the study-case clock.
type Flight struct {
	// FromAirport is the origin airport identifier
	FromAirport string `json:"fromAirport" yaml:"fromAirport"`

	// ToAirport is the destination airport identifier
	ToAirport string `json:"toAirport" yaml:"toAirport"`

	// Price is the cost of flying this leg
	Price float64 `json:"price" yaml:"price"`

	// StartTime is the departure time in minutes
	StartTime float64 `json:"startTime" yaml:"startTime"`

	// EndTime is the arrival time in minutes
	EndTime float64 `json:"endTime" yaml:"endTime"`
}

// NewFlight creates a flight with absolute start and end times.
// Returns a wrapped ErrInvalidFlight if end is not after start or price is negative.
func NewFlight(from, to string, price, start, end float64) (Flight, error) {
	f := Flight{
		FromAirport: from,
		ToAirport:   to,
		Price:       price,
		StartTime:   start,
		EndTime:     end,
	}
	if err := f.Validate(); err != nil {
		return Flight{}, err
	}
	return f, nil
}

// Validate checks the flight invariants.
func (f Flight) Validate() error {
	if f.FromAirport == "" || f.ToAirport == "" {
		return fmt.Errorf("%w: origin and destination are required", ErrInvalidFlight)
	}
	if math.IsNaN(f.Price) || f.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative, got %v", ErrInvalidFlight, f.Price)
	}
	if !(f.EndTime > f.StartTime) {
		return fmt.Errorf("%w: %s -> %s end time %v must be after start time %v",
			ErrInvalidFlight, f.FromAirport, f.ToAirport, f.EndTime, f.StartTime)
	}
	return nil
}

// Duration returns the leg duration in minutes.
func (f Flight) Duration() float64 {
	return f.EndTime - f.StartTime
}

// String renders the flight as "(start,end) from -> to: price".
func (f Flight) String() string {
	return "(" + formatMinutes(f.StartTime) + "," + formatMinutes(f.EndTime) + ") " +
		f.FromAirport + " -> " + f.ToAirport + ": " + strconv.FormatFloat(f.Price, 'f', 2, 64)
}

func formatMinutes(m float64) string {
	return strconv.FormatFloat(math.Round(m), 'f', 0, 64)
}
