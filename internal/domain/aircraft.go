package domain

import (
	"fmt"
	"strings"
)

// Aircraft identifies one airframe of the fleet.
type Aircraft struct {
	// Code is the aircraft identifier, unique within a fleet
	Code string `json:"aircraftCode" yaml:"aircraftCode"`

	// Seats is the passenger capacity
	Seats int `json:"seats" yaml:"seats"`
}

// String renders the aircraft as "(code: seats)".
func (a Aircraft) String() string {
	return fmt.Sprintf("(%s: %d)", a.Code, a.Seats)
}

// AircraftSchedule holds the candidate options of a single aircraft.
// It is built once per optimization run and consumed read-only.
type AircraftSchedule struct {
	// Aircraft is the airframe flying these options
	Aircraft Aircraft `json:"aircraft" yaml:"aircraft"`

	// Departures are the outbound options, in the order they were generated or supplied
	Departures []Itinerary `json:"departureItineraries" yaml:"departureItineraries"`

	// Returns are the inbound options, in the order they were generated or supplied
	Returns []Itinerary `json:"returnItineraries" yaml:"returnItineraries"`
}

// NewAircraftSchedule creates an empty schedule with its own option slices.
func NewAircraftSchedule(aircraft Aircraft) AircraftSchedule {
	return AircraftSchedule{
		Aircraft:   aircraft,
		Departures: make([]Itinerary, 0),
		Returns:    make([]Itinerary, 0),
	}
}

// String lists the departure and return options one per line.
func (s AircraftSchedule) String() string {
	var b strings.Builder
	b.WriteString(s.Aircraft.String())
	b.WriteString("\ndeparture:")
	for _, it := range s.Departures {
		b.WriteString("\n" + it.String())
	}
	b.WriteString("\nreturn:")
	for _, it := range s.Returns {
		b.WriteString("\n" + it.String())
	}
	return b.String()
}

// Fleet is the full problem instance of one optimization run:
// one schedule per aircraft.
type Fleet []AircraftSchedule

// CountOptions returns the number of departure and return options over the whole fleet.
func (f Fleet) CountOptions() (departures, returns int) {
	for _, s := range f {
		departures += len(s.Departures)
		returns += len(s.Returns)
	}
	return departures, returns
}

// IsDegenerate reports whether the fleet has no departure option or no
// return option at all, in which case no round trip can be formed.
func (f Fleet) IsDegenerate() bool {
	departures, returns := f.CountOptions()
	return departures == 0 || returns == 0
}
