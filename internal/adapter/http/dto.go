package http

// FlightDTO is a single flight leg of an itinerary option.
// Times are absolute minutes from the start of the planning horizon.
type FlightDTO struct {
	FromAirport string  `json:"fromAirport" example:"x"`
	ToAirport   string  `json:"toAirport" example:"e"`
	Price       float64 `json:"price" example:"10"`
	StartTime   float64 `json:"startTime" example:"0"`
	EndTime     float64 `json:"endTime" example:"10"`
}

// ItineraryDTO is one departure or return option: a reposition leg, the
// required trip and a reposition leg, inside the window [segmentStart, segmentEnd).
type ItineraryDTO struct {
	Key                  string    `json:"key" example:"dep-A"`
	SegmentStart         float64   `json:"segmentStart" example:"0"`
	SegmentEnd           float64   `json:"segmentEnd" example:"100"`
	PreReposition        FlightDTO `json:"preReposition"`
	Trip                 FlightDTO `json:"trip"`
	PostReposition       FlightDTO `json:"postReposition"`
	NextPossibleSegments []string  `json:"nextPossibleSegments,omitempty"`
}

// AircraftDTO identifies an aircraft and its seat capacity.
type AircraftDTO struct {
	Code  string `json:"aircraftCode" example:"A"`
	Seats int    `json:"seats" example:"6"`
}

// AircraftScheduleDTO holds the option arrays of one aircraft.
type AircraftScheduleDTO struct {
	Aircraft   AircraftDTO    `json:"aircraft"`
	Departures []ItineraryDTO `json:"departureItineraries"`
	Returns    []ItineraryDTO `json:"returnItineraries"`
}
