// Package generator builds synthetic study cases for the round-trip optimizer:
// flight-time and flight-cost parameters, single itinerary options and whole
// fleets of departure and return options spread over a planning horizon.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
)

// Ranges used by the synthetic parameter generator.
const (
	MinSeats = 3
	MaxSeats = 10

	// Speeds are in km/h.
	MinSpeed   = 400.0
	SpeedRange = 400.0

	// Distances are in km.
	MinDistance = 400
	MaxDistance = 1500

	MinLegCost   = 50.0
	LegCostRange = 50.0

	minutesPerDay = 24 * 60
)

// DayWindow is the operating window of one day of the planning horizon,
// in minutes since the start of the horizon.
type DayWindow struct {
	// Name is d1..dN
	Name string `json:"name" yaml:"name"`

	// Start is the first minute flights may start (inclusive)
	Start float64 `json:"start" yaml:"start"`

	// End is the operating ceiling of the day (exclusive)
	End float64 `json:"end" yaml:"end"`
}

// Length returns the window length in minutes.
func (w DayWindow) Length() float64 {
	return w.End - w.Start
}

// DayWindows returns one window per day, each day opening at start and
// closing at end (offsets from midnight).
func DayWindows(days int, start, end time.Duration) []DayWindow {
	windows := make([]DayWindow, 0, days)
	for d := 0; d < days; d++ {
		offset := float64(d * minutesPerDay)
		windows = append(windows, DayWindow{
			Name:  fmt.Sprintf("d%d", d+1),
			Start: offset + start.Minutes(),
			End:   offset + end.Minutes(),
		})
	}
	return windows
}

// GenerateAircraft returns n aircraft named aircraft0..aircraft{n-1} with
// seat counts drawn uniformly from [MinSeats, MaxSeats].
func GenerateAircraft(rng *rand.Rand, n int) []domain.Aircraft {
	fleet := make([]domain.Aircraft, 0, n)
	for i := 0; i < n; i++ {
		fleet = append(fleet, domain.Aircraft{
			Code:  fmt.Sprintf("aircraft%d", i),
			Seats: MinSeats + rng.Intn(MaxSeats-MinSeats+1),
		})
	}
	return fleet
}

// GenerateAirports returns n airports named airport0..airport{n-1}.
func GenerateAirports(n int) []string {
	airports := make([]string, 0, n)
	for i := 0; i < n; i++ {
		airports = append(airports, fmt.Sprintf("airport%d", i))
	}
	return airports
}

// Parameters holds the flight-time and flight-cost data of one study case.
// It is read-only once built.
type Parameters struct {
	// Aircraft is the fleet the parameters were drawn for
	Aircraft []domain.Aircraft

	// Airports lists every airport known to the matrices
	Airports []string

	// Speeds is the cruise speed per aircraft code, in km/h
	Speeds map[string]float64

	// Distances is the symmetric distance matrix in km
	Distances *Matrix

	// Times is the flight time matrix per aircraft code, in minutes
	Times map[string]*Matrix

	// Costs is the symmetric leg cost matrix per aircraft code
	Costs map[string]*Matrix
}

// NewParameters draws speeds, distances, times and costs for the given
// fleet and airports from rng.
func NewParameters(rng *rand.Rand, aircraft []domain.Aircraft, airports []string) *Parameters {
	p := &Parameters{
		Aircraft:  append([]domain.Aircraft(nil), aircraft...),
		Airports:  append([]string(nil), airports...),
		Speeds:    make(map[string]float64, len(aircraft)),
		Distances: NewMatrix(airports),
		Times:     make(map[string]*Matrix, len(aircraft)),
		Costs:     make(map[string]*Matrix, len(aircraft)),
	}

	for _, a := range aircraft {
		p.Speeds[a.Code] = MinSpeed + SpeedRange*rng.Float64()
	}

	n := len(airports)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := float64(MinDistance + rng.Intn(MaxDistance-MinDistance+1))
			p.Distances.set(i, j, d)
			p.Distances.set(j, i, d)
		}
	}

	for _, a := range aircraft {
		perMinute := p.Speeds[a.Code] / 60
		times := NewMatrix(airports)
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					times.set(i, j, round2(p.Distances.get(i, j)/perMinute))
				}
			}
		}
		p.Times[a.Code] = times

		costs := NewMatrix(airports)
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				c := round2(MinLegCost + LegCostRange*rng.Float64())
				costs.set(i, j, c)
				costs.set(j, i, c)
			}
		}
		p.Costs[a.Code] = costs
	}
	return p
}

// Leg returns the flight time (minutes) and price of flying from -> to with
// the given aircraft.
func (p *Parameters) Leg(aircraftCode, from, to string) (duration, price float64, err error) {
	times, ok := p.Times[aircraftCode]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %s", domain.ErrUnknownAircraft, aircraftCode)
	}
	if duration, err = times.At(from, to); err != nil {
		return 0, 0, err
	}
	if price, err = p.Costs[aircraftCode].At(from, to); err != nil {
		return 0, 0, err
	}
	return duration, price, nil
}

// HasAirport reports whether the airport is part of the parameter set.
func (p *Parameters) HasAirport(airport string) bool {
	return p.Distances.Has(airport)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
