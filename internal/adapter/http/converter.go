package http

import (
	"fmt"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
)

// ToDomainFleet converts the request fleet to domain.Fleet.
// The request must have been validated; constructor errors are still returned.
func ToDomainFleet(req *OptimizeRequest) (domain.Fleet, error) {
	fleet := make(domain.Fleet, 0, len(req.Fleet))
	for _, s := range req.Fleet {
		schedule := domain.NewAircraftSchedule(domain.Aircraft{
			Code:  s.Aircraft.Code,
			Seats: s.Aircraft.Seats,
		})

		for _, dto := range s.Departures {
			it, err := toDomainItinerary(dto)
			if err != nil {
				return nil, fmt.Errorf("aircraft %s: %w", s.Aircraft.Code, err)
			}
			schedule.Departures = append(schedule.Departures, it)
		}
		for _, dto := range s.Returns {
			it, err := toDomainItinerary(dto)
			if err != nil {
				return nil, fmt.Errorf("aircraft %s: %w", s.Aircraft.Code, err)
			}
			schedule.Returns = append(schedule.Returns, it)
		}
		fleet = append(fleet, schedule)
	}
	return fleet, nil
}

func toDomainItinerary(dto ItineraryDTO) (domain.Itinerary, error) {
	pre, err := toDomainFlight(dto.PreReposition)
	if err != nil {
		return domain.Itinerary{}, err
	}
	trip, err := toDomainFlight(dto.Trip)
	if err != nil {
		return domain.Itinerary{}, err
	}
	post, err := toDomainFlight(dto.PostReposition)
	if err != nil {
		return domain.Itinerary{}, err
	}
	return domain.NewItinerary(dto.Key, dto.SegmentStart, dto.SegmentEnd, pre, trip, post, dto.NextPossibleSegments)
}

func toDomainFlight(dto FlightDTO) (domain.Flight, error) {
	return domain.NewFlight(dto.FromAirport, dto.ToAirport, dto.Price, dto.StartTime, dto.EndTime)
}

// ToStudyCaseCriteria converts a StudyCaseRequest to domain.StudyCaseCriteria.
func ToStudyCaseCriteria(req *StudyCaseRequest) domain.StudyCaseCriteria {
	return domain.StudyCaseCriteria{
		AircraftCount: req.AircraftCount,
		AirportCount:  req.AirportCount,
		Days:          req.Days,
		FromAirport:   req.FromAirport,
		ToAirport:     req.ToAirport,
		Seed:          req.Seed,
		Optimize:      req.Optimize,
		NBest:         req.NBest,
	}
}
