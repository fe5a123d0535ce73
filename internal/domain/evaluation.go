package domain

// Evaluation is the outcome of pricing one outbound/return pairing.
type Evaluation struct {
	// Cost is the total price of the pairing
	Cost float64

	// SameSegment is true when the pairing resolves through the same segment
	// or a continuous chain, so the middle legs are merged
	SameSegment bool
}

// Infeasibility names the rule a pairing violates.
type Infeasibility string

// Feasibility rule outcomes.
const (
	// Feasible means the pairing satisfies every rule
	Feasible Infeasibility = ""

	// InfeasibleTiming means the return cannot be flown after the departure
	InfeasibleTiming Infeasibility = "timing"

	// InfeasibleCapacity means the return aircraft has fewer seats than the departure aircraft
	InfeasibleCapacity Infeasibility = "capacity"
)

// Evaluate prices the pairing of an outbound option with a return option.
//
// When both options share a key, or the return option lists the outbound key in
// its chain, the route x->e->f | f->e->z is flown as x->e, e->f, f->e, e->z:
// the post-reposition of the outbound and the pre-reposition of the return are
// dropped. Otherwise both options are flown in full.
func Evaluate(departure, ret Itinerary) Evaluation {
	if ret.Follows(departure.Key) {
		return Evaluation{
			Cost:        departure.PreTripPrice() + ret.TripPostPrice(),
			SameSegment: true,
		}
	}
	return Evaluation{
		Cost:        departure.TotalPrice() + ret.TotalPrice(),
		SameSegment: false,
	}
}

// CheckFeasibility classifies a pairing flown by departureAircraft and returnAircraft.
// ev must be the result of Evaluate for the same options.
func CheckFeasibility(departureAircraft, returnAircraft Aircraft, departure, ret Itinerary, ev Evaluation) Infeasibility {
	if ev.SameSegment {
		// the merged path has to fit inside the governing segment window
		if departure.PreTripDuration()+ret.TripPostDuration() >= ret.SegmentDuration() {
			return InfeasibleTiming
		}
	} else if departure.SegmentEnd > ret.SegmentStart {
		return InfeasibleTiming
	}

	if returnAircraft.Seats < departureAircraft.Seats {
		return InfeasibleCapacity
	}
	return Feasible
}
