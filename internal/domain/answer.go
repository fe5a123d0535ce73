package domain

// Answer messages.
const (
	MsgOptimalRoundTrip = "Optimal round trip found"
	MsgNoItineraries    = "No departure or return itineraries available"
	MsgNotSuccessful    = "The round trip optimization was not successful"
)

// Answer is the outcome of one selected round-trip pairing.
type Answer struct {
	// IsSuccess indicates whether a pairing was selected
	IsSuccess bool `json:"isSuccess" yaml:"isSuccess"`

	// Msg is a human-readable explanation
	Msg string `json:"msg" yaml:"msg"`

	// DepartureAircraft is the code of the aircraft flying the outbound option
	DepartureAircraft string `json:"departureAircraft" yaml:"departureAircraft"`

	// ReturnAircraft is the code of the aircraft flying the return option
	ReturnAircraft string `json:"returnAircraft" yaml:"returnAircraft"`

	// Price is the evaluated cost of the pairing
	Price float64 `json:"price" yaml:"price"`

	// IsSameSegment is true when the pairing resolved through the merged path
	IsSameSegment bool `json:"isSameSegment" yaml:"isSameSegment"`

	// DeparturePath is the selected outbound option (nil on failure)
	DeparturePath *Itinerary `json:"departurePath" yaml:"departurePath"`

	// ReturnPath is the selected return option (nil on failure)
	ReturnPath *Itinerary `json:"returnPath" yaml:"returnPath"`
}

// NewFailureAnswer creates an unsuccessful answer with the given message.
func NewFailureAnswer(msg string) Answer {
	return Answer{
		IsSuccess: false,
		Msg:       msg,
	}
}

// TotalPrice sums the price of every successful answer.
func TotalPrice(answers []Answer) float64 {
	var total float64
	for _, a := range answers {
		if a.IsSuccess {
			total += a.Price
		}
	}
	return total
}
