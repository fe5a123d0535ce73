package domain

// Optimization outcomes reported in metadata and metrics.
const (
	OutcomeOptimal    = "optimal"
	OutcomeInfeasible = "infeasible"
	OutcomeTimeLimit  = "time_limit"
	OutcomeDegenerate = "degenerate"
)

// OptimizationResponse is the outcome of one optimization run.
type OptimizationResponse struct {
	// Answers holds one answer per selected pairing, or a single failure answer
	Answers []Answer `json:"answers" yaml:"answers"`

	// Metadata contains information about the run
	Metadata OptimizationMetadata `json:"metadata" yaml:"metadata"`
}

// OptimizationMetadata contains information about the optimization run.
type OptimizationMetadata struct {
	// Status is the run outcome (optimal, infeasible, time_limit, degenerate)
	Status string `json:"status" yaml:"status"`

	// Solver is the backend that solved the model
	Solver string `json:"solver" yaml:"solver"`

	// NBest is the number of pairings requested
	NBest int `json:"nBest" yaml:"nBest"`

	// Candidates is the number of candidate pairings in the model
	Candidates int `json:"candidates" yaml:"candidates"`

	// Infeasible is the number of candidates forced to unselected
	Infeasible int `json:"infeasible" yaml:"infeasible"`

	// TotalPrice is the summed price of the successful answers
	TotalPrice float64 `json:"totalPrice" yaml:"totalPrice"`

	// Nodes is the number of search nodes the backend explored
	Nodes int64 `json:"nodes" yaml:"nodes"`

	// DurationMs is the run duration in milliseconds
	DurationMs int64 `json:"durationMs" yaml:"durationMs"`
}

// NewOptimizationResponse creates a response and fills TotalPrice from the answers.
func NewOptimizationResponse(answers []Answer, metadata OptimizationMetadata) OptimizationResponse {
	if answers == nil {
		answers = []Answer{}
	}
	metadata.TotalPrice = TotalPrice(answers)
	return OptimizationResponse{
		Answers:  answers,
		Metadata: metadata,
	}
}

// IsSuccess reports whether the run produced at least one successful answer.
func (r OptimizationResponse) IsSuccess() bool {
	return len(r.Answers) > 0 && r.Answers[0].IsSuccess
}
