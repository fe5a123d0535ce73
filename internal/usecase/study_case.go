package usecase

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
	"github.com/fleet-planning/round-trip-optimizer/internal/generator"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
)

// StudyCase is a generated problem instance, optionally with its optimization.
type StudyCase struct {
	// Seed is the seed every random draw was derived from
	Seed int64 `json:"seed" yaml:"seed"`

	// FromAirport is the required leg origin
	FromAirport string `json:"fromAirport" yaml:"fromAirport"`

	// ToAirport is the required leg destination
	ToAirport string `json:"toAirport" yaml:"toAirport"`

	// Airports lists the generated airports
	Airports []string `json:"airports" yaml:"airports"`

	// Days lists the operating windows of the planning horizon
	Days []generator.DayWindow `json:"days" yaml:"days"`

	// Fleet is the generated per-aircraft option set
	Fleet domain.Fleet `json:"fleet" yaml:"fleet"`

	// Optimization is set when the criteria asked for it
	Optimization *domain.OptimizationResponse `json:"optimization,omitempty" yaml:"optimization,omitempty"`
}

// StudyCaseUseCase generates synthetic study cases.
type StudyCaseUseCase interface {
	// Generate draws aircraft, airports, flight parameters and itinerary
	// options from the criteria seed, then optionally optimizes the result.
	Generate(ctx context.Context, criteria domain.StudyCaseCriteria) (*StudyCase, error)
}

type studyCaseUseCase struct {
	optimizer RoundTripUseCase
	generator generator.Config
	maxNBest  int
	log       *logger.Logger
}

// NewStudyCaseUseCase creates the study-case use case. The optimizer is used
// when criteria ask for an optimization; config nil means default values.
func NewStudyCaseUseCase(optimizer RoundTripUseCase, config *Config, log *logger.Logger) StudyCaseUseCase {
	cfg := mergeConfig(config)
	if log == nil {
		log = logger.Nop()
	}
	return &studyCaseUseCase{
		optimizer: optimizer,
		generator: cfg.Generator,
		maxNBest:  cfg.MaxNBest,
		log:       log.WithComponent("generator"),
	}
}

// Generate implements StudyCaseUseCase.Generate.
func (uc *studyCaseUseCase) Generate(ctx context.Context, criteria domain.StudyCaseCriteria) (*StudyCase, error) {
	criteria.SetDefaults()
	if err := criteria.Validate(); err != nil {
		return nil, err
	}
	if criteria.Optimize && criteria.NBest > uc.maxNBest {
		return nil, fmt.Errorf("%w: nBest must be between 1 and %d", domain.ErrInvalidRequest, uc.maxNBest)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := uc.generator
	if criteria.Seed != nil {
		cfg.Seed = *criteria.Seed
	}
	if criteria.Days > 0 {
		cfg.Days = criteria.Days
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	aircraft := generator.GenerateAircraft(rng, criteria.AircraftCount)
	airports := generator.GenerateAirports(criteria.AirportCount)
	params := generator.NewParameters(rng, aircraft, airports)

	gen, err := generator.NewGenerator(params, &cfg)
	if err != nil {
		return nil, err
	}
	fleet, err := gen.Generate(criteria.FromAirport, criteria.ToAirport)
	if err != nil {
		return nil, err
	}

	departures, returns := fleet.CountOptions()
	uc.log.Ctx(ctx).Info().
		Int64("seed", cfg.Seed).
		Int("aircraft", len(fleet)).
		Int("departures", departures).
		Int("returns", returns).
		Msg("study case generated")

	sc := &StudyCase{
		Seed:        cfg.Seed,
		FromAirport: criteria.FromAirport,
		ToAirport:   criteria.ToAirport,
		Airports:    airports,
		Days:        gen.Windows(),
		Fleet:       fleet,
	}
	if !criteria.Optimize {
		return sc, nil
	}

	sc.Optimization, err = uc.optimizer.Optimize(ctx, fleet, criteria.NBest)
	if err != nil {
		return nil, err
	}
	return sc, nil
}

// Ensure interface is implemented.
var _ StudyCaseUseCase = (*studyCaseUseCase)(nil)
