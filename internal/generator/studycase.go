package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
)

// Default generator settings.
const (
	DefaultSeed                = 77
	DefaultDays                = 5
	DefaultDayStart            = 6 * time.Hour
	DefaultDayEnd              = 20 * time.Hour
	DefaultChainProbability    = 0.5
	DefaultMaxChainLength      = 3
	DefaultKeepBothProbability = 0.34
)

// Config tunes the study-case generator.
type Config struct {
	// Seed initializes the random stream at the start of every Generate call
	Seed int64

	// Days is the planning horizon length
	Days int

	// DayStart is the daily opening time (offset from midnight)
	DayStart time.Duration

	// DayEnd is the daily operating ceiling (offset from midnight)
	DayEnd time.Duration

	// FreeTime is the idle buffer added to every option, in minutes
	FreeTime float64

	// ChainProbability is the chance a day opens a new continuous chain
	ChainProbability float64

	// MaxChainLength bounds the number of linked options in a chain
	MaxChainLength int

	// KeepBothProbability is the chance an unchained day keeps both the
	// departure and the return option; otherwise one of them is kept
	KeepBothProbability float64
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		Seed:                DefaultSeed,
		Days:                DefaultDays,
		DayStart:            DefaultDayStart,
		DayEnd:              DefaultDayEnd,
		ChainProbability:    DefaultChainProbability,
		MaxChainLength:      DefaultMaxChainLength,
		KeepBothProbability: DefaultKeepBothProbability,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Days < 1 {
		return fmt.Errorf("%w: days must be at least 1, got %d", domain.ErrInvalidRequest, c.Days)
	}
	if c.DayStart < 0 || c.DayEnd > 24*time.Hour || c.DayEnd <= c.DayStart || c.DayEnd-c.DayStart >= 24*time.Hour {
		return fmt.Errorf("%w: day window [%s, %s) is not a valid window within one day",
			domain.ErrInvalidRequest, c.DayStart, c.DayEnd)
	}
	if c.FreeTime < 0 {
		return fmt.Errorf("%w: free time must be non-negative", domain.ErrInvalidRequest)
	}
	if c.MaxChainLength < 1 {
		return fmt.Errorf("%w: max chain length must be at least 1", domain.ErrInvalidRequest)
	}
	if c.ChainProbability < 0 || c.ChainProbability > 1 {
		return fmt.Errorf("%w: chain probability must be in [0, 1]", domain.ErrInvalidRequest)
	}
	if c.KeepBothProbability < 0 || c.KeepBothProbability > 1 {
		return fmt.Errorf("%w: keep-both probability must be in [0, 1]", domain.ErrInvalidRequest)
	}
	return nil
}

// Generator produces per-aircraft departure and return options over the
// planning horizon. It owns its random stream and is not safe for concurrent use.
type Generator struct {
	cfg     Config
	params  *Parameters
	windows []DayWindow
	seed    int64
	rng     *rand.Rand
	builder *Builder
}

// NewGenerator creates a generator over a parameter set.
// A nil config means DefaultConfig.
func NewGenerator(params *Parameters, config *Config) (*Generator, error) {
	cfg := DefaultConfig()
	if config != nil {
		cfg = *config
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if params == nil || len(params.Airports) < 2 {
		return nil, fmt.Errorf("%w: at least 2 airports are required", domain.ErrInvalidRequest)
	}

	g := &Generator{
		cfg:     cfg,
		params:  params,
		windows: DayWindows(cfg.Days, cfg.DayStart, cfg.DayEnd),
	}
	g.Reseed(cfg.Seed)
	g.builder = NewBuilder(params, g.newKey)
	return g, nil
}

// Reseed replaces the seed used by subsequent Generate calls.
func (g *Generator) Reseed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

// Windows returns the day windows of the planning horizon.
func (g *Generator) Windows() []DayWindow {
	return append([]DayWindow(nil), g.windows...)
}

// newKey draws a UUID from the generator's own stream so keys are reproducible.
func (g *Generator) newKey() string {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		// math/rand never fails to read
		panic(err)
	}
	return id.String()
}

// chain is an open continuous chain of linked options.
type chain struct {
	keys []string
	next int
	pre  string
	post string
}

func (c *chain) open() bool {
	return c != nil && c.next < len(c.keys)
}

// Generate builds one schedule per aircraft of the parameter set for the
// required leg from -> to. The random stream is reset from the current seed
// first, so equal seeds give equal fleets.
func (g *Generator) Generate(from, to string) (domain.Fleet, error) {
	if from == to {
		return nil, fmt.Errorf("%w: required leg must join two different airports", domain.ErrInvalidRequest)
	}
	for _, airport := range []string{from, to} {
		if !g.params.HasAirport(airport) {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownAirport, airport)
		}
	}

	g.rng = rand.New(rand.NewSource(g.seed))

	fleet := make(domain.Fleet, 0, len(g.params.Aircraft))
	for _, aircraft := range g.params.Aircraft {
		schedule, err := g.generateSchedule(aircraft, from, to)
		if err != nil {
			return nil, fmt.Errorf("aircraft %s: %w", aircraft.Code, err)
		}
		fleet = append(fleet, schedule)
	}
	return fleet, nil
}

func (g *Generator) generateSchedule(aircraft domain.Aircraft, from, to string) (domain.AircraftSchedule, error) {
	schedule := domain.NewAircraftSchedule(aircraft)

	var current *chain
	for _, day := range g.windows {
		if !current.open() && g.rng.Float64() < g.cfg.ChainProbability {
			current = g.openChain(from, to)
		}

		if current.open() {
			key := current.keys[current.next]
			dep, ret, err := g.buildPair(aircraft.Code, day, from, to, current.pre, current.post, key, key, current.keys)
			if err != nil {
				return schedule, err
			}
			current.next++
			schedule.Departures = append(schedule.Departures, dep)
			schedule.Returns = append(schedule.Returns, ret)
			continue
		}

		pre := g.pickAirport(from)
		post := g.pickAirport(to)
		dep, ret, err := g.buildPair(aircraft.Code, day, from, to, pre, post, g.newKey(), g.newKey(), nil)
		if err != nil {
			return schedule, err
		}

		switch {
		case g.rng.Float64() < g.cfg.KeepBothProbability:
			schedule.Departures = append(schedule.Departures, dep)
			schedule.Returns = append(schedule.Returns, ret)
		case g.rng.Intn(2) == 0:
			schedule.Departures = append(schedule.Departures, dep)
		default:
			schedule.Returns = append(schedule.Returns, ret)
		}
	}
	return schedule, nil
}

func (g *Generator) openChain(from, to string) *chain {
	length := 1 + g.rng.Intn(g.cfg.MaxChainLength)
	c := &chain{
		keys: make([]string, 0, length),
		pre:  g.pickAirport(from),
		post: g.pickAirport(to),
	}
	for i := 0; i < length; i++ {
		c.keys = append(c.keys, g.newKey())
	}
	return c
}

// buildPair builds the departure option pre -> from -> to -> post inside the
// day window and the return option post -> to -> from -> pre that starts after
// the departure segment and before the next day opens.
func (g *Generator) buildPair(code string, day DayWindow, from, to, pre, post, depKey, retKey string, chainKeys []string) (domain.Itinerary, domain.Itinerary, error) {
	jitter := int(day.Length() / 10)

	dep, err := g.builder.Build(BuildRequest{
		AircraftCode: code,
		Pre:          pre,
		From:         from,
		To:           to,
		Post:         post,
		StartTime:    day.Start + float64(g.rng.Intn(jitter+1)),
		FreeTime:     g.cfg.FreeTime,
		MaxTime:      day.End,
		Key:          depKey,
		Chain:        chainKeys,
	})
	if err != nil {
		return domain.Itinerary{}, domain.Itinerary{}, err
	}

	nextOpen := day.Start + minutesPerDay
	start := dep.SegmentEnd + float64(g.rng.Intn(jitter+1))
	if start >= nextOpen {
		start = dep.SegmentEnd
	}

	ret, err := g.builder.Build(BuildRequest{
		AircraftCode: code,
		Pre:          post,
		From:         to,
		To:           from,
		Post:         pre,
		StartTime:    start,
		FreeTime:     g.cfg.FreeTime,
		MaxTime:      nextOpen,
		Key:          retKey,
		Chain:        chainKeys,
	})
	if err != nil {
		return domain.Itinerary{}, domain.Itinerary{}, err
	}
	return dep, ret, nil
}

// pickAirport draws an airport other than exclude.
func (g *Generator) pickAirport(exclude string) string {
	candidates := make([]string, 0, len(g.params.Airports)-1)
	for _, a := range g.params.Airports {
		if a != exclude {
			candidates = append(candidates, a)
		}
	}
	return candidates[g.rng.Intn(len(candidates))]
}
