// Command studycase generates a synthetic round-trip study case, optimizes it
// and prints the result.
//
//	studycase -aircraft 3 -airports 5 -days 5 -from airport1 -to airport3 -seed 77 -nbest 1 -format yaml
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fleet-planning/round-trip-optimizer/internal/config"
	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
	"github.com/fleet-planning/round-trip-optimizer/internal/infrastructure/logger"
	"github.com/fleet-planning/round-trip-optimizer/internal/solver"
	"github.com/fleet-planning/round-trip-optimizer/internal/usecase"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	criteria domain.StudyCaseCriteria
	seed     int64
	format   string
	noSolve  bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("studycase", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.IntVar(&opts.criteria.AircraftCount, "aircraft", 3, "number of aircraft")
	fs.IntVar(&opts.criteria.AirportCount, "airports", 5, "number of airports")
	fs.IntVar(&opts.criteria.Days, "days", 0, "planning horizon in days (0 = GENERATOR_DAYS)")
	fs.StringVar(&opts.criteria.FromAirport, "from", "airport1", "required leg origin")
	fs.StringVar(&opts.criteria.ToAirport, "to", "airport3", "required leg destination")
	fs.Int64Var(&opts.seed, "seed", 0, "random seed (default GENERATOR_SEED)")
	fs.IntVar(&opts.criteria.NBest, "nbest", 1, "number of pairings to select")
	fs.StringVar(&opts.format, "format", formatText, "output format: text, json or yaml")
	fs.BoolVar(&opts.noSolve, "no-solve", false, "only generate, skip the optimizer")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	switch opts.format {
	case formatText, formatJSON, formatYAML:
	default:
		return nil, fmt.Errorf("unknown format %q", opts.format)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.criteria.Seed = &opts.seed
		}
	})
	opts.criteria.Optimize = !opts.noSolve
	return opts, nil
}

// run executes the command and returns the process exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "studycase:", err)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "studycase:", err)
		return 1
	}

	logCfg := logger.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = logger.FormatConsole
	log := logger.New(logCfg, stderr)

	ucConfig := cfg.UseCaseSettings()
	backend := solver.NewBranchAndBound(&solver.Config{MaxNodes: cfg.Optimizer.MaxNodes})
	optimizer := usecase.NewRoundTripUseCase(backend, &ucConfig, usecase.WithLogger(log))
	studyCases := usecase.NewStudyCaseUseCase(optimizer, &ucConfig, log)

	sc, err := studyCases.Generate(ctx, opts.criteria)
	if err != nil {
		fmt.Fprintln(stderr, "studycase:", err)
		return 1
	}

	if err := write(stdout, opts.format, sc); err != nil {
		fmt.Fprintln(stderr, "studycase:", err)
		return 1
	}
	return 0
}

func write(w io.Writer, format string, sc *usecase.StudyCase) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(sc)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(sc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return writeText(w, sc)
	}
}

func writeText(w io.Writer, sc *usecase.StudyCase) error {
	departures, returns := sc.Fleet.CountOptions()
	fmt.Fprintf(w, "seed %d: %s -> %s, %d aircraft, %d days, %d departure and %d return options\n",
		sc.Seed, sc.FromAirport, sc.ToAirport, len(sc.Fleet), len(sc.Days), departures, returns)
	for _, s := range sc.Fleet {
		fmt.Fprintf(w, "\n%s\n", s)
	}

	if sc.Optimization == nil {
		return nil
	}
	meta := sc.Optimization.Metadata
	fmt.Fprintf(w, "\nstatus %s, %d candidates, total price %.2f\n", meta.Status, meta.Candidates, meta.TotalPrice)
	for i, a := range sc.Optimization.Answers {
		if !a.IsSuccess {
			fmt.Fprintf(w, "%d. %s\n", i+1, a.Msg)
			continue
		}
		_, err := fmt.Fprintf(w, "%d. %s -> %s  %.2f  same segment: %t\n   %s\n   %s\n",
			i+1, a.DepartureAircraft, a.ReturnAircraft, a.Price, a.IsSameSegment, a.DeparturePath, a.ReturnPath)
		if err != nil {
			return err
		}
	}
	return nil
}
