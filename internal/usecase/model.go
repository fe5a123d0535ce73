package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/fleet-planning/round-trip-optimizer/internal/domain"
	"github.com/fleet-planning/round-trip-optimizer/internal/solver"
)

// candidate is one (departure aircraft, return aircraft, departure index,
// return index) pairing of the decision model.
type candidate struct {
	depAircraft int
	retAircraft int
	dep         int
	ret         int

	eval   domain.Evaluation
	reason domain.Infeasibility
}

// assignmentModel is the decision model of one run together with the
// annotations needed to map a solution back to answers.
type assignmentModel struct {
	model      *solver.Model
	candidates []candidate // indexed by model variable
	infeasible int
}

// ctxCheckEvery is how many candidates are built between context checks.
const ctxCheckEvery = 4096

// objectiveTolerance is the relative slack allowed between a backend's
// reported objective and the recomputed answer prices.
const objectiveTolerance = 1e-6

// errRejectedSolution marks an assignment a backend reported as optimal that
// breaks the model it was given.
var errRejectedSolution = errors.New("solver assignment rejected")

// buildModel creates one binary variable per structurally valid candidate,
// minimizing the summed pairing cost with exactly nBest selections and every
// infeasible candidate fixed to zero. It stops early with ctx's error once
// ctx is done.
func buildModel(ctx context.Context, fleet domain.Fleet, nBest int) (*assignmentModel, error) {
	am := &assignmentModel{
		model:      solver.NewModel("round_trip_assignment"),
		candidates: make([]candidate, 0),
	}

	pick := make([]solver.Term, 0)
	for ai, out := range fleet {
		for aj, in := range fleet {
			for i := range out.Departures {
				for j := range in.Returns {
					if len(am.candidates)%ctxCheckEvery == 0 {
						if err := ctx.Err(); err != nil {
							return nil, err
						}
					}

					dep, ret := out.Departures[i], in.Returns[j]
					c := candidate{depAircraft: ai, retAircraft: aj, dep: i, ret: j}
					c.eval = domain.Evaluate(dep, ret)
					c.reason = domain.CheckFeasibility(out.Aircraft, in.Aircraft, dep, ret, c.eval)

					name := fmt.Sprintf("bs[%s,%s,%d,%d]", out.Aircraft.Code, in.Aircraft.Code, i, j)
					v := am.model.AddVariable(name, c.eval.Cost)
					am.candidates = append(am.candidates, c)
					pick = append(pick, solver.Term{Var: v, Coef: 1})

					if c.reason != domain.Feasible {
						am.model.FixZero(fmt.Sprintf("%s_%s", name, c.reason), v)
						am.infeasible++
					}
				}
			}
		}
	}

	am.model.AddConstraint("select_n_best", pick, solver.Equal, float64(nBest))
	return am, nil
}

// verify checks an optimal result against the model before it is trusted:
// one value per variable, exactly nBest selections, no forced-zero candidate
// selected and an objective matching the evaluated pairing costs.
func (am *assignmentModel) verify(res solver.Result, nBest int) error {
	if len(res.Values) != len(am.candidates) {
		return fmt.Errorf("%w: %d values for %d variables", errRejectedSolution, len(res.Values), len(am.candidates))
	}

	selected := res.Selected()
	if len(selected) != nBest {
		return fmt.Errorf("%w: %d pairings selected, want %d", errRejectedSolution, len(selected), nBest)
	}

	var total float64
	for _, v := range selected {
		c := am.candidates[v]
		if c.reason != domain.Feasible {
			return fmt.Errorf("%w: %s is %s-infeasible", errRejectedSolution, am.model.Variables[v].Name, c.reason)
		}
		total += c.eval.Cost
	}

	if math.Abs(total-res.Objective) > objectiveTolerance*math.Max(1, math.Abs(total)) {
		return fmt.Errorf("%w: objective %g, selected pairings cost %g", errRejectedSolution, res.Objective, total)
	}
	return nil
}

// extractAnswers turns the selected variables into answers, reusing the
// evaluated cost of each pairing.
func (am *assignmentModel) extractAnswers(fleet domain.Fleet, res solver.Result) []domain.Answer {
	selected := res.Selected()
	answers := make([]domain.Answer, 0, len(selected))
	for _, v := range selected {
		c := am.candidates[v]
		out, in := fleet[c.depAircraft], fleet[c.retAircraft]
		dep, ret := out.Departures[c.dep], in.Returns[c.ret]

		answers = append(answers, domain.Answer{
			IsSuccess:         true,
			Msg:               domain.MsgOptimalRoundTrip,
			DepartureAircraft: out.Aircraft.Code,
			ReturnAircraft:    in.Aircraft.Code,
			Price:             c.eval.Cost,
			IsSameSegment:     c.eval.SameSegment,
			DeparturePath:     &dep,
			ReturnPath:        &ret,
		})
	}
	return answers
}
