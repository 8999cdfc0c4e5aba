package solver

import (
	"context"
	"math"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"
	sppb "github.com/google/or-tools/ortools/sat/proto/satparameters"

	"github.com/paiban/roster/internal/config"
	rosterrors "github.com/paiban/roster/pkg/errors"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
)

// penaltyScale converts the float soft-rule weights in the objective into the integer
// coefficients CP-SAT's linear objective requires. Reported penalties divide it back out.
const penaltyScale = 1000

// Driver runs CP-SAT over a Builder's model and turns the raw response into a SolveResult.
type Driver struct{}

// New returns a Driver.
func New() *Driver {
	return &Driver{}
}

// Solve maximizes total coverage filled minus the weighted sum of ledger penalties, subject
// to whatever hard constraints the rule registry has already posted to b. CP-SAT minimizes
// the negated objective; ObjectiveValue reports it back in the maximized sense.
func (d *Driver) Solve(ctx context.Context, b *Builder, l *ledger.Ledger, cfg *config.Config) (*model.SolveResult, error) {
	objective := cpmodel.NewLinearExpr()
	for _, v := range b.Vars() {
		objective.AddTerm(v, -penaltyScale)
	}
	for _, e := range l.Entries() {
		scaled := int64(math.Round(e.Weight * penaltyScale))
		ledger.AddTerm(objective, e.Term, scaled)
	}
	b.Model().Minimize(objective)

	proto, err := b.Model().Model()
	if err != nil {
		return nil, rosterrors.SolverFailure("failed to instantiate CP-SAT model").WithCause(err)
	}

	start := time.Now()
	resp, err := solveWithTimeLimit(proto, cfg)
	elapsed := time.Since(start)
	if err != nil {
		return nil, rosterrors.SolverFailure("CP-SAT solve failed").WithCause(err)
	}

	status, statusErr := classifyStatus(resp.GetStatus(), cfg)
	if statusErr != nil {
		return nil, statusErr
	}

	if status == model.StatusInfeasible {
		return &model.SolveResult{
			Status:         status,
			NumVariables:   len(b.Vars()),
			NumConstraints: 0,
			SolveTime:      elapsed,
		}, nil
	}

	total, bySource, items := ledger.Summarize(l, resp)

	var assignments []model.Assignment
	for key, v := range b.Vars() {
		if cpmodel.SolutionBooleanValue(resp, v) {
			assignments = append(assignments, model.Assignment{
				Hospital: key.Hospital,
				Worker:   key.Worker,
				Date:     key.Date,
				Shift:    key.Shift,
			})
		}
	}

	return &model.SolveResult{
		Status:          status,
		ObjectiveValue:  -resp.GetObjectiveValue() / penaltyScale,
		Assignments:     assignments,
		PenaltyTotal:    total,
		PenaltyBySource: bySource,
		PenaltyItems:    items,
		NumVariables:    len(b.Vars()),
		SolveTime:       elapsed,
	}, nil
}

func solveWithTimeLimit(proto *cmpb.CpModelProto, cfg *config.Config) (*cmpb.CpSolverResponse, error) {
	if cfg == nil || cfg.SolverTimeLimitSeconds == nil {
		return cpmodel.SolveCpModel(proto)
	}
	params := &sppb.SatParameters{MaxTimeInSeconds: cfg.SolverTimeLimitSeconds}
	return cpmodel.SolveCpModelWithParameters(proto, params)
}

func classifyStatus(raw cmpb.CpSolverStatus, cfg *config.Config) (model.SolveStatus, error) {
	switch raw {
	case cmpb.CpSolverStatus_OPTIMAL:
		return model.StatusOptimal, nil
	case cmpb.CpSolverStatus_FEASIBLE:
		if cfg != nil && cfg.SolverTimeLimitSeconds != nil {
			return model.StatusTimeLimit, nil
		}
		return model.StatusFeasible, nil
	case cmpb.CpSolverStatus_INFEASIBLE:
		return model.StatusInfeasible, nil
	case cmpb.CpSolverStatus_MODEL_INVALID:
		return model.StatusError, rosterrors.SolverFailure("CP-SAT rejected the model as invalid")
	default:
		if cfg != nil && cfg.SolverTimeLimitSeconds != nil {
			return model.StatusTimeLimit, rosterrors.SolverFailure("CP-SAT reached the time limit without a solution")
		}
		return model.StatusError, rosterrors.SolverFailure("CP-SAT returned an unknown status")
	}
}
