// Package engine orchestrates one solve session end to end: calendar classification,
// variable-universe construction, rule application, CP-SAT solving, and penalty reporting.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/calendar"
	rosterrors "github.com/paiban/roster/pkg/errors"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/logger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/rules"
	"github.com/paiban/roster/pkg/solver"
	"github.com/paiban/roster/pkg/variablebuilder"
)

// Input is everything one solve needs: the target month, the domain data describing
// hospitals/workers/demand, and the engine Config tuning the rule registry and solver.
type Input struct {
	Year  int
	Month time.Month

	Hospitals     []model.Hospital
	Workers       []model.Worker
	SpecifiedDays []model.SpecifiedDay
	Preferences   model.Preferences
	Caps          []model.Cap
	Holidays      calendar.HolidaySet

	Config *config.Config
}

// Validate checks the structural preconditions Solve assumes before it ever builds a model.
// Per spec.md §7, duplicate hospital/worker names and any AssignmentRule/SpecifiedDay/Cap
// referencing an unknown hospital (or Cap referencing an unknown worker) are
// DomainValidationError, raised before any solver work.
func (in Input) Validate() error {
	errs := &rosterrors.ValidationErrors{}
	if in.Year < 1 {
		errs.Add("year", "must be a positive calendar year")
	}
	if in.Month < time.January || in.Month > time.December {
		errs.Add("month", "must be a valid calendar month")
	}
	if len(in.Hospitals) == 0 {
		errs.Add("hospitals", "at least one hospital is required")
	}
	if len(in.Workers) == 0 {
		errs.Add("workers", "at least one worker is required")
	}
	if in.Config == nil {
		errs.Add("config", "config is required")
	}

	hospitalNames := map[string]bool{}
	for _, h := range in.Hospitals {
		if hospitalNames[h.Name] {
			errs.Add("hospitals", fmt.Sprintf("duplicate hospital name %q", h.Name))
		}
		hospitalNames[h.Name] = true
	}

	workerNames := map[string]bool{}
	for _, w := range in.Workers {
		if workerNames[w.Name] {
			errs.Add("workers", fmt.Sprintf("duplicate worker name %q", w.Name))
		}
		workerNames[w.Name] = true
		for _, a := range w.Assignments {
			if !hospitalNames[a.Hospital] {
				errs.Add("workers", fmt.Sprintf("worker %q has an AssignmentRule referencing unknown hospital %q", w.Name, a.Hospital))
			}
		}
	}

	for _, sd := range in.SpecifiedDays {
		if !hospitalNames[sd.Hospital] {
			errs.Add("specified_days", fmt.Sprintf("SpecifiedDay references unknown hospital %q", sd.Hospital))
		}
	}

	for _, c := range in.Caps {
		if !hospitalNames[c.Hospital] {
			errs.Add("caps", fmt.Sprintf("cap for worker %q references unknown hospital %q", c.Worker, c.Hospital))
		}
		if !workerNames[c.Worker] {
			errs.Add("caps", fmt.Sprintf("cap references unknown worker %q", c.Worker))
		}
	}

	if errs.HasErrors() {
		return errs.ToAppError()
	}
	return nil
}

// Solve runs one roster optimization end to end, per spec.md's pipeline: classify the
// target month's calendar, materialize the decision-variable universe, apply the rule
// registry, hand the model to CP-SAT, and summarize the resulting penalties.
func Solve(ctx context.Context, in Input) (*model.SolveResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := in.Config.Validate(); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	log := logger.NewSolverLogger()

	days := calendar.Dates(in.Year, in.Month, in.Holidays)
	log.StartSolve(sessionID, len(in.Hospitals), len(in.Workers), len(days))

	universe := variablebuilder.Build(in.Hospitals, in.Workers, days, in.SpecifiedDays, in.Holidays)

	builder := solver.NewBuilder(universe.Candidates)
	led := ledger.New()

	ruleCtx := &rules.Context{
		Days:        days,
		Hospitals:   in.Hospitals,
		Workers:     in.Workers,
		Preferences: in.Preferences,
		Caps:        in.Caps,
		Holidays:    in.Holidays,
		Required:    universe.Required,
		Config:      in.Config,
	}

	for _, rule := range rules.DefaultRegistry(in.Config) {
		if err := rule.Apply(builder, led, ruleCtx); err != nil {
			// A rule that already raised a typed AppError (e.g. H4's CodeConfig on a negative
			// cap) keeps its own code; only an unexpected error gets folded into CodeInternal.
			if appErr, ok := err.(*rosterrors.AppError); ok {
				return nil, appErr.WithField("rule", rule.Name())
			}
			return nil, rosterrors.Wrap(err, rosterrors.CodeInternal, "rule application failed").
				WithField("rule", rule.Name())
		}
		log.RuleApplied(rule.Name())
	}

	driver := solver.New()
	result, err := driver.Solve(ctx, builder, led, in.Config)
	if err != nil {
		return nil, err
	}

	log.SolveComplete(string(result.Status), result.SolveTime, result.ObjectiveValue)

	if result.Status == model.StatusInfeasible {
		binding := variablebuilder.DiagnoseInfeasibility(universe)
		log.SolveInfeasible(len(binding))
		return nil, rosterrors.InfeasibleModel("no feasible roster satisfies every hard rule", binding)
	}

	return result, nil
}
