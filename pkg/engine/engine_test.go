package engine

import (
	"context"
	"testing"
	"time"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/calendar"
	rosterrors "github.com/paiban/roster/pkg/errors"
	"github.com/paiban/roster/pkg/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

// Scenario 1: one hospital, Night on Fridays, one worker, cap 5.
// Expects 5 assignments, objective 5, no penalties.
func TestScenarioFridayNightsSingleWorker(t *testing.T) {
	in := Input{
		Year:  2025,
		Month: time.October,
		Hospitals: []model.Hospital{{
			Name: "H1",
			DemandRules: []model.DemandRule{
				{Shift: model.Night, Weekdays: []model.Weekday{model.Friday}, Frequency: model.Weekly},
			},
		}},
		Workers: []model.Worker{{
			Name: "W1",
			Assignments: []model.AssignmentRule{
				{Hospital: "H1", Weekdays: []model.Weekday{model.Friday}, Shift: model.Night},
			},
		}},
		Caps:   []model.Cap{{Worker: "W1", Hospital: "H1", Max: intPtr(5)}},
		Config: config.Default(),
	}

	result, err := Solve(context.Background(), in)
	if err != nil {
		t.Fatalf("expected a feasible solve, got error: %v", err)
	}
	if result.Status != model.StatusOptimal {
		t.Fatalf("expected Optimal, got %v", result.Status)
	}
	if len(result.Assignments) != 5 {
		t.Fatalf("expected 5 assignments, got %d", len(result.Assignments))
	}
	if result.ObjectiveValue != 5 {
		t.Fatalf("expected objective 5, got %v", result.ObjectiveValue)
	}
	if result.PenaltyTotal != 0 {
		t.Fatalf("expected no penalties, got %v", result.PenaltyTotal)
	}
}

// Scenario 2: same as scenario 1, but W1 is Forbidden on two Fridays and W2 covers them.
func TestScenarioForbiddenPreferenceHandsOffToOtherWorker(t *testing.T) {
	prefs := model.Preferences{
		{Worker: "W1", Date: date(2025, time.October, 3), Shift: model.Night}:  model.Forbidden,
		{Worker: "W1", Date: date(2025, time.October, 10), Shift: model.Night}: model.Forbidden,
	}

	assignmentRule := []model.AssignmentRule{
		{Hospital: "H1", Weekdays: []model.Weekday{model.Friday}, Shift: model.Night},
	}
	in := Input{
		Year:  2025,
		Month: time.October,
		Hospitals: []model.Hospital{{
			Name: "H1",
			DemandRules: []model.DemandRule{
				{Shift: model.Night, Weekdays: []model.Weekday{model.Friday}, Frequency: model.Weekly},
			},
		}},
		Workers: []model.Worker{
			{Name: "W1", Assignments: assignmentRule},
			{Name: "W2", Assignments: assignmentRule},
		},
		Caps: []model.Cap{
			{Worker: "W1", Hospital: "H1", Max: intPtr(5)},
			{Worker: "W2", Hospital: "H1", Max: intPtr(5)},
		},
		Preferences: prefs,
		Config:      config.Default(),
	}

	result, err := Solve(context.Background(), in)
	if err != nil {
		t.Fatalf("expected a feasible solve, got error: %v", err)
	}
	if len(result.Assignments) != 5 {
		t.Fatalf("expected 5 assignments, got %d", len(result.Assignments))
	}
	if result.PenaltyTotal != 0 {
		t.Fatalf("expected no penalties, got %v", result.PenaltyTotal)
	}

	forbiddenDates := map[string]bool{"20251003": true, "20251010": true}
	for _, a := range result.Assignments {
		if forbiddenDates[a.Date.Format("20060102")] && a.Worker != "W2" {
			t.Fatalf("W1 was Forbidden on %v but got assigned there", a.Date)
		}
	}
}

// Scenario 3: min_night_gap=2, one worker eligible on adjacent Fri/Sat nights at H1.
// The worker can't cover both within the gap, so the model is Infeasible.
func TestScenarioNightSpacingInfeasible(t *testing.T) {
	in := Input{
		Year:  2025,
		Month: time.October,
		Hospitals: []model.Hospital{{
			Name: "H1",
			DemandRules: []model.DemandRule{
				{Shift: model.Night, Frequency: model.SpecificDays, Dates: []time.Time{
					date(2025, time.October, 3),
					date(2025, time.October, 4),
				}},
			},
		}},
		Workers: []model.Worker{{
			Name: "W1",
			Assignments: []model.AssignmentRule{
				{Hospital: "H1", Weekdays: []model.Weekday{model.Friday, model.Saturday}, Shift: model.Night},
			},
		}},
		Config: config.Default(),
	}

	_, err := Solve(context.Background(), in)
	if err == nil {
		t.Fatal("expected an infeasible solve")
	}
	if rosterrors.GetCode(err) != rosterrors.CodeInfeasibleModel {
		t.Fatalf("expected CodeInfeasibleModel, got %v", rosterrors.GetCode(err))
	}
}

// Scenario 4: a university hospital's Night on the last day of a holiday run, with only
// non-specialist workers eligible, is Infeasible under H7.
func TestScenarioUniversityHolidayNightNeedsSpecialist(t *testing.T) {
	holidays := calendar.NewHolidaySet([]time.Time{
		date(2025, time.October, 11),
		date(2025, time.October, 12),
		date(2025, time.October, 13),
	})

	in := Input{
		Year:  2025,
		Month: time.October,
		Hospitals: []model.Hospital{{
			Name:         "HU",
			IsUniversity: true,
			DemandRules: []model.DemandRule{
				{Shift: model.Night, Frequency: model.SpecificDays, Dates: []time.Time{date(2025, time.October, 13)}},
			},
		}},
		Workers: []model.Worker{{
			Name:         "W1",
			IsSpecialist: false,
			Assignments: []model.AssignmentRule{
				{Hospital: "HU", Weekdays: []model.Weekday{model.Monday}, Shift: model.Night},
			},
		}},
		Holidays: holidays,
		Config:   config.Default(),
	}

	_, err := Solve(context.Background(), in)
	if err == nil {
		t.Fatal("expected an infeasible solve")
	}
	if rosterrors.GetCode(err) != rosterrors.CodeInfeasibleModel {
		t.Fatalf("expected CodeInfeasibleModel, got %v", rosterrors.GetCode(err))
	}
}

// Scenario 5: a single worker forced into two Nights 4 days apart incurs an S1 penalty of
// weight * (soft_night_window - delta) = 5.0 * (7 - 4) = 15.0.
func TestScenarioNightSpacingPairsPenalty(t *testing.T) {
	in := Input{
		Year:  2025,
		Month: time.October,
		Hospitals: []model.Hospital{{
			Name: "H1",
			DemandRules: []model.DemandRule{
				{Shift: model.Night, Frequency: model.SpecificDays, Dates: []time.Time{
					date(2025, time.October, 3),
					date(2025, time.October, 7),
				}},
			},
		}},
		Workers: []model.Worker{{
			Name: "W1",
			Assignments: []model.AssignmentRule{
				{Hospital: "H1", Weekdays: []model.Weekday{model.Friday, model.Tuesday}, Shift: model.Night},
			},
		}},
		Config: config.Default(),
	}

	result, err := Solve(context.Background(), in)
	if err != nil {
		t.Fatalf("expected a feasible solve, got error: %v", err)
	}
	if result.PenaltyTotal != 15.0 {
		t.Fatalf("expected S1 penalty of 15.0, got %v", result.PenaltyTotal)
	}
	if result.ObjectiveValue != -13 {
		t.Fatalf("expected objective 2 - 15 = -13, got %v", result.ObjectiveValue)
	}
}

// Scenario 6: a Desired preference for a satisfiable point is honored with no S6 penalty.
func TestScenarioDesiredPreferenceHonored(t *testing.T) {
	in := Input{
		Year:  2025,
		Month: time.October,
		Hospitals: []model.Hospital{{
			Name: "H1",
			DemandRules: []model.DemandRule{
				{Shift: model.Day, Frequency: model.SpecificDays, Dates: []time.Time{date(2025, time.October, 15)}},
			},
		}},
		Workers: []model.Worker{
			{Name: "W1", Assignments: []model.AssignmentRule{{Hospital: "H1", Weekdays: []model.Weekday{model.Wednesday}, Shift: model.Day}}},
			{Name: "W2", Assignments: []model.AssignmentRule{{Hospital: "H1", Weekdays: []model.Weekday{model.Wednesday}, Shift: model.Day}}},
		},
		Preferences: model.Preferences{
			{Worker: "W1", Date: date(2025, time.October, 15), Shift: model.Day}: model.Desired,
		},
		Config: config.Default(),
	}

	result, err := Solve(context.Background(), in)
	if err != nil {
		t.Fatalf("expected a feasible solve, got error: %v", err)
	}
	if result.PenaltyTotal != 0 {
		t.Fatalf("expected no S6 penalty, got %v", result.PenaltyTotal)
	}
	if len(result.Assignments) != 1 || result.Assignments[0].Worker != "W1" {
		t.Fatalf("expected W1 to get the Desired point, got %+v", result.Assignments)
	}
}

// A worker's AssignmentRule naming a hospital that doesn't exist is a DomainValidationError,
// raised before any solver work.
func TestValidateRejectsUnknownHospitalReference(t *testing.T) {
	in := Input{
		Year:  2025,
		Month: time.October,
		Hospitals: []model.Hospital{{
			Name: "H1",
			DemandRules: []model.DemandRule{
				{Shift: model.Night, Weekdays: []model.Weekday{model.Friday}, Frequency: model.Weekly},
			},
		}},
		Workers: []model.Worker{{
			Name: "W1",
			Assignments: []model.AssignmentRule{
				{Hospital: "DOES_NOT_EXIST", Weekdays: []model.Weekday{model.Friday}, Shift: model.Night},
			},
		}},
		Config: config.Default(),
	}

	err := in.Validate()
	if err == nil {
		t.Fatal("expected a validation error for an unknown hospital reference")
	}
	if rosterrors.GetCode(err) != rosterrors.CodeDomainValidation {
		t.Fatalf("expected CodeDomainValidation, got %v", rosterrors.GetCode(err))
	}
}

// Duplicate hospital names are a DomainValidationError too.
func TestValidateRejectsDuplicateHospitalNames(t *testing.T) {
	in := Input{
		Year:  2025,
		Month: time.October,
		Hospitals: []model.Hospital{
			{Name: "H1"},
			{Name: "H1"},
		},
		Workers: []model.Worker{{Name: "W1"}},
		Config:  config.Default(),
	}

	err := in.Validate()
	if err == nil {
		t.Fatal("expected a validation error for duplicate hospital names")
	}
	if rosterrors.GetCode(err) != rosterrors.CodeDomainValidation {
		t.Fatalf("expected CodeDomainValidation, got %v", rosterrors.GetCode(err))
	}
}
