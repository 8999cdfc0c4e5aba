package variablebuilder

import (
	"testing"
	"time"

	"github.com/paiban/roster/pkg/calendar"
	"github.com/paiban/roster/pkg/model"
)

func TestBuildElevatesAndRestricts(t *testing.T) {
	days := calendar.Dates(2025, time.October, nil)

	hospitals := []model.Hospital{{
		Name: "H1",
		DemandRules: []model.DemandRule{
			{Shift: model.Night, Weekdays: []model.Weekday{model.Friday}, Frequency: model.Weekly},
		},
	}}
	workers := []model.Worker{{
		Name: "W1",
		Assignments: []model.AssignmentRule{
			{Hospital: "H1", Weekdays: []model.Weekday{model.Friday}, Shift: model.Night},
		},
	}}

	u := Build(hospitals, workers, days, nil, nil)

	fridays := 0
	for _, d := range days {
		if d.Weekday == model.Friday {
			fridays++
			key := model.VarKey{Hospital: "H1", Worker: "W1", Date: d.Time, Shift: model.Night}
			if !u.Candidates[key] {
				t.Fatalf("expected candidate for Friday %v", d.Time)
			}
		}
	}
	if fridays == 0 {
		t.Fatal("test month should contain Fridays")
	}
	if len(u.Candidates) != fridays {
		t.Fatalf("expected exactly %d candidates, got %d", fridays, len(u.Candidates))
	}
}

func TestBuildDropsUnrequiredWorkerAvailability(t *testing.T) {
	days := calendar.Dates(2025, time.October, nil)
	// No hospital demand at all: worker is theoretically available but nothing is required.
	hospitals := []model.Hospital{{Name: "H1"}}
	workers := []model.Worker{{
		Name: "W1",
		Assignments: []model.AssignmentRule{
			{Hospital: "H1", Weekdays: []model.Weekday{model.Friday}, Shift: model.Night},
		},
	}}

	u := Build(hospitals, workers, days, nil, nil)
	if len(u.Candidates) != 0 {
		t.Fatalf("expected no candidates when nothing is required, got %d", len(u.Candidates))
	}
}

func TestDiagnoseInfeasibilityFindsZeroCandidatePoints(t *testing.T) {
	days := calendar.Dates(2025, time.October, nil)
	hospitals := []model.Hospital{{
		Name: "H1",
		DemandRules: []model.DemandRule{
			{Shift: model.Night, Weekdays: []model.Weekday{model.Friday}, Frequency: model.Weekly},
		},
	}}
	// No workers at all: every Friday Night point is required but has zero candidates.
	u := Build(hospitals, nil, days, nil, nil)

	binding := DiagnoseInfeasibility(u)
	if len(binding) == 0 {
		t.Fatal("expected binding points when no workers are eligible")
	}
	for _, bp := range binding {
		if bp.Hospital != "H1" || bp.Shift != model.Night {
			t.Fatalf("unexpected binding point: %+v", bp)
		}
	}
}

func TestHolidaySuppressesNonNightDemand(t *testing.T) {
	days := calendar.Dates(2025, time.October, nil)
	holidays := calendar.NewHolidaySet([]time.Time{time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)})

	hospitals := []model.Hospital{{
		Name: "H1",
		DemandRules: []model.DemandRule{
			{Shift: model.Day, Weekdays: []model.Weekday{model.Monday}, Frequency: model.Weekly},
			{Shift: model.Night, Weekdays: []model.Weekday{model.Monday}, Frequency: model.Weekly},
		},
	}}

	required := ComputeRequiredCoverage(hospitals, days, nil, holidays)
	key := model.CoverageKey{Hospital: "H1", Date: time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)}
	shifts := required[key]
	if shifts[model.Day] {
		t.Fatalf("expected Day demand to be suppressed on a holiday Monday")
	}
	if !shifts[model.Night] {
		t.Fatalf("expected Night demand to survive holiday suppression")
	}
}

func TestSpecifiedDayReenablesHolidaySuppressedDemand(t *testing.T) {
	days := calendar.Dates(2025, time.October, nil)
	holidays := calendar.NewHolidaySet([]time.Time{time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)})

	hospitals := []model.Hospital{{
		Name: "H1",
		DemandRules: []model.DemandRule{
			{Shift: model.Day, Weekdays: []model.Weekday{model.Monday}, Frequency: model.Weekly},
		},
	}}
	specified := []model.SpecifiedDay{
		{Hospital: "H1", Date: time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC), Shift: model.Day},
	}

	required := ComputeRequiredCoverage(hospitals, days, specified, holidays)
	key := model.CoverageKey{Hospital: "H1", Date: time.Date(2025, time.October, 13, 0, 0, 0, 0, time.UTC)}
	if !required[key][model.Day] {
		t.Fatalf("expected SpecifiedDay to re-enable suppressed Day demand")
	}
}
