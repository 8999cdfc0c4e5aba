// Package variablebuilder materializes the feasible decision-variable universe by a two-pass
// sieve over the hospital x worker x date x shift product, and computes the RequiredCoverage
// set every hard and soft rule keys off.
package variablebuilder

import (
	"github.com/paiban/roster/pkg/calendar"
	"github.com/paiban/roster/pkg/model"
)

// Universe is the result of Build: the set of VarKeys worth materializing as solver
// variables, plus the RequiredCoverage set they were sieved against.
type Universe struct {
	Candidates map[model.VarKey]bool
	Required   model.RequiredCoverage
}

// Build runs the two-pass sieve described in spec.md §4.2:
//  1. elevate by workers — for each worker's AssignmentRules, mark every matching
//     (hospital, worker, date, shift) as a candidate.
//  2. restrict by hospitals — drop any candidate whose (hospital, date, shift) is not in
//     RequiredCoverage.
func Build(
	hospitals []model.Hospital,
	workers []model.Worker,
	days []calendar.Date,
	specified []model.SpecifiedDay,
	holidays calendar.HolidaySet,
) Universe {
	required := ComputeRequiredCoverage(hospitals, days, specified, holidays)

	candidates := map[model.VarKey]bool{}
	for _, w := range workers {
		for _, rule := range w.Assignments {
			weekdays := toWeekdaySet(rule.Weekdays)
			for _, d := range days {
				if !weekdays[d.Weekday] {
					continue
				}
				key := model.VarKey{Hospital: rule.Hospital, Worker: w.Name, Date: d.Time, Shift: rule.Shift}
				candidates[key] = true
			}
		}
	}

	for key := range candidates {
		if !required.Has(key.Hospital, key.Date, key.Shift) {
			delete(candidates, key)
		}
	}

	return Universe{Candidates: candidates, Required: required}
}

func toWeekdaySet(weekdays []model.Weekday) map[model.Weekday]bool {
	s := make(map[model.Weekday]bool, len(weekdays))
	for _, w := range weekdays {
		s[w] = true
	}
	return s
}
