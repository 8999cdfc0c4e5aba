package variablebuilder

import (
	"time"

	"github.com/teambition/rrule-go"

	"github.com/paiban/roster/pkg/calendar"
	"github.com/paiban/roster/pkg/model"
)

// ComputeRequiredCoverage expands every hospital's DemandRules against the target month's
// dates, merges in SpecifiedDays, and applies non-Night holiday suppression, producing the
// RequiredCoverage set per spec.md §4.2.
func ComputeRequiredCoverage(
	hospitals []model.Hospital,
	days []calendar.Date,
	specified []model.SpecifiedDay,
	holidays calendar.HolidaySet,
) model.RequiredCoverage {
	dayIndex := make(map[time.Time]calendar.Date, len(days))
	for _, d := range days {
		dayIndex[normalize(d.Time)] = d
	}

	forced := map[model.CoverageKey]map[model.ShiftKind]bool{}
	holidayOverride := map[model.CoverageKey]bool{}
	for _, sd := range specified {
		key := model.CoverageKey{Hospital: sd.Hospital, Date: normalize(sd.Date)}
		if forced[key] == nil {
			forced[key] = map[model.ShiftKind]bool{}
		}
		forced[key][sd.Shift] = true
		if sd.TreatAsHoliday {
			holidayOverride[key] = true
		}
	}

	provisional := model.RequiredCoverage{}
	for _, h := range hospitals {
		for _, rule := range h.DemandRules {
			for _, d := range expandRuleDates(rule, days) {
				key := model.CoverageKey{Hospital: h.Name, Date: normalize(d)}
				if provisional[key] == nil {
					provisional[key] = map[model.ShiftKind]bool{}
				}
				provisional[key][rule.Shift] = true
			}
		}
	}

	for key, shifts := range provisional {
		isHoliday := holidayOverride[key] || holidays[key.Date]
		if cd, ok := dayIndex[key.Date]; ok {
			isHoliday = isHoliday || cd.IsHolidayOrWeekend()
		}
		if !isHoliday {
			continue
		}
		for shift := range shifts {
			if shift == model.Night {
				continue
			}
			if forced[key] != nil && forced[key][shift] {
				continue
			}
			delete(shifts, shift)
		}
	}

	for key, shifts := range forced {
		if provisional[key] == nil {
			provisional[key] = map[model.ShiftKind]bool{}
		}
		for shift := range shifts {
			provisional[key][shift] = true
		}
	}

	for key, shifts := range provisional {
		if len(shifts) == 0 {
			delete(provisional, key)
		}
	}

	return provisional
}

// expandRuleDates returns the concrete dates a single DemandRule fires on within the month
// described by days.
func expandRuleDates(rule model.DemandRule, days []calendar.Date) []time.Time {
	switch rule.Frequency {
	case model.Weekly:
		return expandWeekly(rule, days)
	case model.Biweekly, model.SpecificDays:
		return filterToMonth(rule.Dates, days)
	default:
		return nil
	}
}

func expandWeekly(rule model.DemandRule, days []calendar.Date) []time.Time {
	if len(days) == 0 || len(rule.Weekdays) == 0 {
		return nil
	}
	byweekday := make([]rrule.Weekday, 0, len(rule.Weekdays))
	for _, w := range rule.Weekdays {
		byweekday = append(byweekday, toRRuleWeekday(w))
	}
	r, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   days[0].Time,
		Until:     days[len(days)-1].Time,
		Byweekday: byweekday,
	})
	if err != nil {
		return nil
	}
	return r.All()
}

func filterToMonth(dates []time.Time, days []calendar.Date) []time.Time {
	if len(dates) == 0 {
		return nil
	}
	inMonth := make(map[time.Time]bool, len(days))
	for _, d := range days {
		inMonth[normalize(d.Time)] = true
	}
	out := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		if inMonth[normalize(d)] {
			out = append(out, normalize(d))
		}
	}
	return out
}

func toRRuleWeekday(w model.Weekday) rrule.Weekday {
	switch w {
	case model.Monday:
		return rrule.MO
	case model.Tuesday:
		return rrule.TU
	case model.Wednesday:
		return rrule.WE
	case model.Thursday:
		return rrule.TH
	case model.Friday:
		return rrule.FR
	case model.Saturday:
		return rrule.SA
	default:
		return rrule.SU
	}
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
