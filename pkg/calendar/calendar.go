// Package calendar builds the target month's date list and classifies dates as
// weekends/holidays for the rules that key off them.
package calendar

import (
	"time"

	"github.com/paiban/roster/pkg/model"
)

// HolidaySet is the caller-supplied set of public-holiday dates for the target month (and its
// immediate neighbors, since holiday-run detection looks one day past either end). Dates are
// compared by (year, month, day) only; time-of-day and location are ignored.
type HolidaySet map[time.Time]bool

// NewHolidaySet builds a HolidaySet from a list of dates, normalizing each to midnight UTC.
func NewHolidaySet(dates []time.Time) HolidaySet {
	hs := make(HolidaySet, len(dates))
	for _, d := range dates {
		hs[normalize(d)] = true
	}
	return hs
}

func normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Date wraps a calendar day together with its weekend/holiday classification.
type Date struct {
	Time     time.Time
	Weekday  model.Weekday
	IsWeekend bool
	IsHoliday bool
}

// IsHolidayOrWeekend reports whether d is a non-working day for demand-rule purposes.
func (d Date) IsHolidayOrWeekend() bool {
	return d.IsWeekend || d.IsHoliday
}

// Dates generates every date in (year, month), classifying each against holidays.
func Dates(year int, month time.Month, holidays HolidaySet) []Date {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	out := make([]Date, 0, 31)
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		out = append(out, classify(d, holidays))
	}
	return out
}

func classify(d time.Time, holidays HolidaySet) Date {
	wd := d.Weekday()
	weekend := wd == time.Saturday || wd == time.Sunday
	holiday := holidays[normalize(d)]
	return Date{
		Time:      d,
		Weekday:   model.WeekdayOf(d),
		IsWeekend: weekend,
		IsHoliday: holiday || weekend,
	}
}

// IsLastDayOfHolidayRun reports whether d is a holiday/weekend date whose following date is
// not. A single isolated holiday day therefore counts as the (length-one) run's last day —
// this follows the literal glossary wording rather than requiring the run to be at least two
// days long (see DESIGN.md for the rationale).
func IsLastDayOfHolidayRun(d time.Time, holidays HolidaySet) bool {
	today := classify(d, holidays)
	if !today.IsHolidayOrWeekend() {
		return false
	}
	next := classify(d.AddDate(0, 0, 1), holidays)
	return !next.IsHolidayOrWeekend()
}
