package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/calendar"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// universityHolidayLastNightSpecialist is grounded on
// c07_univ_last_holiday_night_specialist.py: on the last day of a holiday run, a university
// hospital's Night duty may only go to a specialist; every other worker's candidate variable
// for that point is pinned to 0.
type universityHolidayLastNightSpecialist struct{}

func (universityHolidayLastNightSpecialist) Name() string {
	return config.RuleH7UnivHolidayLastNightSpec
}
func (universityHolidayLastNightSpecialist) Summary() string {
	return "only specialists may cover a university hospital's Night on the last holiday day"
}

func (universityHolidayLastNightSpecialist) Apply(b *solver.Builder, _ *ledger.Ledger, ctx *Context) error {
	universityHospitals := map[string]bool{}
	for _, h := range ctx.Hospitals {
		if h.IsUniversity {
			universityHospitals[h.Name] = true
		}
	}
	if len(universityHospitals) == 0 {
		return nil
	}

	specialists := map[string]bool{}
	for _, w := range ctx.Workers {
		if w.IsSpecialist {
			specialists[w.Name] = true
		}
	}

	for key, v := range b.Vars() {
		if !universityHospitals[key.Hospital] || key.Shift != model.Night {
			continue
		}
		if specialists[key.Worker] {
			continue
		}
		if !calendar.IsLastDayOfHolidayRun(key.Date, ctx.Holidays) {
			continue
		}
		b.Model().AddEquality(v, cpmodel.NewConstant(0))
	}
	return nil
}
