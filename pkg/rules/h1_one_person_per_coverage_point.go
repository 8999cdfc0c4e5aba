package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// onePersonPerCoveragePoint is grounded on c01_one_person_per_hospital.py, but drops its
// shortage-slack escape hatch: spec.md requires every RequiredCoverage point to be filled by
// exactly one worker, full stop, so an unfillable point must make the model Infeasible
// rather than silently paying a big-M shortage cost.
type onePersonPerCoveragePoint struct{}

func (onePersonPerCoveragePoint) Name() string    { return config.RuleH1OnePersonPerCoveragePoint }
func (onePersonPerCoveragePoint) Summary() string { return "exactly one worker per required coverage point" }

func (onePersonPerCoveragePoint) Apply(b *solver.Builder, _ *ledger.Ledger, ctx *Context) error {
	byPoint := map[model.CoverageKey]map[model.ShiftKind][]cpmodel.BoolVar{}
	for key, v := range b.Vars() {
		ck := model.CoverageKey{Hospital: key.Hospital, Date: key.Date}
		if byPoint[ck] == nil {
			byPoint[ck] = map[model.ShiftKind][]cpmodel.BoolVar{}
		}
		byPoint[ck][key.Shift] = append(byPoint[ck][key.Shift], v)
	}

	for ck, shifts := range ctx.Required {
		for shift := range shifts {
			vars := byPoint[ck][shift]
			if len(vars) == 0 {
				// No candidate can ever fill this point: force infeasibility instead of
				// silently dropping the requirement.
				b.Model().AddLessOrEqual(cpmodel.NewConstant(1), cpmodel.NewConstant(0))
				continue
			}
			b.Model().AddExactlyOne(vars...)
		}
	}
	return nil
}
