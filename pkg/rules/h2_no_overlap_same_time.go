package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// noOverlapSameTime is grounded on c02_no_overlap_same_time.py: a worker can never hold two
// duties whose time-of-day overlaps, across hospitals - same shift kind at two hospitals, or
// Day overlapping AM, or Day overlapping PM (AM and PM never overlap each other).
type noOverlapSameTime struct{}

func (noOverlapSameTime) Name() string    { return config.RuleH2NoOverlapSameTime }
func (noOverlapSameTime) Summary() string { return "forbid overlapping same-time duties across hospitals" }

func (noOverlapSameTime) Apply(b *solver.Builder, _ *ledger.Ledger, _ *Context) error {
	byWD := map[workerDate]map[model.ShiftKind][]cpmodel.BoolVar{}
	for key, v := range b.Vars() {
		k := workerDate{worker: key.Worker, date: key.Date.Format("20060102")}
		if byWD[k] == nil {
			byWD[k] = map[model.ShiftKind][]cpmodel.BoolVar{}
		}
		byWD[k][key.Shift] = append(byWD[k][key.Shift], v)
	}

	for _, byShift := range byWD {
		for _, vars := range byShift {
			if len(vars) > 1 {
				b.Model().AddAtMostOne(vars...)
			}
		}

		dayAM := append(append([]cpmodel.BoolVar{}, byShift[model.Day]...), byShift[model.AM]...)
		if len(dayAM) > 1 {
			b.Model().AddAtMostOne(dayAM...)
		}
		dayPM := append(append([]cpmodel.BoolVar{}, byShift[model.Day]...), byShift[model.PM]...)
		if len(dayPM) > 1 {
			b.Model().AddAtMostOne(dayPM...)
		}
	}
	return nil
}
