package rules

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	rosterrors "github.com/paiban/roster/pkg/errors"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/solver"
)

// perWorkerPerHospitalCap is grounded on c04_max_assignments_per_worker_hospital.py: a nil
// Cap.Max means unlimited. Unlike the original's "cap < 0 => skip" guard, a negative cap is a
// fatal configuration error here - a rule must fail fatally on a negative cap, not silently
// ignore it.
type perWorkerPerHospitalCap struct{}

func (perWorkerPerHospitalCap) Name() string    { return config.RuleH4PerWorkerPerHospitalCap }
func (perWorkerPerHospitalCap) Summary() string { return "bound total shifts a worker may take at one hospital" }

func (perWorkerPerHospitalCap) Apply(b *solver.Builder, _ *ledger.Ledger, ctx *Context) error {
	type wh struct{ worker, hospital string }
	byWH := map[wh][]cpmodel.BoolVar{}
	for key, v := range b.Vars() {
		k := wh{worker: key.Worker, hospital: key.Hospital}
		byWH[k] = append(byWH[k], v)
	}

	for _, cap := range ctx.Caps {
		if cap.Max == nil {
			continue
		}
		if *cap.Max < 0 {
			return rosterrors.Config(fmt.Sprintf("cap for worker %q at hospital %q must be >= 0", cap.Worker, cap.Hospital)).
				WithField("worker", cap.Worker).
				WithField("hospital", cap.Hospital).
				WithField("max", *cap.Max)
		}
		vars := byWH[wh{worker: cap.Worker, hospital: cap.Hospital}]
		if len(vars) == 0 {
			continue
		}
		sum := cpmodel.NewLinearExpr()
		for _, v := range vars {
			sum.AddTerm(v, 1)
		}
		b.Model().AddLessOrEqual(sum, cpmodel.NewConstant(int64(*cap.Max)))
	}
	return nil
}
