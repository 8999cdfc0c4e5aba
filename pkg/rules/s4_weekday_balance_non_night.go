package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// weekdayBalanceNonNight is grounded on s04_soft_balance_non_night_by_weekday.py: for every
// (hospital, weekday, non-Night shift) combination, a worker's count of that exact slot
// across the month should land within the band [floor(avg), floor(avg)+1] of the
// per-candidate average.
type weekdayBalanceNonNight struct{}

func (weekdayBalanceNonNight) Name() string { return config.RuleS4WeekdayBalanceNonNight }
func (weekdayBalanceNonNight) Summary() string {
	return "keep non-Night duty balanced across a hospital's weekday slots"
}

func (weekdayBalanceNonNight) Apply(b *solver.Builder, l *ledger.Ledger, ctx *Context) error {
	weight := ctx.Config.Weight(config.RuleS4WeekdayBalanceNonNight, config.DefaultS4WeekdayBalanceWeight)

	weekdayOf := map[string]model.Weekday{}
	for _, d := range ctx.Days {
		weekdayOf[d.Time.Format("20060102")] = d.Weekday
	}

	type hws struct {
		hospital string
		weekday  model.Weekday
		shift    model.ShiftKind
	}
	type hwsw struct {
		hws
		worker string
	}
	varsByHWSW := map[hwsw][]cpmodel.BoolVar{}
	daysByHWS := map[hws]map[string]bool{}

	for key, v := range b.Vars() {
		if key.Shift == model.Night {
			continue
		}
		wd, ok := weekdayOf[key.Date.Format("20060102")]
		if !ok {
			continue
		}
		base := hws{hospital: key.Hospital, weekday: wd, shift: key.Shift}
		varsByHWSW[hwsw{hws: base, worker: key.Worker}] = append(varsByHWSW[hwsw{hws: base, worker: key.Worker}], v)
		if daysByHWS[base] == nil {
			daysByHWS[base] = map[string]bool{}
		}
		daysByHWS[base][key.Date.Format("20060102")] = true
	}

	for base, days := range daysByHWS {
		var candidates []string
		for k := range varsByHWSW {
			if k.hws == base {
				candidates = append(candidates, k.worker)
			}
		}
		kh := len(candidates)
		if kh <= 1 || len(days) == 0 {
			continue
		}

		th := int64(len(days))
		ah := th / int64(kh)
		lh := ah
		uh := ah + 1
		upperBound := th

		for _, worker := range candidates {
			k := hwsw{hws: base, worker: worker}
			vars := varsByHWSW[k]

			over := nonNegativeSlack(b, upperBound)
			exprOver := cpmodel.NewLinearExpr()
			for _, v := range vars {
				exprOver.AddTerm(v, 1)
			}
			exprOver.AddTerm(over, -1)
			b.Model().AddLessOrEqual(exprOver, cpmodel.NewConstant(uh))

			under := nonNegativeSlack(b, upperBound)
			exprUnder := cpmodel.NewLinearExpr()
			exprUnder.AddTerm(under, 1)
			for _, v := range vars {
				exprUnder.AddTerm(v, 1)
			}
			b.Model().AddLessOrEqual(cpmodel.NewConstant(lh), exprUnder)

			meta := map[string]string{
				"hospital": base.hospital, "worker": worker, "shift": string(base.shift),
			}
			l.Add(config.RuleS4WeekdayBalanceNonNight, weight, ledger.IntTerm(over), merge(meta, "kind", "over"))
			l.Add(config.RuleS4WeekdayBalanceNonNight, weight, ledger.IntTerm(under), merge(meta, "kind", "under"))
		}
	}
	return nil
}

func merge(base map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(base)+1)
	for k, v := range base {
		out[k] = v
	}
	out[key] = value
	return out
}
