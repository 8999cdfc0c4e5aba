package rules

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// respectDesiredPreferences is a spec.md-only soft rule; the original implementation only
// enforced preferences as a hard CSV-driven forbid (c03_respect_preferences.py). It follows
// that file's (worker, date) keying but, per spec.md's finer-grained Preference model,
// penalizes leaving a specific Desired (worker, date, shift) point unfilled by that worker -
// a unit slack equal to 1 minus the sum of that worker's candidate variables at the point.
// Only points where the worker actually had a candidate variable are considered: a Desired
// preference for a point the worker was never eligible for isn't a missed opportunity.
type respectDesiredPreferences struct{}

func (respectDesiredPreferences) Name() string { return config.RuleS6RespectDesiredPreferences }
func (respectDesiredPreferences) Summary() string {
	return "penalize leaving a worker's Desired point unfilled"
}

func (respectDesiredPreferences) Apply(b *solver.Builder, l *ledger.Ledger, ctx *Context) error {
	weight := ctx.Config.Weight(config.RuleS6RespectDesiredPreferences, config.DefaultS6DesiredWeight)
	return applyUnmetPreferencePenalty(b, l, ctx, model.Desired, config.RuleS6RespectDesiredPreferences, weight, "s6")
}

// applyUnmetPreferencePenalty is shared by S6 (Desired) and S7 (Available): for every
// (worker, date, shift) the worker marked want, with at least one real candidate variable,
// add a unit slack that costs weight when none of those candidates end up chosen.
func applyUnmetPreferencePenalty(
	b *solver.Builder,
	l *ledger.Ledger,
	ctx *Context,
	want model.Preference,
	source string,
	weight float64,
	prefix string,
) error {
	varsByWDS := map[model.PreferenceKey][]cpmodel.BoolVar{}
	for key, v := range b.Vars() {
		pk := model.PreferenceKey{Worker: key.Worker, Date: key.Date, Shift: key.Shift}
		varsByWDS[pk] = append(varsByWDS[pk], v)
	}

	for pk, pref := range ctx.Preferences {
		if pref != want {
			continue
		}
		vars, ok := varsByWDS[pk]
		if !ok || len(vars) == 0 {
			continue
		}

		slack := b.NewAuxBoolVar(fmt.Sprintf("%s_unmet_%s_%s_%s", prefix, pk.Worker, pk.Date.Format("20060102"), pk.Shift))
		expr := cpmodel.NewLinearExpr()
		expr.AddTerm(slack, 1)
		for _, v := range vars {
			expr.AddTerm(v, 1)
		}
		b.Model().AddEquality(expr, cpmodel.NewConstant(1))

		l.Add(source, weight, ledger.BoolTerm(slack), map[string]string{
			"worker": pk.Worker,
			"date":   pk.Date.Format("20060102"),
			"shift":  string(pk.Shift),
		})
	}
	return nil
}
