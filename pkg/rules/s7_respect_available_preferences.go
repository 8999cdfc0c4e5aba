package rules

import (
	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// respectAvailablePreferences mirrors respectDesiredPreferences but for Available
// preferences, at the lighter S7 weight - a worker who merely said they were willing loses
// less by going unfilled than one who actively wanted the point.
type respectAvailablePreferences struct{}

func (respectAvailablePreferences) Name() string { return config.RuleS7RespectAvailablePrefs }
func (respectAvailablePreferences) Summary() string {
	return "penalize leaving a worker's Available point unfilled, lightly"
}

func (respectAvailablePreferences) Apply(b *solver.Builder, l *ledger.Ledger, ctx *Context) error {
	weight := ctx.Config.Weight(config.RuleS7RespectAvailablePrefs, config.DefaultS7AvailableWeight)
	return applyUnmetPreferencePenalty(b, l, ctx, model.Available, config.RuleS7RespectAvailablePrefs, weight, "s7")
}
