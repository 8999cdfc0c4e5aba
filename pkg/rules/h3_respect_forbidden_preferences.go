package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// respectForbiddenPreferences is grounded on c03_respect_preferences.py, redesigned around
// spec.md's per-shift Preference enum instead of the original's per-date CSV status: any
// (worker, date, shift) marked Forbidden is pinned to 0 regardless of which hospital offers it.
type respectForbiddenPreferences struct{}

func (respectForbiddenPreferences) Name() string { return config.RuleH3RespectForbiddenPrefs }
func (respectForbiddenPreferences) Summary() string {
	return "never assign a worker to a point they marked Forbidden"
}

func (respectForbiddenPreferences) Apply(b *solver.Builder, _ *ledger.Ledger, ctx *Context) error {
	for key, v := range b.Vars() {
		pref := ctx.Preferences.Get(model.PreferenceKey{Worker: key.Worker, Date: key.Date, Shift: key.Shift})
		if pref == model.Forbidden {
			b.Model().AddEquality(v, cpmodel.NewConstant(0))
		}
	}
	return nil
}
