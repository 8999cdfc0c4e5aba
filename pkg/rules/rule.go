// Package rules implements the H1-H7 hard constraints and S1-S7 soft penalties of the duty
// roster model, each grounded on the corresponding constraint in the original implementation
// and translated from pulp's LP idiom to CP-SAT's boolean/integer one.
package rules

import (
	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/calendar"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// Context carries everything a Rule needs besides the Builder and Ledger it's given
// directly: the target month's calendar, the domain data, and the tunables from Config.
// It mirrors the original implementation's per-solve Context mapping, minus the fields
// (variables, shortage_slack, penalties) that pkg/solver and pkg/ledger now own directly.
type Context struct {
	Days        []calendar.Date
	Hospitals   []model.Hospital
	Workers     []model.Worker
	Preferences model.Preferences
	Caps        []model.Cap
	Holidays    calendar.HolidaySet
	Required    model.RequiredCoverage
	Config      *config.Config
}

// Rule is one hard or soft constraint the registry applies to a Builder in turn. Apply must
// be idempotent with respect to the Builder/Ledger it's handed - the registry calls each
// rule exactly once per solve, in registration order.
type Rule interface {
	Name() string
	Summary() string
	Apply(b *solver.Builder, l *ledger.Ledger, ctx *Context) error
}
