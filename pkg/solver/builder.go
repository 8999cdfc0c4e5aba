// Package solver wraps the OR-Tools CP-SAT Go bindings behind a handle table keyed by
// model.VarKey, so every rule in pkg/rules shares the same decision-variable identity.
package solver

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/pkg/model"
)

// Builder owns the CP-SAT model and the BoolVar for every candidate (hospital, worker,
// date, shift) point in the decision-variable universe (pkg/variablebuilder's Pass 3:
// materialize).
type Builder struct {
	model *cpmodel.Builder
	vars  map[model.VarKey]cpmodel.BoolVar
	aux   int
}

// NewBuilder materializes one BoolVar per candidate key.
func NewBuilder(candidates map[model.VarKey]bool) *Builder {
	b := &Builder{
		model: cpmodel.NewCpModelBuilder(),
		vars:  make(map[model.VarKey]cpmodel.BoolVar, len(candidates)),
	}
	for key := range candidates {
		b.vars[key] = b.model.NewBoolVar().WithName(varName(key))
	}
	return b
}

func varName(k model.VarKey) string {
	return fmt.Sprintf("x__%s__%s__%s__%s", k.Hospital, k.Worker, k.Date.Format("20060102"), k.Shift)
}

// Var returns the decision variable at key, and whether key was in the candidate universe.
func (b *Builder) Var(key model.VarKey) (cpmodel.BoolVar, bool) {
	v, ok := b.vars[key]
	return v, ok
}

// Vars returns the full handle table. Rules should iterate it rather than rebuild keys.
func (b *Builder) Vars() map[model.VarKey]cpmodel.BoolVar {
	return b.vars
}

// Model returns the underlying CP-SAT builder for rules that need to post constraints
// cpmodel's handle table doesn't wrap (AddExactlyOne, AddAtMostOne, AddBoolOr, ...).
func (b *Builder) Model() *cpmodel.Builder {
	return b.model
}

// NewAuxBoolVar creates an auxiliary indicator/slack variable (the y/z variables the
// AND and OR linearizations in pkg/rules introduce), named with a stable per-Builder
// counter suffix so two calls never collide even if callers pass the same prefix.
func (b *Builder) NewAuxBoolVar(prefix string) cpmodel.BoolVar {
	b.aux++
	return b.model.NewBoolVar().WithName(fmt.Sprintf("%s__%d", prefix, b.aux))
}
