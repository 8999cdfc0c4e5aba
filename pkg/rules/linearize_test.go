package rules

import (
	"testing"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// fixedVarBuilder returns a Builder with one candidate var per requested name, each
// constrained to a fixed 0/1 value, for exercising a linearization helper in isolation.
func fixedVarBuilder(t *testing.T, values map[string]int) (*solver.Builder, map[string]cpmodel.BoolVar) {
	t.Helper()
	candidates := map[model.VarKey]bool{}
	for name := range values {
		candidates[model.VarKey{Hospital: "H", Worker: name, Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), Shift: model.Day}] = true
	}
	b := solver.NewBuilder(candidates)
	vars := map[string]cpmodel.BoolVar{}
	for name, val := range values {
		v, ok := b.Var(model.VarKey{Hospital: "H", Worker: name, Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), Shift: model.Day})
		if !ok {
			t.Fatalf("missing var for %s", name)
		}
		b.Model().AddEquality(v, cpmodel.NewConstant(int64(val)))
		vars[name] = v
	}
	return b, vars
}

func solveBool(t *testing.T, b *solver.Builder, v cpmodel.BoolVar) bool {
	t.Helper()
	proto, err := b.Model().Model()
	if err != nil {
		t.Fatalf("model build failed: %v", err)
	}
	resp, err := cpmodel.SolveCpModel(proto)
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if resp.GetStatus() != cmpb.CpSolverStatus_OPTIMAL && resp.GetStatus() != cmpb.CpSolverStatus_FEASIBLE {
		t.Fatalf("expected a feasible solve, got status %v", resp.GetStatus())
	}
	return cpmodel.SolutionBooleanValue(resp, v)
}

func TestAndVarTruthTable(t *testing.T) {
	cases := []struct {
		a, c int
		want bool
	}{
		{0, 0, false},
		{0, 1, false},
		{1, 0, false},
		{1, 1, true},
	}
	for _, tc := range cases {
		b, vars := fixedVarBuilder(t, map[string]int{"a": tc.a, "c": tc.c})
		z := andVar(b, "z", vars["a"], vars["c"])
		got := solveBool(t, b, z)
		if got != tc.want {
			t.Errorf("andVar(%d, %d) = %v, want %v", tc.a, tc.c, got, tc.want)
		}
	}
}

func TestIndicatorOrTruthTable(t *testing.T) {
	cases := []struct {
		name string
		vals map[string]int
		want bool
	}{
		{"all zero", map[string]int{"a": 0, "b": 0, "c": 0}, false},
		{"one set", map[string]int{"a": 0, "b": 1, "c": 0}, true},
		{"all set", map[string]int{"a": 1, "b": 1, "c": 1}, true},
	}
	for _, tc := range cases {
		b, vars := fixedVarBuilder(t, tc.vals)
		lits := []cpmodel.BoolVar{vars["a"], vars["b"], vars["c"]}
		y := indicatorOr(b, "y", lits)
		got := solveBool(t, b, y)
		if got != tc.want {
			t.Errorf("%s: indicatorOr = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestIndicatorOrEmptyIsForcedFalse(t *testing.T) {
	b := solver.NewBuilder(nil)
	y := indicatorOr(b, "y", nil)
	got := solveBool(t, b, y)
	if got {
		t.Error("indicatorOr with no literals should be forced to 0")
	}
}
