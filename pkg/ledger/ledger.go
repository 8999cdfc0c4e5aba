// Package ledger accumulates soft-rule penalty terms as rules apply, then turns them into
// weighted objective contributions and, after a solve, a per-source penalty breakdown.
package ledger

import (
	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"
)

// Term is one objective-bearing decision variable a penalty entry is keyed to: either a
// BoolVar (most soft rules use a 0/1 violation indicator) or an IntVar (the S3/S4
// deviation-band rules use a non-negative integer slack).
type Term interface {
	addToObjective(expr *cpmodel.LinearExpr, coeff int64)
	solutionValue(resp *cmpb.CpSolverResponse) float64
}

type boolTerm struct{ v cpmodel.BoolVar }

func (t boolTerm) addToObjective(expr *cpmodel.LinearExpr, coeff int64) { expr.AddTerm(t.v, coeff) }
func (t boolTerm) solutionValue(resp *cmpb.CpSolverResponse) float64 {
	if cpmodel.SolutionBooleanValue(resp, t.v) {
		return 1
	}
	return 0
}

type intTerm struct{ v cpmodel.IntVar }

func (t intTerm) addToObjective(expr *cpmodel.LinearExpr, coeff int64) { expr.AddTerm(t.v, coeff) }
func (t intTerm) solutionValue(resp *cmpb.CpSolverResponse) float64 {
	return float64(cpmodel.SolutionIntegerValue(resp, t.v))
}

// BoolTerm wraps a 0/1 indicator variable as a Term.
func BoolTerm(v cpmodel.BoolVar) Term { return boolTerm{v} }

// IntTerm wraps a non-negative integer slack variable as a Term.
func IntTerm(v cpmodel.IntVar) Term { return intTerm{v} }

// Entry is one registered soft-rule penalty contribution, mirroring the original
// implementation's PenaltyItem(var, weight, meta, source) tuple.
type Entry struct {
	Source string
	Weight float64
	Term   Term
	Meta   map[string]string
}

// Ledger is an append-only list of Entries, built up as each rule in the registry applies.
type Ledger struct {
	entries []Entry
}

// New returns an empty Ledger.
func New() *Ledger {
	return &Ledger{}
}

// Add registers one penalty entry.
func (l *Ledger) Add(source string, weight float64, term Term, meta map[string]string) {
	l.entries = append(l.entries, Entry{Source: source, Weight: weight, Term: term, Meta: meta})
}

// AddTerm adds term's contribution (scaled by coeff) to expr. Term's own method is
// unexported, so callers outside this package (the solver driver building the objective)
// go through this instead of reaching into the interface directly.
func AddTerm(expr *cpmodel.LinearExpr, term Term, coeff int64) {
	term.addToObjective(expr, coeff)
}

// Entries returns every registered entry, in registration order.
func (l *Ledger) Entries() []Entry {
	return l.entries
}
