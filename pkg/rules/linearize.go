package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/pkg/solver"
)

// indicatorOr returns an auxiliary BoolVar y such that y == 1 iff at least one of lits is 1,
// via y >= v_i (each i) and y <= sum(lits). This is the CP-SAT analogue of the "is this
// worker on duty at all that day" indicator the original implementation's soft rules build
// before combining two indicators with an AND.
func indicatorOr(b *solver.Builder, prefix string, lits []cpmodel.BoolVar) cpmodel.BoolVar {
	y := b.NewAuxBoolVar(prefix)
	if len(lits) == 0 {
		b.Model().AddEquality(y, cpmodel.NewConstant(0))
		return y
	}
	sum := cpmodel.NewLinearExpr()
	for _, v := range lits {
		b.Model().AddLessOrEqual(v, y)
		sum.AddTerm(v, 1)
	}
	b.Model().AddLessOrEqual(y, sum)
	return y
}

// andVar returns an auxiliary BoolVar z = AND(a, c), via z <= a, z <= c, z >= a + c - 1.
func andVar(b *solver.Builder, prefix string, a, c cpmodel.BoolVar) cpmodel.BoolVar {
	z := b.NewAuxBoolVar(prefix)
	b.Model().AddLessOrEqual(z, a)
	b.Model().AddLessOrEqual(z, c)

	sum := cpmodel.NewLinearExpr()
	sum.AddTerm(a, 1)
	sum.AddTerm(c, 1)
	sum.AddTerm(z, -1)
	b.Model().AddLessOrEqual(sum, cpmodel.NewConstant(1))
	return z
}

// nonNegativeSlack creates a bounded non-negative integer slack variable, used by the
// deviation-band rules (S3, S4) for their over/under counts.
func nonNegativeSlack(b *solver.Builder, upperBound int64) cpmodel.IntVar {
	if upperBound < 1 {
		upperBound = 1
	}
	return b.Model().NewIntVarFromDomain(cpmodel.NewDomain(0, upperBound))
}
