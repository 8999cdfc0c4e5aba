package variablebuilder

import "github.com/paiban/roster/pkg/model"

// DiagnoseInfeasibility returns, for a Universe, every RequiredCoverage point with zero
// materialized candidate variables. Per spec.md §7, this runs only after the solver itself
// has reported Infeasible — it is a diagnostic attached to the resulting error, not a
// pre-solve hard failure.
func DiagnoseInfeasibility(u Universe) []model.BindingPoint {
	candidateCount := map[model.CoverageKey]map[model.ShiftKind]int{}
	for key := range u.Candidates {
		ck := model.CoverageKey{Hospital: key.Hospital, Date: key.Date}
		if candidateCount[ck] == nil {
			candidateCount[ck] = map[model.ShiftKind]int{}
		}
		candidateCount[ck][key.Shift]++
	}

	var binding []model.BindingPoint
	for ck, shifts := range u.Required {
		for shift := range shifts {
			if candidateCount[ck][shift] == 0 {
				binding = append(binding, model.BindingPoint{
					Hospital: ck.Hospital,
					Date:     ck.Date,
					Shift:    shift,
				})
			}
		}
	}
	return binding
}
