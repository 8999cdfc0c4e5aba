package ledger

import (
	"sort"

	cmpb "github.com/google/or-tools/ortools/sat/proto/cpmodel"

	"github.com/paiban/roster/pkg/model"
)

// Summarize resolves every Entry's Term against a solved response into a model.PenaltyItem,
// and returns the grand total, the per-source subtotals (an unordered map; SourcesByTotal
// ranks them), and the full item list
// sorted by individual penalty descending - the same shape the original implementation's
// penalty report printed, minus the terminal rendering.
func Summarize(l *Ledger, resp *cmpb.CpSolverResponse) (total float64, bySource map[string]float64, items []model.PenaltyItem) {
	bySource = map[string]float64{}
	items = make([]model.PenaltyItem, 0, len(l.entries))

	for _, e := range l.entries {
		item := model.PenaltyItem{
			Source: e.Source,
			Weight: e.Weight,
			Value:  e.Term.solutionValue(resp),
			Meta:   e.Meta,
		}
		items = append(items, item)
		p := item.Penalty()
		total += p
		bySource[e.Source] += p
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Penalty() > items[j].Penalty()
	})

	return total, bySource, items
}

// TopN truncates a penalty-descending-sorted item list to its n highest-penalty entries.
// A non-positive n returns items unchanged.
func TopN(items []model.PenaltyItem, n int) []model.PenaltyItem {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}

// SourcesByTotal returns the keys of bySource ordered by subtotal descending, for reports
// that want to walk sources in the same "worst offender first" order as the original
// implementation's penalty summary table.
func SourcesByTotal(bySource map[string]float64) []string {
	sources := make([]string, 0, len(bySource))
	for s := range bySource {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool {
		return bySource[sources[i]] > bySource[sources[j]]
	})
	return sources
}
