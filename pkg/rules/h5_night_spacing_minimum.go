package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// nightSpacingMinimum is grounded on c05_night_spacing.py: across any rolling window of
// MinNightGap consecutive days, a worker may hold at most one Night duty (at any hospital).
// window_days in the original is used directly as the gap (its "window_days=2" default means
// "at least 1 day free" between two Nights that are 2 days apart); Config.MinNightGap carries
// that same window length, so two Nights exactly MinNightGap days apart are legal.
type nightSpacingMinimum struct{}

func (nightSpacingMinimum) Name() string    { return config.RuleH5NightSpacingMinimum }
func (nightSpacingMinimum) Summary() string { return "at most one Night per worker in any MinNightGap day window" }

func (nightSpacingMinimum) Apply(b *solver.Builder, _ *ledger.Ledger, ctx *Context) error {
	days := ctx.Days
	if len(days) == 0 {
		return nil
	}
	window := ctx.Config.MinNightGap

	byWorkerIdx := map[string]map[int][]cpmodel.BoolVar{}
	dayIdx := make(map[string]int, len(days))
	for i, d := range days {
		dayIdx[d.Time.Format("20060102")] = i
	}

	for key, v := range b.Vars() {
		if key.Shift != model.Night {
			continue
		}
		idx, ok := dayIdx[key.Date.Format("20060102")]
		if !ok {
			continue
		}
		if byWorkerIdx[key.Worker] == nil {
			byWorkerIdx[key.Worker] = map[int][]cpmodel.BoolVar{}
		}
		byWorkerIdx[key.Worker][idx] = append(byWorkerIdx[key.Worker][idx], v)
	}

	for _, idxMap := range byWorkerIdx {
		for start := 0; start <= len(days)-window; start++ {
			var inWindow []cpmodel.BoolVar
			for j := start; j < start+window; j++ {
				inWindow = append(inWindow, idxMap[j]...)
			}
			if len(inWindow) > 1 {
				b.Model().AddAtMostOne(inWindow...)
			}
		}
	}
	return nil
}
