package rules

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// nightSpacingPairs is grounded on s01_night_spacing_pairs.py: for every pair of Night days
// a worker holds within SoftNightWindow days of each other, it penalizes the pair in
// proportion to how close together they are (closer pairs cost more), tapering to zero once
// the gap reaches SoftNightWindow.
type nightSpacingPairs struct{}

func (nightSpacingPairs) Name() string    { return config.RuleS1NightSpacingPairs }
func (nightSpacingPairs) Summary() string { return "penalize Night days that fall close together" }

func (nightSpacingPairs) Apply(b *solver.Builder, l *ledger.Ledger, ctx *Context) error {
	window := ctx.Config.SoftNightWindow
	baseWeight := ctx.Config.Weight(config.RuleS1NightSpacingPairs, config.DefaultS1NightSpacingPairsWeight)

	byWorkerDay := map[string]map[string][]cpmodel.BoolVar{}
	for key, v := range b.Vars() {
		if key.Shift != model.Night {
			continue
		}
		if byWorkerDay[key.Worker] == nil {
			byWorkerDay[key.Worker] = map[string][]cpmodel.BoolVar{}
		}
		dateStr := key.Date.Format("20060102")
		byWorkerDay[key.Worker][dateStr] = append(byWorkerDay[key.Worker][dateStr], v)
	}

	for worker, byDate := range byWorkerDay {
		dates := make([]time.Time, 0, len(byDate))
		for dateStr := range byDate {
			d, err := time.Parse("20060102", dateStr)
			if err != nil {
				continue
			}
			dates = append(dates, d)
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		indicators := map[string]cpmodel.BoolVar{}
		for _, d := range dates {
			dateStr := d.Format("20060102")
			indicators[dateStr] = indicatorOr(b, fmt.Sprintf("s1_night_%s_%s", worker, dateStr), byDate[dateStr])
		}

		for i := 0; i < len(dates); i++ {
			for j := i + 1; j < len(dates); j++ {
				delta := int(dates[j].Sub(dates[i]).Hours() / 24)
				weight := float64(window-delta) * baseWeight
				if weight <= 0 {
					continue
				}
				d1, d2 := dates[i].Format("20060102"), dates[j].Format("20060102")
				z := andVar(b, fmt.Sprintf("s1_pair_%s_%s_%s", worker, d1, d2), indicators[d1], indicators[d2])
				l.Add(config.RuleS1NightSpacingPairs, weight, ledger.BoolTerm(z), map[string]string{
					"worker": worker,
					"d1":     d1,
					"d2":     d2,
					"delta":  fmt.Sprintf("%d", delta),
				})
			}
		}
	}
	return nil
}
