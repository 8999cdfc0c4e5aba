package rules

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// noDutyAfterNight is grounded on s05_soft_no_duty_after_night.py: penalize a worker taking
// any Day or AM duty (at any hospital, remote or not) the day after a Night.
type noDutyAfterNight struct{}

func (noDutyAfterNight) Name() string    { return config.RuleS5NoDutyAfterNight }
func (noDutyAfterNight) Summary() string { return "avoid scheduling duty the day after a Night" }

func (noDutyAfterNight) Apply(b *solver.Builder, l *ledger.Ledger, ctx *Context) error {
	weight := ctx.Config.Weight(config.RuleS5NoDutyAfterNight, config.DefaultS5NoDutyAfterNightWeight)
	if len(ctx.Days) < 2 {
		return nil
	}

	nightByWD := map[workerDate][]cpmodel.BoolVar{}
	dutyByWD := map[workerDate][]cpmodel.BoolVar{}
	workersOnNight := map[string]map[string]bool{}
	for key, v := range b.Vars() {
		dateStr := key.Date.Format("20060102")
		k := workerDate{worker: key.Worker, date: dateStr}
		if key.Shift == model.Night {
			nightByWD[k] = append(nightByWD[k], v)
			if workersOnNight[dateStr] == nil {
				workersOnNight[dateStr] = map[string]bool{}
			}
			workersOnNight[dateStr][key.Worker] = true
		}
		if key.Shift == model.Day || key.Shift == model.AM {
			dutyByWD[k] = append(dutyByWD[k], v)
		}
	}

	for i := 0; i+1 < len(ctx.Days); i++ {
		today := ctx.Days[i].Time.Format("20060102")
		tomorrow := ctx.Days[i+1].Time.Format("20060102")
		for worker := range workersOnNight[today] {
			nightVars := nightByWD[workerDate{worker: worker, date: today}]
			dutyVars := dutyByWD[workerDate{worker: worker, date: tomorrow}]
			if len(nightVars) == 0 || len(dutyVars) == 0 {
				continue
			}
			yNight := indicatorOr(b, fmt.Sprintf("s5_night_%s_%s", worker, today), nightVars)
			yDuty := indicatorOr(b, fmt.Sprintf("s5_duty_%s_%s", worker, tomorrow), dutyVars)
			z := andVar(b, fmt.Sprintf("s5_conflict_%s_%s", worker, today), yNight, yDuty)
			l.Add(config.RuleS5NoDutyAfterNight, weight, ledger.BoolTerm(z), map[string]string{
				"worker":     worker,
				"night_date": today,
				"next_date":  tomorrow,
			})
		}
	}
	return nil
}
