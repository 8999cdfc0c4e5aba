package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// forbidRemoteAfterNight is grounded on c06_forbid_remote_after_night.py: a worker who takes
// a Night duty anywhere may not take a Day or AM duty at a remote hospital the next day.
type forbidRemoteAfterNight struct{}

func (forbidRemoteAfterNight) Name() string { return config.RuleH6ForbidRemoteAfterNight }
func (forbidRemoteAfterNight) Summary() string {
	return "forbid remote day/AM duty the day after a Night"
}

func (forbidRemoteAfterNight) Apply(b *solver.Builder, _ *ledger.Ledger, ctx *Context) error {
	remoteHospitals := map[string]bool{}
	for _, h := range ctx.Hospitals {
		if h.IsRemote {
			remoteHospitals[h.Name] = true
		}
	}
	if len(remoteHospitals) == 0 || len(ctx.Days) < 2 {
		return nil
	}

	nightByWD := map[workerDate][]cpmodel.BoolVar{}
	remoteNextByWD := map[workerDate][]cpmodel.BoolVar{}
	workersOnNight := map[string]map[string]bool{} // date -> worker -> true
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
		if remoteHospitals[key.Hospital] && (key.Shift == model.Day || key.Shift == model.AM) {
			remoteNextByWD[k] = append(remoteNextByWD[k], v)
		}
	}

	for i := 0; i+1 < len(ctx.Days); i++ {
		today := ctx.Days[i].Time.Format("20060102")
		tomorrow := ctx.Days[i+1].Time.Format("20060102")
		for worker := range workersOnNight[today] {
			nightVars := nightByWD[workerDate{worker: worker, date: today}]
			remoteVars := remoteNextByWD[workerDate{worker: worker, date: tomorrow}]
			if len(nightVars) == 0 || len(remoteVars) == 0 {
				continue
			}
			sum := cpmodel.NewLinearExpr()
			for _, v := range nightVars {
				sum.AddTerm(v, 1)
			}
			for _, v := range remoteVars {
				sum.AddTerm(v, 1)
			}
			b.Model().AddLessOrEqual(sum, cpmodel.NewConstant(1))
		}
	}
	return nil
}
