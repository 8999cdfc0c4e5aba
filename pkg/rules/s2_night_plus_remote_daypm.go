package rules

import (
	"fmt"

	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// nightPlusRemoteDayPM is grounded on s02_soft_no_night_remote_daypm_same_day.py: penalize a
// worker holding both a Night duty and a remote hospital's Day or PM duty on the same day.
type nightPlusRemoteDayPM struct{}

func (nightPlusRemoteDayPM) Name() string { return config.RuleS2NightPlusRemoteDayPM }
func (nightPlusRemoteDayPM) Summary() string {
	return "avoid combining a Night with a remote Day/PM on the same day"
}

func (nightPlusRemoteDayPM) Apply(b *solver.Builder, l *ledger.Ledger, ctx *Context) error {
	remoteHospitals := map[string]bool{}
	for _, h := range ctx.Hospitals {
		if h.IsRemote {
			remoteHospitals[h.Name] = true
		}
	}
	if len(remoteHospitals) == 0 {
		return nil
	}
	weight := ctx.Config.Weight(config.RuleS2NightPlusRemoteDayPM, config.DefaultS2NightRemoteDayPMWeight)

	nightByWD := map[workerDate][]cpmodel.BoolVar{}
	remoteDayPMByWD := map[workerDate][]cpmodel.BoolVar{}
	for key, v := range b.Vars() {
		k := workerDate{worker: key.Worker, date: key.Date.Format("20060102")}
		if key.Shift == model.Night {
			nightByWD[k] = append(nightByWD[k], v)
		}
		if remoteHospitals[key.Hospital] && (key.Shift == model.Day || key.Shift == model.PM) {
			remoteDayPMByWD[k] = append(remoteDayPMByWD[k], v)
		}
	}

	for k, nightVars := range nightByWD {
		remoteVars, ok := remoteDayPMByWD[k]
		if !ok || len(remoteVars) == 0 {
			continue
		}
		yNight := indicatorOr(b, fmt.Sprintf("s2_night_%s_%s", k.worker, k.date), nightVars)
		yRemote := indicatorOr(b, fmt.Sprintf("s2_remote_%s_%s", k.worker, k.date), remoteVars)
		z := andVar(b, fmt.Sprintf("s2_conflict_%s_%s", k.worker, k.date), yNight, yRemote)
		l.Add(config.RuleS2NightPlusRemoteDayPM, weight, ledger.BoolTerm(z), map[string]string{
			"worker": k.worker,
			"date":   k.date,
		})
	}
	return nil
}
