package rules

import (
	"github.com/google/or-tools/ortools/sat/go/cpmodel"

	"github.com/paiban/roster/internal/config"
	"github.com/paiban/roster/pkg/calendar"
	"github.com/paiban/roster/pkg/ledger"
	"github.com/paiban/roster/pkg/model"
	"github.com/paiban/roster/pkg/solver"
)

// minCandidateNights mirrors the original's min_candidate_nights=2: a worker with fewer
// candidate Night days than this at a hospital is excluded from that hospital's band target,
// since one or two forced nights would otherwise skew the average.
const minCandidateNights = 2

// nightDeviationBand is grounded on s03_night_deviation_band.py: per hospital, a worker's
// holiday-weighted Night count (weekday=1, holiday/weekend=2) should land within the band
// [floor(avg), floor(avg)+1] of the hospital's per-candidate average; deviation in either
// direction is penalized at the configured S3 weight.
type nightDeviationBand struct{}

func (nightDeviationBand) Name() string    { return config.RuleS3NightDeviationBand }
func (nightDeviationBand) Summary() string { return "keep Night load balanced across a hospital's candidates" }

func (nightDeviationBand) Apply(b *solver.Builder, l *ledger.Ledger, ctx *Context) error {
	weight := ctx.Config.Weight(config.RuleS3NightDeviationBand, config.DefaultS3NightDeviationWeight)

	dayWeight := map[string]int64{}
	for _, d := range ctx.Days {
		w := int64(1)
		if d.IsHolidayOrWeekend() {
			w = 2
		}
		dayWeight[d.Time.Format("20060102")] = w
	}

	type hw struct{ hospital, worker string }
	varsByHW := map[hw][]cpmodel.BoolVar{}
	weightByHW := map[hw][]int64{}
	nightDaysByHospital := map[string]map[string]bool{}

	for key, v := range b.Vars() {
		if key.Shift != model.Night {
			continue
		}
		k := hw{hospital: key.Hospital, worker: key.Worker}
		varsByHW[k] = append(varsByHW[k], v)
		dateStr := key.Date.Format("20060102")
		weightByHW[k] = append(weightByHW[k], dayWeight[dateStr])
		if nightDaysByHospital[key.Hospital] == nil {
			nightDaysByHospital[key.Hospital] = map[string]bool{}
		}
		nightDaysByHospital[key.Hospital][dateStr] = true
	}

	for _, hosp := range ctx.Hospitals {
		var candidates []string
		for k := range varsByHW {
			if k.hospital == hosp.Name && len(varsByHW[k]) >= minCandidateNights {
				candidates = append(candidates, k.worker)
			}
		}
		kh := len(candidates)
		days := nightDaysByHospital[hosp.Name]
		if kh <= 1 || len(days) == 0 {
			continue
		}

		var th int64
		for dateStr := range days {
			th += dayWeight[dateStr]
		}
		ah := th / int64(kh)
		lh := ah
		uh := ah + 1

		upperBound := int64(len(ctx.Days)) * 2

		for _, worker := range candidates {
			k := hw{hospital: hosp.Name, worker: worker}

			over := nonNegativeSlack(b, upperBound)
			exprOver := cpmodel.NewLinearExpr()
			for i, v := range varsByHW[k] {
				exprOver.AddTerm(v, weightByHW[k][i])
			}
			exprOver.AddTerm(over, -1)
			b.Model().AddLessOrEqual(exprOver, cpmodel.NewConstant(uh))

			under := nonNegativeSlack(b, upperBound)
			exprUnder := cpmodel.NewLinearExpr()
			exprUnder.AddTerm(under, 1)
			for i, v := range varsByHW[k] {
				exprUnder.AddTerm(v, weightByHW[k][i])
			}
			b.Model().AddLessOrEqual(cpmodel.NewConstant(lh), exprUnder)

			l.Add(config.RuleS3NightDeviationBand, weight, ledger.IntTerm(over), map[string]string{
				"hospital": hosp.Name, "worker": worker, "kind": "over",
			})
			l.Add(config.RuleS3NightDeviationBand, weight, ledger.IntTerm(under), map[string]string{
				"hospital": hosp.Name, "worker": worker, "kind": "under",
			})
		}
	}
	return nil
}
