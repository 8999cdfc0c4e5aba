package rules

import "github.com/paiban/roster/internal/config"

// DefaultRegistry returns every rule spec.md names, hard rules first, filtered to those
// cfg.RuleEnabled reports as enabled. Registration order matches config.AllRuleNames, so the
// resulting Ledger's entries are appended in that order; ledger.SourcesByTotal, not this
// order, decides how per-source subtotals are ranked.
func DefaultRegistry(cfg *config.Config) []Rule {
	all := []Rule{
		onePersonPerCoveragePoint{},
		noOverlapSameTime{},
		respectForbiddenPreferences{},
		perWorkerPerHospitalCap{},
		nightSpacingMinimum{},
		forbidRemoteAfterNight{},
		universityHolidayLastNightSpecialist{},
		nightSpacingPairs{},
		nightPlusRemoteDayPM{},
		nightDeviationBand{},
		weekdayBalanceNonNight{},
		noDutyAfterNight{},
		respectDesiredPreferences{},
		respectAvailablePreferences{},
	}

	enabled := make([]Rule, 0, len(all))
	for _, r := range all {
		if cfg.RuleEnabled(r.Name()) {
			enabled = append(enabled, r)
		}
	}
	return enabled
}
