// Package config provides the roster engine's configuration.
package config

import (
	"os"
	"strconv"

	rosterrors "github.com/paiban/roster/pkg/errors"
)

// Default soft-rule weights, taken verbatim from spec.md's §4.3 per-rule defaults.
const (
	DefaultS1NightSpacingPairsWeight = 5.0
	DefaultS2NightRemoteDayPMWeight  = 3.0
	DefaultS3NightDeviationWeight    = 2.0
	DefaultS4WeekdayBalanceWeight    = 1.0
	DefaultS5NoDutyAfterNightWeight  = 4.0
	DefaultS6DesiredWeight           = 8.0
	DefaultS7AvailableWeight         = 1.0
)

// Rule names, used as both Weights and EnabledRules keys. These match §4.3's rule roster
// one-for-one; hard rules (H1-H7) never consult Weights but can still be toggled through
// EnabledRules.
const (
	RuleH1OnePersonPerCoveragePoint  = "h1_one_person_per_coverage_point"
	RuleH2NoOverlapSameTime          = "h2_no_overlap_same_time"
	RuleH3RespectForbiddenPrefs      = "h3_respect_forbidden_preferences"
	RuleH4PerWorkerPerHospitalCap    = "h4_per_worker_per_hospital_cap"
	RuleH5NightSpacingMinimum        = "h5_night_spacing_minimum"
	RuleH6ForbidRemoteAfterNight     = "h6_forbid_remote_after_night"
	RuleH7UnivHolidayLastNightSpec   = "h7_university_holiday_last_night_needs_specialist"
	RuleS1NightSpacingPairs          = "s1_night_spacing_pairs"
	RuleS2NightPlusRemoteDayPM       = "s2_avoid_night_plus_remote_daypm_same_day"
	RuleS3NightDeviationBand         = "s3_night_deviation_band"
	RuleS4WeekdayBalanceNonNight     = "s4_weekday_balance_non_night"
	RuleS5NoDutyAfterNight           = "s5_no_duty_after_night"
	RuleS6RespectDesiredPreferences  = "s6_respect_desired_preferences"
	RuleS7RespectAvailablePrefs      = "s7_respect_available_preferences"
)

// AllRuleNames lists every rule §4.3 names, hard rules first, in registration order.
var AllRuleNames = []string{
	RuleH1OnePersonPerCoveragePoint,
	RuleH2NoOverlapSameTime,
	RuleH3RespectForbiddenPrefs,
	RuleH4PerWorkerPerHospitalCap,
	RuleH5NightSpacingMinimum,
	RuleH6ForbidRemoteAfterNight,
	RuleH7UnivHolidayLastNightSpec,
	RuleS1NightSpacingPairs,
	RuleS2NightPlusRemoteDayPM,
	RuleS3NightDeviationBand,
	RuleS4WeekdayBalanceNonNight,
	RuleS5NoDutyAfterNight,
	RuleS6RespectDesiredPreferences,
	RuleS7RespectAvailablePrefs,
}

// Config holds the tunables the rule registry and solver driver need for one solve session.
type Config struct {
	// MinNightGap is the hard minimum number of days between two Night shifts for the same
	// worker (H5's rolling-window size). Must be >= 1.
	MinNightGap int
	// SoftNightWindow is the distance (in days) beyond which S1 stops penalizing Night
	// proximity. Must be >= MinNightGap.
	SoftNightWindow int
	// Weights maps a soft rule name (see the RuleS* constants) to its penalty coefficient.
	// Absent entries fall back to the rule's own spec.md default.
	Weights map[string]float64
	// EnabledRules maps a rule name to whether it should be registered for this session.
	// Absent entries default to enabled.
	EnabledRules map[string]bool
	// SolverTimeLimitSeconds, when set, caps how long the CP-SAT driver may search before
	// returning its best solution so far. Must be > 0 when set; nil means no limit.
	SolverTimeLimitSeconds *float64
}

// Default returns the configuration used when no environment overrides are present.
func Default() *Config {
	return &Config{
		MinNightGap:     2,
		SoftNightWindow: 7,
		Weights: map[string]float64{
			RuleS1NightSpacingPairs:         DefaultS1NightSpacingPairsWeight,
			RuleS2NightPlusRemoteDayPM:      DefaultS2NightRemoteDayPMWeight,
			RuleS3NightDeviationBand:        DefaultS3NightDeviationWeight,
			RuleS4WeekdayBalanceNonNight:    DefaultS4WeekdayBalanceWeight,
			RuleS5NoDutyAfterNight:          DefaultS5NoDutyAfterNightWeight,
			RuleS6RespectDesiredPreferences: DefaultS6DesiredWeight,
			RuleS7RespectAvailablePrefs:     DefaultS7AvailableWeight,
		},
		EnabledRules: map[string]bool{},
	}
}

// Load builds a Config from ROSTER_* environment variables layered over Default().
func Load() (*Config, error) {
	cfg := Default()
	cfg.MinNightGap = getEnvInt("ROSTER_MIN_NIGHT_GAP", cfg.MinNightGap)
	cfg.SoftNightWindow = getEnvInt("ROSTER_SOFT_NIGHT_WINDOW", cfg.SoftNightWindow)

	for key := range cfg.Weights {
		envKey := "ROSTER_WEIGHT_" + key
		if v, ok := getEnvFloatOK(envKey); ok {
			cfg.Weights[key] = v
		}
	}

	if v, ok := getEnvFloatOK("ROSTER_SOLVER_TIME_LIMIT_SECONDS"); ok {
		cfg.SolverTimeLimitSeconds = &v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports structural problems in the configuration as a CodeConfig error.
func (c *Config) Validate() error {
	if c.MinNightGap < 1 {
		return rosterrors.Config("min_night_gap must be >= 1").WithField("min_night_gap", c.MinNightGap)
	}
	if c.SoftNightWindow < c.MinNightGap {
		return rosterrors.Config("soft_night_window must be >= min_night_gap").
			WithField("soft_night_window", c.SoftNightWindow).
			WithField("min_night_gap", c.MinNightGap)
	}
	for k, w := range c.Weights {
		if w < 0 {
			return rosterrors.Config("rule weight must be >= 0").WithField("rule", k)
		}
	}
	if c.SolverTimeLimitSeconds != nil && *c.SolverTimeLimitSeconds <= 0 {
		return rosterrors.Config("solver_time_limit_seconds must be > 0 when set").
			WithField("solver_time_limit_seconds", *c.SolverTimeLimitSeconds)
	}
	return nil
}

// RuleEnabled reports whether the named rule should be registered, defaulting to true.
func (c *Config) RuleEnabled(name string) bool {
	if v, ok := c.EnabledRules[name]; ok {
		return v
	}
	return true
}

// Weight returns the configured weight for a soft rule, falling back to fallback if unset.
func (c *Config) Weight(name string, fallback float64) float64 {
	if v, ok := c.Weights[name]; ok {
		return v
	}
	return fallback
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloatOK(key string) (float64, bool) {
	value := os.Getenv(key)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
