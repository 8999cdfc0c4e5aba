package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}
}

func TestValidateRejectsBadMinNightGap(t *testing.T) {
	cfg := Default()
	cfg.MinNightGap = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for min_night_gap=0")
	}
}

func TestValidateRejectsNarrowSoftWindow(t *testing.T) {
	cfg := Default()
	cfg.MinNightGap = 3
	cfg.SoftNightWindow = 2
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error when soft_night_window < min_night_gap")
	}
}

func TestValidateRejectsNegativeWeight(t *testing.T) {
	cfg := Default()
	cfg.Weights[RuleS1NightSpacingPairs] = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for negative weight")
	}
}

func TestRuleEnabledDefaultsToTrue(t *testing.T) {
	cfg := Default()
	if !cfg.RuleEnabled(RuleH1OnePersonPerCoveragePoint) {
		t.Fatalf("rules should default to enabled")
	}
	cfg.EnabledRules[RuleH1OnePersonPerCoveragePoint] = false
	if cfg.RuleEnabled(RuleH1OnePersonPerCoveragePoint) {
		t.Fatalf("explicit false should disable the rule")
	}
}

func TestWeightFallback(t *testing.T) {
	cfg := Default()
	delete(cfg.Weights, RuleS1NightSpacingPairs)
	if got := cfg.Weight(RuleS1NightSpacingPairs, 42); got != 42 {
		t.Fatalf("expected fallback weight 42, got %v", got)
	}
}
