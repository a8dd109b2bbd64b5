package application

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPlanConfig_Defaults(t *testing.T) {
	t.Setenv("PLAN_CONFIG", "")
	t.Setenv("PLAN_ANYTIME_RATE", "")

	cfg, err := LoadPlanConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Current.AnytimeRate != 25.0 {
		t.Fatalf("unexpected default anytime rate: %v", cfg.Current.AnytimeRate)
	}
	if cfg.Current.SupplyDailyCharge != 1.20 {
		t.Fatalf("unexpected default supply charge: %v", cfg.Current.SupplyDailyCharge)
	}
	if cfg.Current.Name != "current" {
		t.Fatalf("unexpected default name: %q", cfg.Current.Name)
	}
}

func TestLoadPlanConfig_YAMLAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	content := `
current:
  name: acme-saver
  anytime_rate: 23.0
  controlled_load_rate: 17.0
  solar_feed_in_rate: 10.0
  supply_daily_charge: 1.10
  controlled_load_supply_daily_charge: 0.45
comparisons:
  - name: acme-green
    anytime_rate: 28.0
    solar_feed_in_rate: 12.0
    supply_daily_charge: 0.95
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PLAN_CONFIG", path)
	t.Setenv("PLAN_ANYTIME_RATE", "24.5")

	cfg, err := LoadPlanConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Current.Name != "acme-saver" {
		t.Fatalf("yaml name not applied: %q", cfg.Current.Name)
	}
	// Env wins over file for single fields.
	if cfg.Current.AnytimeRate != 24.5 {
		t.Fatalf("env override not applied: %v", cfg.Current.AnytimeRate)
	}
	if cfg.Current.SupplyDailyCharge != 1.10 {
		t.Fatalf("yaml supply charge not applied: %v", cfg.Current.SupplyDailyCharge)
	}

	plan, ok := cfg.ComparisonByName("acme-green")
	if !ok {
		t.Fatalf("comparison plan missing")
	}
	if plan.SolarFeedInRate != 12.0 {
		t.Fatalf("unexpected comparison rate: %v", plan.SolarFeedInRate)
	}
}

func TestLoadPlanConfig_RejectsNegativeRates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.yaml")
	if err := os.WriteFile(path, []byte("current:\n  anytime_rate: -3\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PLAN_CONFIG", path)
	t.Setenv("PLAN_ANYTIME_RATE", "")

	if _, err := LoadPlanConfig(); err == nil {
		t.Fatalf("expected validation error")
	}
}
