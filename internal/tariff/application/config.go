package application

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	tariff "powerplan/internal/tariff/domain"
)

// PlanConfig holds the default current plan and optional named comparison
// plans. Loaded once at startup; rate edits during a session arrive through
// the API and never touch this.
type PlanConfig struct {
	Current     tariff.RatePlan   `yaml:"current"`
	Comparisons []tariff.RatePlan `yaml:"comparisons"`
}

// LoadPlanConfig loads plan config from yaml or env.
//
// Defaults mirror a typical single-rate residential offer. A YAML file named
// by PLAN_CONFIG overrides them wholesale; individual PLAN_* env vars
// override single fields on the current plan.
func LoadPlanConfig() (PlanConfig, error) {
	cfg := PlanConfig{
		Current: tariff.RatePlan{
			Name:                            "current",
			AnytimeRate:                     25.0,
			ControlledLoadRate:              18.0,
			SolarFeedInRate:                 8.0,
			SupplyDailyCharge:               1.20,
			ControlledLoadSupplyDailyCharge: 0.50,
		},
	}

	if path := os.Getenv("PLAN_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.Current.AnytimeRate = getenvFloatDefault("PLAN_ANYTIME_RATE", cfg.Current.AnytimeRate)
	cfg.Current.ControlledLoadRate = getenvFloatDefault("PLAN_CONTROLLED_LOAD_RATE", cfg.Current.ControlledLoadRate)
	cfg.Current.SolarFeedInRate = getenvFloatDefault("PLAN_SOLAR_FEED_IN_RATE", cfg.Current.SolarFeedInRate)
	cfg.Current.SupplyDailyCharge = getenvFloatDefault("PLAN_SUPPLY_DAILY_CHARGE", cfg.Current.SupplyDailyCharge)
	cfg.Current.ControlledLoadSupplyDailyCharge = getenvFloatDefault("PLAN_CONTROLLED_LOAD_SUPPLY_DAILY_CHARGE", cfg.Current.ControlledLoadSupplyDailyCharge)

	if cfg.Current.Name == "" {
		cfg.Current.Name = "current"
	}
	if err := cfg.Current.Validate(); err != nil {
		return cfg, fmt.Errorf("plan config: current: %w", err)
	}
	for i, plan := range cfg.Comparisons {
		if err := plan.Validate(); err != nil {
			return cfg, fmt.Errorf("plan config: comparison %d: %w", i, err)
		}
	}
	return cfg, nil
}

// ComparisonByName finds a configured comparison plan.
func (c PlanConfig) ComparisonByName(name string) (tariff.RatePlan, bool) {
	for _, plan := range c.Comparisons {
		if plan.Name == name {
			return plan, true
		}
	}
	return tariff.RatePlan{}, false
}

func getenvFloatDefault(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
