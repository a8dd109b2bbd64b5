package tariff

import "fmt"

// RatePlan is one retail electricity offer. Energy rates are in cents per
// kWh as printed on plan fact sheets; supply charges are in dollars per day.
type RatePlan struct {
	Name                            string  `json:"name,omitempty" yaml:"name"`
	AnytimeRate                     float64 `json:"anytime_rate" yaml:"anytime_rate"`
	ControlledLoadRate              float64 `json:"controlled_load_rate" yaml:"controlled_load_rate"`
	SolarFeedInRate                 float64 `json:"solar_feed_in_rate" yaml:"solar_feed_in_rate"`
	SupplyDailyCharge               float64 `json:"supply_daily_charge" yaml:"supply_daily_charge"`
	ControlledLoadSupplyDailyCharge float64 `json:"controlled_load_supply_daily_charge" yaml:"controlled_load_supply_daily_charge"`
}

// Validate rejects negative fields. Zero is allowed everywhere; a plan
// without controlled load or solar simply prices those at zero.
func (p RatePlan) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"anytime_rate", p.AnytimeRate},
		{"controlled_load_rate", p.ControlledLoadRate},
		{"solar_feed_in_rate", p.SolarFeedInRate},
		{"supply_daily_charge", p.SupplyDailyCharge},
		{"controlled_load_supply_daily_charge", p.ControlledLoadSupplyDailyCharge},
	}
	for _, field := range fields {
		if field.value < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeRate, field.name)
		}
	}
	return nil
}
