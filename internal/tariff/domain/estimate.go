package tariff

const (
	daysPerYear    = 365
	centsPerDollar = 100
	monthsPerYear  = 12
)

// AnnualUsage is extrapolated yearly usage per register, in kWh.
// A register with no data contributes zero, never an error.
type AnnualUsage struct {
	AnytimeKWh        float64 `json:"anytime_kwh"`
	ControlledLoadKWh float64 `json:"controlled_load_kwh"`
	SolarKWh          float64 `json:"solar_kwh"`
	// DaysInData is the measured span behind the extrapolation.
	DaysInData int `json:"days_in_data"`
}

// AnnualEstimate is the projected yearly cost of one plan, in dollars.
type AnnualEstimate struct {
	Plan  RatePlan    `json:"plan"`
	Usage AnnualUsage `json:"usage"`

	AnytimeCost        float64 `json:"anytime_cost"`
	ControlledLoadCost float64 `json:"controlled_load_cost"`
	SupplyCost         float64 `json:"supply_cost"`
	SolarCredit        float64 `json:"solar_credit"`
	TotalCost          float64 `json:"total_cost"`
}

// EstimateAnnualCost prices extrapolated annual usage under a plan.
// Energy rates are cents/kWh; multiplying before the cents conversion keeps
// round-number scenarios exact.
func EstimateAnnualCost(usage AnnualUsage, plan RatePlan) (AnnualEstimate, error) {
	if err := plan.Validate(); err != nil {
		return AnnualEstimate{}, err
	}

	estimate := AnnualEstimate{
		Plan:               plan,
		Usage:              usage,
		AnytimeCost:        usage.AnytimeKWh * plan.AnytimeRate / centsPerDollar,
		ControlledLoadCost: usage.ControlledLoadKWh * plan.ControlledLoadRate / centsPerDollar,
		SupplyCost:         (plan.SupplyDailyCharge + plan.ControlledLoadSupplyDailyCharge) * daysPerYear,
		SolarCredit:        usage.SolarKWh * plan.SolarFeedInRate / centsPerDollar,
	}
	estimate.TotalCost = estimate.AnytimeCost + estimate.ControlledLoadCost + estimate.SupplyCost - estimate.SolarCredit
	return estimate, nil
}

// Savings is the yearly difference between two plan estimates.
// Positive means the comparison plan is cheaper.
type Savings struct {
	Annual  float64 `json:"annual"`
	Monthly float64 `json:"monthly"`
	Percent float64 `json:"percent"`
}

// ComparePlans returns the savings from switching plan a to plan b.
func ComparePlans(a, b AnnualEstimate) Savings {
	annual := a.TotalCost - b.TotalCost
	savings := Savings{
		Annual:  annual,
		Monthly: annual / monthsPerYear,
	}
	if a.TotalCost != 0 {
		savings.Percent = annual / a.TotalCost * 100
	}
	return savings
}

// MonthlyCost prices one month of measured usage under a plan. days is the
// number of days with data in the month; supply charges accrue per day.
func MonthlyCost(plan RatePlan, anytimeKWh, controlledLoadKWh, solarKWh float64, days int) float64 {
	energy := anytimeKWh*plan.AnytimeRate/centsPerDollar +
		controlledLoadKWh*plan.ControlledLoadRate/centsPerDollar -
		solarKWh*plan.SolarFeedInRate/centsPerDollar
	supply := (plan.SupplyDailyCharge + plan.ControlledLoadSupplyDailyCharge) * float64(days)
	return energy + supply
}
