package application

import (
	"errors"
	"sort"
	"time"

	analysis "powerplan/internal/analysis/domain"
	readings "powerplan/internal/readings/domain"
	tariff "powerplan/internal/tariff/domain"
)

// AnalysisService runs the usage pipeline over one session's immutable
// reading set. It holds no state: every call recomputes from its inputs,
// so a rate edit or re-upload can never observe stale derived data.
type AnalysisService struct{}

// NewAnalysisService constructs the service.
func NewAnalysisService() *AnalysisService {
	return &AnalysisService{}
}

// IntervalsByType derives usage intervals for every known reading type.
func (s *AnalysisService) IntervalsByType(set []readings.Reading) (map[readings.ReadingType][]analysis.UsageInterval, []analysis.Warning) {
	intervals := make(map[readings.ReadingType][]analysis.UsageInterval)
	var warnings []analysis.Warning
	for _, t := range readings.AllTypes() {
		typed, typedWarnings := analysis.ComputeIntervals(set, t)
		if len(typed) > 0 {
			intervals[t] = typed
		}
		warnings = append(warnings, typedWarnings...)
	}
	return intervals, warnings
}

// AnnualUsage extrapolates yearly usage per register.
//
// A register with too little data contributes zero; only when no register
// can be projected at all does the call fail with ErrInsufficientData.
func (s *AnalysisService) AnnualUsage(set []readings.Reading) (tariff.AnnualUsage, []analysis.Warning, error) {
	intervals, warnings := s.IntervalsByType(set)

	var usage tariff.AnnualUsage
	projected := false
	for t, typed := range intervals {
		annual, err := analysis.AnnualizeUsage(typed)
		if errors.Is(err, analysis.ErrInsufficientData) {
			continue
		}
		if err != nil {
			return tariff.AnnualUsage{}, warnings, err
		}
		projected = true
		switch t {
		case readings.TypeAnytime:
			usage.AnytimeKWh = annual
		case readings.TypeControlledLoad:
			usage.ControlledLoadKWh = annual
		case readings.TypeSolar:
			usage.SolarKWh = annual
		}
		if days := totalDays(typed); days > usage.DaysInData {
			usage.DaysInData = days
		}
	}
	if !projected {
		return tariff.AnnualUsage{}, warnings, analysis.ErrInsufficientData
	}
	return usage, warnings, nil
}

// Estimate projects the annual cost of the reading set under a plan.
func (s *AnalysisService) Estimate(set []readings.Reading, plan tariff.RatePlan) (tariff.AnnualEstimate, []analysis.Warning, error) {
	usage, warnings, err := s.AnnualUsage(set)
	if err != nil {
		return tariff.AnnualEstimate{}, warnings, err
	}
	estimate, err := tariff.EstimateAnnualCost(usage, plan)
	if err != nil {
		return tariff.AnnualEstimate{}, warnings, err
	}
	return estimate, warnings, nil
}

// Comparison is a side-by-side estimate of two plans over the same usage.
type Comparison struct {
	Current    tariff.AnnualEstimate `json:"current"`
	Comparison tariff.AnnualEstimate `json:"comparison"`
	Savings    tariff.Savings        `json:"savings"`
}

// Compare estimates both plans and reports the savings of switching.
func (s *AnalysisService) Compare(set []readings.Reading, current, comparison tariff.RatePlan) (Comparison, []analysis.Warning, error) {
	usage, warnings, err := s.AnnualUsage(set)
	if err != nil {
		return Comparison{}, warnings, err
	}
	currentEstimate, err := tariff.EstimateAnnualCost(usage, current)
	if err != nil {
		return Comparison{}, warnings, err
	}
	comparisonEstimate, err := tariff.EstimateAnnualCost(usage, comparison)
	if err != nil {
		return Comparison{}, warnings, err
	}
	return Comparison{
		Current:    currentEstimate,
		Comparison: comparisonEstimate,
		Savings:    tariff.ComparePlans(currentEstimate, comparisonEstimate),
	}, warnings, nil
}

// MonthRow is one calendar month of distributed usage, priced under a plan.
type MonthRow struct {
	Month             time.Time `json:"month"`
	AnytimeKWh        float64   `json:"anytime_kwh"`
	ControlledLoadKWh float64   `json:"controlled_load_kwh"`
	SolarKWh          float64   `json:"solar_kwh"`
	Days              int       `json:"days"`
	Cost              float64   `json:"cost"`
}

// MonthlyBreakdown rolls usage up per calendar month across all registers
// and prices each month under the plan. Days counts the days of the month
// covered by data; supply charges accrue only for those.
func (s *AnalysisService) MonthlyBreakdown(set []readings.Reading, plan tariff.RatePlan) ([]MonthRow, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	intervals, _ := s.IntervalsByType(set)

	byMonth := make(map[time.Time]*MonthRow)
	for t, typed := range intervals {
		for _, monthly := range analysis.RollupMonthly(typed) {
			row := byMonth[monthly.Month]
			if row == nil {
				row = &MonthRow{Month: monthly.Month}
				byMonth[monthly.Month] = row
			}
			switch t {
			case readings.TypeAnytime:
				row.AnytimeKWh = monthly.KWh
			case readings.TypeControlledLoad:
				row.ControlledLoadKWh = monthly.KWh
			case readings.TypeSolar:
				row.SolarKWh = monthly.KWh
			}
			if monthly.Days > row.Days {
				row.Days = monthly.Days
			}
		}
	}

	result := make([]MonthRow, 0, len(byMonth))
	for _, row := range byMonth {
		row.Cost = tariff.MonthlyCost(plan, row.AnytimeKWh, row.ControlledLoadKWh, row.SolarKWh, row.Days)
		result = append(result, *row)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})
	return result, nil
}

// DailyStatsByType summarizes daily usage rates per register.
func (s *AnalysisService) DailyStatsByType(set []readings.Reading) map[readings.ReadingType]analysis.DailyStats {
	intervals, _ := s.IntervalsByType(set)

	result := make(map[readings.ReadingType]analysis.DailyStats, len(intervals))
	for t, typed := range intervals {
		stats, err := analysis.ComputeDailyStats(typed)
		if err != nil {
			continue
		}
		result[t] = stats
	}
	return result
}

func totalDays(intervals []analysis.UsageInterval) int {
	days := 0
	for _, interval := range intervals {
		days += interval.Days
	}
	return days
}
