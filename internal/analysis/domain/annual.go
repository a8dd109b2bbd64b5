package analysis

// DaysPerYear is the extrapolation horizon for annual projections.
const DaysPerYear = 365

// AnnualizeUsage extrapolates total interval usage to a 365-day year.
//
// This is a single linear extrapolation: total delta over total covered
// days, scaled to a year. ErrInsufficientData is returned when no interval
// exists (fewer than two readings of the type) or the covered span is zero.
func AnnualizeUsage(intervals []UsageInterval) (float64, error) {
	totalDays := 0
	totalDelta := 0.0
	for _, interval := range intervals {
		totalDays += interval.Days
		totalDelta += interval.DeltaKWh
	}
	if totalDays <= 0 {
		return 0, ErrInsufficientData
	}
	return totalDelta / float64(totalDays) * DaysPerYear, nil
}

// DailyStats summarizes daily usage rates across intervals of one type.
type DailyStats struct {
	AvgDailyKWh float64 `json:"avg_daily_kwh"`
	MaxDailyKWh float64 `json:"max_daily_kwh"`
	MinDailyKWh float64 `json:"min_daily_kwh"`
	Days        int     `json:"days"`
}

// ComputeDailyStats derives the day-weighted average and the extreme daily
// rates across the intervals.
func ComputeDailyStats(intervals []UsageInterval) (DailyStats, error) {
	if len(intervals) == 0 {
		return DailyStats{}, ErrInsufficientData
	}

	stats := DailyStats{
		MaxDailyKWh: intervals[0].DailyKWh,
		MinDailyKWh: intervals[0].DailyKWh,
	}
	totalDelta := 0.0
	for _, interval := range intervals {
		stats.Days += interval.Days
		totalDelta += interval.DeltaKWh
		if interval.DailyKWh > stats.MaxDailyKWh {
			stats.MaxDailyKWh = interval.DailyKWh
		}
		if interval.DailyKWh < stats.MinDailyKWh {
			stats.MinDailyKWh = interval.DailyKWh
		}
	}
	if stats.Days <= 0 {
		return DailyStats{}, ErrInsufficientData
	}
	stats.AvgDailyKWh = totalDelta / float64(stats.Days)
	return stats, nil
}
