package analysis

import (
	"sort"
	"time"
)

// MonthlyUsage is the usage attributed to one calendar month for one type.
// Each interval's daily average is spread across the days it covers, so a
// billing period straddling a month boundary contributes to both months.
type MonthlyUsage struct {
	Month time.Time `json:"month"`
	KWh   float64   `json:"kwh"`
	Days  int       `json:"days"`
}

// RollupMonthly distributes interval usage day by day and sums it per
// calendar month. The end date of each interval is excluded, matching the
// convention that a reading observes usage up to its date.
func RollupMonthly(intervals []UsageInterval) []MonthlyUsage {
	type bucket struct {
		kwh  float64
		days int
	}
	byMonth := make(map[time.Time]*bucket)
	for _, interval := range intervals {
		for day := 0; day < interval.Days; day++ {
			date := interval.Start.AddDate(0, 0, day)
			month := monthStart(date)
			entry := byMonth[month]
			if entry == nil {
				entry = &bucket{}
				byMonth[month] = entry
			}
			entry.kwh += interval.DailyKWh
			entry.days++
		}
	}

	result := make([]MonthlyUsage, 0, len(byMonth))
	for month, entry := range byMonth {
		result = append(result, MonthlyUsage{Month: month, KWh: entry.kwh, Days: entry.days})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month.Before(result[j].Month)
	})
	return result
}

func monthStart(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}
