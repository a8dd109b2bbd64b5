package analysis

import (
	"time"

	readings "powerplan/internal/readings/domain"
)

// UsageInterval is the usage derived from one consecutive pair of
// same-type readings.
type UsageInterval struct {
	Start    time.Time            `json:"start"`
	End      time.Time            `json:"end"`
	Type     readings.ReadingType `json:"type"`
	Days     int                  `json:"days"`
	DeltaKWh float64              `json:"delta_kwh"`
	DailyKWh float64              `json:"daily_kwh"`
	// Clamped marks an interval whose register decreased (meter reset);
	// its delta is held at zero instead of going negative.
	Clamped bool `json:"clamped,omitempty"`
}

// WarningReason classifies a recoverable data problem.
type WarningReason string

const (
	// WarnMeterReset flags a decreasing register pair; usage for the
	// interval is clamped to zero.
	WarnMeterReset WarningReason = "meter_reset"
	// WarnNonPositiveSpan flags duplicate or out-of-order dates; the
	// interval is excluded from output.
	WarnNonPositiveSpan WarningReason = "non_positive_span"
)

// Warning reports a recoverable problem found while deriving intervals.
type Warning struct {
	Type   readings.ReadingType `json:"type"`
	Start  time.Time            `json:"start"`
	End    time.Time            `json:"end"`
	Reason WarningReason        `json:"reason"`
}

// ComputeIntervals derives usage intervals for one reading type.
//
// The subset of readings matching the type is walked in date order. A pair
// with a non-positive day span is skipped with a warning. A decreasing
// register (meter reset or data error) yields a zero-delta interval with a
// warning rather than negative usage. Warnings never abort the computation.
func ComputeIntervals(set []readings.Reading, t readings.ReadingType) ([]UsageInterval, []Warning) {
	subset := readings.OfType(set, t)

	var intervals []UsageInterval
	var warnings []Warning
	for i := 1; i < len(subset); i++ {
		prev, curr := subset[i-1], subset[i]
		days := daysBetween(prev.Date, curr.Date)
		if days <= 0 {
			warnings = append(warnings, Warning{Type: t, Start: prev.Date, End: curr.Date, Reason: WarnNonPositiveSpan})
			continue
		}

		delta := curr.Value - prev.Value
		clamped := false
		if delta < 0 {
			delta = 0
			clamped = true
			warnings = append(warnings, Warning{Type: t, Start: prev.Date, End: curr.Date, Reason: WarnMeterReset})
		}

		intervals = append(intervals, UsageInterval{
			Start:    prev.Date,
			End:      curr.Date,
			Type:     t,
			Days:     days,
			DeltaKWh: delta,
			DailyKWh: delta / float64(days),
			Clamped:  clamped,
		})
	}
	return intervals, warnings
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Hours() / 24)
}
