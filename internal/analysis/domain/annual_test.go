package analysis

import (
	"errors"
	"testing"
	"time"

	readings "powerplan/internal/readings/domain"
)

func TestAnnualizeUsage_QuarterExtrapolatesToYear(t *testing.T) {
	set := []readings.Reading{
		{Date: date(2025, time.January, 1), Type: readings.TypeAnytime, Value: 1000},
		{Date: date(2025, time.April, 1), Type: readings.TypeAnytime, Value: 1900},
	}
	intervals, _ := ComputeIntervals(set, readings.TypeAnytime)

	annual, err := AnnualizeUsage(intervals)
	if err != nil {
		t.Fatalf("annualize: %v", err)
	}
	if annual != 3650 {
		t.Fatalf("expected 3650 kWh/year, got %v", annual)
	}
}

func TestAnnualizeUsage_FullYearIsIdentity(t *testing.T) {
	// A single 365-day interval must come back unchanged.
	set := []readings.Reading{
		{Date: date(2025, time.January, 1), Type: readings.TypeAnytime, Value: 2000},
		{Date: date(2026, time.January, 1), Type: readings.TypeAnytime, Value: 6234},
	}
	intervals, _ := ComputeIntervals(set, readings.TypeAnytime)
	if intervals[0].Days != 365 {
		t.Fatalf("expected 365-day interval, got %d", intervals[0].Days)
	}

	annual, err := AnnualizeUsage(intervals)
	if err != nil {
		t.Fatalf("annualize: %v", err)
	}
	if annual != 4234 {
		t.Fatalf("expected 4234 kWh/year, got %v", annual)
	}
}

func TestAnnualizeUsage_SingleReadingIsInsufficient(t *testing.T) {
	set := []readings.Reading{
		{Date: date(2025, time.January, 1), Type: readings.TypeAnytime, Value: 1000},
	}
	intervals, _ := ComputeIntervals(set, readings.TypeAnytime)

	_, err := AnnualizeUsage(intervals)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected insufficient data, got %v", err)
	}
}

func TestAnnualizeUsage_ZeroSpanIsInsufficient(t *testing.T) {
	set := []readings.Reading{
		{Date: date(2025, time.January, 1), Type: readings.TypeAnytime, Value: 1000},
		{Date: date(2025, time.January, 1), Type: readings.TypeAnytime, Value: 1010},
	}
	intervals, _ := ComputeIntervals(set, readings.TypeAnytime)

	_, err := AnnualizeUsage(intervals)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected insufficient data, got %v", err)
	}
}

func TestComputeDailyStats(t *testing.T) {
	intervals := []UsageInterval{
		{Days: 10, DeltaKWh: 100, DailyKWh: 10},
		{Days: 20, DeltaKWh: 100, DailyKWh: 5},
	}

	stats, err := ComputeDailyStats(intervals)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Days != 30 {
		t.Fatalf("expected 30 days, got %d", stats.Days)
	}
	// Day-weighted: 200 kWh over 30 days.
	if stats.AvgDailyKWh < 6.66 || stats.AvgDailyKWh > 6.67 {
		t.Fatalf("unexpected average: %v", stats.AvgDailyKWh)
	}
	if stats.MaxDailyKWh != 10 || stats.MinDailyKWh != 5 {
		t.Fatalf("unexpected extremes: %+v", stats)
	}
}

func TestComputeDailyStats_Empty(t *testing.T) {
	_, err := ComputeDailyStats(nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected insufficient data, got %v", err)
	}
}
