package analysis

import (
	"testing"
	"time"
)

func TestRollupMonthly_SplitsAcrossBoundary(t *testing.T) {
	// 20 days at 2 kWh/day: 16-31 Jan (16 days) and 1-4 Feb (4 days),
	// the end date itself excluded.
	intervals := []UsageInterval{
		{
			Start:    date(2025, time.January, 16),
			End:      date(2025, time.February, 5),
			Days:     20,
			DeltaKWh: 40,
			DailyKWh: 2,
		},
	}

	months := RollupMonthly(intervals)
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}

	jan := months[0]
	if !jan.Month.Equal(date(2025, time.January, 1)) {
		t.Fatalf("unexpected first month: %v", jan.Month)
	}
	if jan.Days != 16 || jan.KWh != 32 {
		t.Fatalf("unexpected january rollup: %+v", jan)
	}

	feb := months[1]
	if feb.Days != 4 || feb.KWh != 8 {
		t.Fatalf("unexpected february rollup: %+v", feb)
	}
}

func TestRollupMonthly_Empty(t *testing.T) {
	if months := RollupMonthly(nil); len(months) != 0 {
		t.Fatalf("expected no months, got %v", months)
	}
}
