package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.ParseInLocation(ISO, s, time.Local)
	require.NoError(t, err, "parse date %q", s)
	return d
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2025, time.March, 9, 17, 45, 12, 999, time.Local)
	got := TruncateToDay(in)

	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, time.Local), got)
	assert.Equal(t, 17, in.Hour(), "input must not be modified")
}

func TestAddDays(t *testing.T) {
	start := mustDate(t, "2025-12-25")
	assert.Equal(t, mustDate(t, "2026-01-08"), AddDays(start, 14))
	assert.Equal(t, mustDate(t, "2025-12-11"), AddDays(start, -14))
	assert.Equal(t, start, AddDays(start, 0))
}

func TestInInclusiveRange(t *testing.T) {
	start := mustDate(t, "2025-06-01")
	end := mustDate(t, "2025-06-15")

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"start day", start, true},
		{"end day late evening", end.Add(23 * time.Hour), true},
		{"middle", mustDate(t, "2025-06-07"), true},
		{"day before", mustDate(t, "2025-05-31"), false},
		{"day after", mustDate(t, "2025-06-16"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InInclusiveRange(tt.day, start, end))
		})
	}

	assert.False(t, InInclusiveRange(start, end, start), "inverted range matches nothing")
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(2025, time.January, time.Local))
	assert.Equal(t, 28, DaysIn(2025, time.February, time.Local))
	assert.Equal(t, 29, DaysIn(2024, time.February, time.Local))
	assert.Equal(t, 30, DaysIn(2025, time.April, time.Local))
	assert.Equal(t, 31, DaysIn(2025, time.December, time.Local))
}

func TestNextMonthlyOccurrence(t *testing.T) {
	tests := []struct {
		name   string
		ref    string
		dueDay int
		want   string
	}{
		{"later this month", "2025-06-03", 18, "2025-06-18"},
		{"same day", "2025-06-18", 18, "2025-06-18"},
		{"already passed rolls to next month", "2025-06-19", 18, "2025-07-18"},
		{"31st clamps in April", "2025-04-02", 31, "2025-04-30"},
		{"31st clamps in February", "2025-02-10", 31, "2025-02-28"},
		{"31st clamps in leap February", "2024-02-10", 31, "2024-02-29"},
		{"rollover re-clamps to next month", "2025-03-31", 30, "2025-04-30"},
		{"rollover into February", "2025-01-31", 30, "2025-02-28"},
		{"December wraps to January", "2025-12-20", 5, "2026-01-05"},
		{"due day below range clamps to first", "2025-06-01", 0, "2025-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextMonthlyOccurrence(mustDate(t, tt.ref), tt.dueDay)
			assert.Equal(t, tt.want, got.Format(ISO))
		})
	}
}

func TestNextMonthlyOccurrenceIgnoresTimeOfDay(t *testing.T) {
	ref := mustDate(t, "2025-06-18").Add(12 * time.Hour)
	got := NextMonthlyOccurrence(ref, 18)
	assert.Equal(t, mustDate(t, "2025-06-18"), got)
}

func TestNextMonthlyOccurrenceIsIdempotent(t *testing.T) {
	ref := mustDate(t, "2025-01-01")
	for due := 1; due <= 31; due++ {
		for i := 0; i < 400; i += 7 {
			first := NextMonthlyOccurrence(AddDays(ref, i), due)
			again := NextMonthlyOccurrence(first, due)
			require.Equal(t, first, again, "due=%d ref=%s", due, AddDays(ref, i).Format(ISO))
		}
	}
}
