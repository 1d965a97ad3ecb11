// Package dates provides the calendar arithmetic used for pay cycles and
// monthly due dates. All functions work in the location of their arguments.
package dates

import "time"

// ISO is the layout used for dates in reports, logs and exports.
const ISO = "2006-01-02"

// TruncateToDay returns midnight of t's calendar day in t's location.
func TruncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AddDays returns t moved n calendar days (n may be negative).
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// InInclusiveRange reports whether t falls on a day within [start, end].
func InInclusiveRange(t, start, end time.Time) bool {
	day := TruncateToDay(t)
	return !day.Before(TruncateToDay(start)) && !day.After(TruncateToDay(end))
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month, loc *time.Location) int {
	// Day 0 of the following month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// NextMonthlyOccurrence returns the first date on or after ref's day whose
// day-of-month is dueDay, clamped to the length of the month. A due day of 31
// lands on the 30th in April and on the 28th or 29th in February.
func NextMonthlyOccurrence(ref time.Time, dueDay int) time.Time {
	day := TruncateToDay(ref)
	loc := day.Location()
	year, month := day.Year(), day.Month()

	candidate := time.Date(year, month, clampDay(dueDay, DaysIn(year, month, loc)), 0, 0, 0, 0, loc)
	if !candidate.Before(day) {
		return candidate
	}

	if month == time.December {
		year, month = year+1, time.January
	} else {
		month++
	}
	return time.Date(year, month, clampDay(dueDay, DaysIn(year, month, loc)), 0, 0, 0, 0, loc)
}

func clampDay(day, daysInMonth int) int {
	if day < 1 {
		return 1
	}
	if day > daysInMonth {
		return daysInMonth
	}
	return day
}
