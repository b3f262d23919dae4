package util

import "time"

// DateOf truncates t to its UTC calendar date (midnight UTC).
func DateOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LastDayOfMonth returns the number of days in the given month
func LastDayOfMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthsBefore returns the date the given number of calendar months before d,
// landing on the same day-of-month in the target month. When that day does
// not exist (e.g. no Feb 30), the result is clamped to the target month's
// last day.
func MonthsBefore(d time.Time, months int) time.Time {
	year, month, day := d.UTC().Date()

	total := year*12 + int(month) - 1 - months
	targetYear := total / 12
	targetMonth := time.Month(total%12 + 1)

	lastDay := LastDayOfMonth(targetYear, targetMonth)
	if day > lastDay {
		day = lastDay
	}

	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, time.UTC)
}
