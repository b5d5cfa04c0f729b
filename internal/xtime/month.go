package xtime

import (
	"math"
	"time"
)

// MonthBounds returns the UTC calendar month containing t as [start, end).
func MonthBounds(t time.Time) (time.Time, time.Time) {
	t = t.UTC()
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// PreviousMonthBounds returns the UTC calendar month before the one
// containing t as [start, end).
func PreviousMonthBounds(t time.Time) (time.Time, time.Time) {
	start, _ := MonthBounds(t)
	return start.AddDate(0, -1, 0), start
}

// MonthOf returns the UTC calendar month for an explicit year and month as
// [start, end). Out-of-range months are normalized by the time package.
func MonthOf(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// YearBounds returns the UTC calendar year as [Jan 1, Jan 1 of year+1).
func YearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(1, 0, 0)
}

// TrailingWindow returns [now - days, now].
func TrailingWindow(now time.Time, days int) (time.Time, time.Time) {
	return now.AddDate(0, 0, -days), now
}

// DaysUntil returns the floor of the whole days between now and target.
// Negative when target is in the past, so an event 12 hours ago is -1 days
// away, not 0.
func DaysUntil(target time.Time, now time.Time) int {
	return int(math.Floor(target.Sub(now).Hours() / 24))
}
