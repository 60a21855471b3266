// Package analytics computes the dashboard metrics: pure functions over
// normalized records, a date range and an optional warehouse scope. An empty
// warehouse id means unscoped. Every function is total; empty or malformed
// input yields zero values, never an error.
package analytics

import "time"

const dayFormat = "2006-01-02"

// DateRange is a whole-day window, bounds included.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange clamps start and end to whole-day boundaries and swaps them
// when inverted, so callers can pass the bounds in either order.
func NewDateRange(start, end time.Time) DateRange {
	if end.Before(start) {
		start, end = end, start
	}
	return DateRange{Start: dayStart(start), End: dayEnd(end)}
}

// LastDays returns the range covering the n calendar days ending on the day
// of now.
func LastDays(n int, now time.Time) DateRange {
	if n < 1 {
		n = 1
	}
	return NewDateRange(now.AddDate(0, 0, -(n-1)), now)
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
