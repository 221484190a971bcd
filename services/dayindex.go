// services/dayindex.go - Calendar Date / Day Index Mapping
package services

import (
	"time"
)

// DateLayout is the calendar date format used throughout the stored state.
const DateLayout = "2006-01-02"

// atNoon normalizes a time to 12:00 UTC on its calendar date. Differencing
// noons keeps day math immune to DST and timezone day-shift bugs.
func atNoon(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string to its normalized noon instant.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return atNoon(t), nil
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DayIndexFor returns the 1-based challenge day index of date relative to
// start. The start date itself is day 1; results ≤ 0 denote days before the
// challenge began.
func DayIndexFor(date, start time.Time) int {
	diff := atNoon(date).Sub(atNoon(start))
	return int(diff.Hours()/24) + 1
}

// DateForDayIndex is the inverse of DayIndexFor.
func DateForDayIndex(idx int, start time.Time) time.Time {
	return atNoon(start).AddDate(0, 0, idx-1)
}

// IsMonday reports whether t falls on a Monday.
func IsMonday(t time.Time) bool {
	return t.Weekday() == time.Monday
}

// isMondayDate is IsMonday on a stored date string; unparseable dates are
// treated as non-Mondays.
func isMondayDate(s string) bool {
	t, err := ParseDate(s)
	if err != nil {
		return false
	}
	return IsMonday(t)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
