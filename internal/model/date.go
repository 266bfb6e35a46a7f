// internal/model/date.go
package model

import (
	"fmt"
	"math"
	"time"
)

// DateLayout is the calendar-day key format used everywhere: log rows,
// schedule snapshots and queue entries are all keyed by "YYYY-MM-DD".
const DateLayout = "2006-01-02"

// ParseDate parses a calendar-day string in the local time zone.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, s)
	}
	return t, nil
}

// Today returns the current calendar day.
func Today() string {
	return time.Now().Format(DateLayout)
}

// EndOfDay returns the last instant of the given day. Used to decide whether
// a definition created during that day may appear in its schedule.
func EndOfDay(date string) (time.Time, error) {
	t, err := ParseDate(date)
	if err != nil {
		return time.Time{}, err
	}
	return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
}

// AddDays shifts a calendar-day string by n days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// DaysBetween returns b - a in whole calendar days.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	// Rounded so a DST-shortened day still counts as one day.
	return int(math.Round(tb.Sub(ta).Hours() / 24)), nil
}
