// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/finance-calculators/pkg/constants"
)

const (
	// DateTimeLayout is the format expected in config files and is also the output
	// date format.
	DateTimeLayout = constants.DateTimeLayout
)

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseMonth parses a YYYY-MM date. An empty string yields the month
// containing fallback.
func ParseMonth(date string, fallback time.Time) (time.Time, error) {
	if date == "" {
		return MonthStart(fallback), nil
	}
	t, err := time.Parse(DateTimeLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM: %w", date, err)
	}
	return t, nil
}

// MonthStart truncates t to the first day of its month in UTC.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// OffsetMonths returns the date offset by the given number of months.
// Dates are always normalized to the first of the month so that AddDate
// never skips a short month.
func OffsetMonths(date time.Time, months int) time.Time {
	return MonthStart(date).AddDate(0, months, 0)
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// MonthsBetween counts whole months from a to b.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*constants.MonthsPerYear + int(b.Month()) - int(a.Month())
}

// Format renders a date in the output layout; the zero time renders empty.
func Format(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(DateTimeLayout)
}

// DefaultMonth normalizes t to its month, substituting the current month for
// the zero time.
func DefaultMonth(t time.Time) time.Time {
	if t.IsZero() {
		return MonthStart(time.Now())
	}
	return MonthStart(t)
}
