// Package dateutil works with calendar days and months as ISO strings.
//
// Days are "YYYY-MM-DD", months are "YYYY-MM". With zero-padded components
// the lexicographic order of these strings equals chronological order, so
// plain string comparison is the canonical ordering everywhere in the
// ledger. Parsed time.Time values are deliberately avoided for ordering.
package dateutil

import (
	"regexp"
	"time"
)

var (
	dayRE   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	monthRE = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

// IsDay reports whether s is a zero-padded ISO calendar day.
func IsDay(s string) bool {
	if !dayRE.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsMonth reports whether s is a zero-padded "YYYY-MM" month key.
func IsMonth(s string) bool {
	if !monthRE.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01", s)
	return err == nil
}

// MonthOf returns the month key of a day ("2024-03-15" -> "2024-03").
func MonthOf(day string) string {
	return day[:7]
}

// MonthStart returns the first day of a month ("2024-03" -> "2024-03-01").
func MonthStart(month string) string {
	return month + "-01"
}

// MonthEndBound returns the inclusive upper bound used for "as of end of
// month" queries: month + "-31".
//
// Not every month has 31 days, but no valid record can carry a day that
// does not exist, so "date <= bound" selects exactly the days of the month
// and everything before it. The bound is only ever compared against, never
// matched exactly, which keeps the shortcut safe. Callers rely on this
// exact string, so do not replace it with a computed last day.
func MonthEndBound(month string) string {
	return month + "-31"
}

// NextMonth returns the month after a valid month key.
func NextMonth(month string) string {
	t, _ := time.Parse("2006-01", month)
	return t.AddDate(0, 1, 0).Format("2006-01")
}

// NextDay returns the day after a valid day key.
func NextDay(day string) string {
	t, _ := time.Parse("2006-01-02", day)
	return t.AddDate(0, 0, 1).Format("2006-01-02")
}

// Today returns the current UTC day key.
func Today() string {
	return time.Now().UTC().Format("2006-01-02")
}

// CurrentMonth returns the current UTC month key.
func CurrentMonth() string {
	return time.Now().UTC().Format("2006-01")
}
