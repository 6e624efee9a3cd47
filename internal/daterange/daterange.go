// Package daterange resolves the date strings used in content frontmatter into a single
// comparable point in time.
package daterange

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// yearRange matches "YYYY-YYYY" exactly
var yearRange = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// isoLayouts are the calendar date and timestamp shapes accepted besides year ranges,
// most specific first
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// InvalidDateFormatError is returned when a string is neither a year range nor an ISO-8601 date
type InvalidDateFormatError struct {
	Value string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date format: %q (want YYYY-MM-DD or YYYY-YYYY)", e.Value)
}

// Resolve converts a frontmatter date into a UTC time.
// A year range resolves to January 1 of its end year, so a project is considered current
// as of the end of its stated range. Anything else is parsed as an ISO-8601 date.
// Timestamps without a zone are read as UTC so results do not depend on the host.
func Resolve(value string) (time.Time, error) {
	s := strings.TrimSpace(value)

	if m := yearRange.FindStringSubmatch(s); m != nil {
		return time.Parse("2006-01-02", m[2]+"-01-01")
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, &InvalidDateFormatError{Value: value}
}

// MustResolve is like Resolve but panics on error.
// Use it only for compile-time constants and tests.
func MustResolve(value string) time.Time {
	t, err := Resolve(value)
	if err != nil {
		panic(err)
	}
	return t
}

// Latest returns the most recent of the given times and false when there are none
func Latest(times ...time.Time) (time.Time, bool) {
	if len(times) == 0 {
		return time.Time{}, false
	}
	latest := times[0]
	for _, t := range times[1:] {
		if t.After(latest) {
			latest = t
		}
	}
	return latest, true
}

// FormatISO renders a time the way JavaScript's Date.toISOString does
func FormatISO(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
