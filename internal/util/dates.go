package util

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date format (use YYYY-MM-DD or RFC3339)")

// ParseDate accepts RFC3339 timestamps and YYYY-MM-DD dates. Blank input reports ok=false.
func ParseDate(s string) (t time.Time, ok bool, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, false, nil
	}
	if tt, e := time.Parse(time.RFC3339, s); e == nil {
		return tt, true, false, nil
	}
	if tt, e := time.Parse("2006-01-02", s); e == nil {
		return tt, true, true, nil
	}
	return time.Time{}, false, false, ErrInvalidDate
}

// ParseDateRange turns optional start/end strings into a half-open [start, endExclusive) range.
// A date-only end covers the whole day. Reversed bounds are swapped.
func ParseDateRange(startStr, endStr *string) (start time.Time, hasStart bool, endExclusive time.Time, hasEnd bool, err error) {
	var (
		rawStart, rawEnd time.Time
		endDateOnly      bool
	)

	if startStr != nil {
		t, ok, _, e := ParseDate(*startStr)
		if e != nil {
			return time.Time{}, false, time.Time{}, false, e
		}
		rawStart, hasStart = t, ok
	}
	if endStr != nil {
		t, ok, dateOnly, e := ParseDate(*endStr)
		if e != nil {
			return time.Time{}, false, time.Time{}, false, e
		}
		rawEnd, hasEnd, endDateOnly = t, ok, dateOnly
	}

	if hasStart && hasEnd && rawEnd.Before(rawStart) {
		rawStart, rawEnd = rawEnd, rawStart
	}

	if hasStart {
		start = rawStart
	}
	if hasEnd {
		endExclusive = rawEnd
		if endDateOnly {
			endExclusive = rawEnd.AddDate(0, 0, 1)
		}
	}
	return start, hasStart, endExclusive, hasEnd, nil
}

// WholeYearsBetween counts completed years from `from` to `to`.
func WholeYearsBetween(from, to time.Time) int {
	if to.Before(from) {
		return 0
	}
	years := to.Year() - from.Year()
	if to.Month() < from.Month() || (to.Month() == from.Month() && to.Day() < from.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
