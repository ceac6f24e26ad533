// Package dates provides the ISO-8601 date handling used in decision records.
//
// Record dates are calendar days in the local time zone, written as
// YYYY-MM-DD. The clock is injectable so record rendering is deterministic
// under test.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the Go layout for YYYY-MM-DD.
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Clock returns the current time.
type Clock func() time.Time

// SystemClock is the real wall clock.
func SystemClock() time.Time { return time.Now() }

// Fixed returns a Clock that always reports t.
func Fixed(t time.Time) Clock {
	return func() time.Time { return t }
}

// Today formats the clock's current day as YYYY-MM-DD.
func Today(clock Clock) string {
	if clock == nil {
		clock = SystemClock
	}
	return clock().Format(DateLayout)
}

// IsValidDate checks if a string is a valid YYYY-MM-DD date.
func IsValidDate(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("invalid date: %q", s)
	}
	return time.Parse(DateLayout, s)
}
