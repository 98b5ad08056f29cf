package domain

import (
	"fmt"
	"strings"
	"time"
)

// DateInputLayout is the layout of date-only deadlines
const DateInputLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateInputLayout,
}

// ParseDate parses an ISO-8601 instant or a date-only string. Values without
// an offset are read in local time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// IsDateOnly reports whether s carries a calendar day without a time of day
func IsDateOnly(s string) bool {
	_, err := time.ParseInLocation(DateInputLayout, strings.TrimSpace(s), time.Local)
	return err == nil
}

// StartOfDay returns midnight of t's calendar day in t's location
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// FormatDeadline renders a deadline relative to now
func FormatDeadline(t, now time.Time) string {
	t = t.In(now.Location())
	switch {
	case sameDay(t, now):
		return "Today"
	case sameDay(t, now.AddDate(0, 0, 1)):
		return "Tomorrow"
	default:
		return shortDate(t, now)
	}
}

// IsOverdue reports whether the deadline fell before the start of today.
// Deadlines later today are not overdue.
func IsOverdue(t, now time.Time) bool {
	return t.Before(StartOfDay(now))
}

// FormatCompletion renders a completion stamp relative to now
func FormatCompletion(t, now time.Time) string {
	t = t.In(now.Location())
	switch {
	case sameDay(t, now):
		return "Completed today"
	case sameDay(t, now.AddDate(0, 0, -1)):
		return "Completed yesterday"
	default:
		return "Completed on " + shortDate(t, now)
	}
}

// FormatDateForInput renders t as YYYY-MM-DD for the deadline field
func FormatDateForInput(t time.Time) string {
	return t.Format(DateInputLayout)
}

func shortDate(t, now time.Time) string {
	if t.Year() != now.Year() {
		return t.Format("Jan 2, 2006")
	}
	return t.Format("Jan 2")
}
