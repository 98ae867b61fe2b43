package domain

import (
	"fmt"
	"strings"
	"time"
)

var dayLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// NormalizeDay truncates t to midnight UTC of its UTC calendar day.
func NormalizeDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDay parses a date or timestamp and returns its normalized day.
func ParseDay(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return NormalizeDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidInput, raw)
}
