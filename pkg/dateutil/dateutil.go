package dateutil

import (
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the default layout used to print calculated timestamps
const DateTimeLayout = "2006-01-02 15:04:05"

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// SetTimeOfDay returns the same calendar date with the wall clock set to hour:minute:00.
// Out-of-range values are normalized by time.Date.
func SetTimeOfDay(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location())
}

// FormatDateTime formats date as YYYY-MM-DD HH:MM:SS
func FormatDateTime(date time.Time) string {
	return date.Format(DateTimeLayout)
}

// ParseDateTime parses a timestamp string in loc.
// Date-only inputs resolve to midnight.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	formats := []string{
		DateTimeLayout,
		"2006-01-02 15:04",
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
		"02.01.2006 15:04:05",
		"02.01.2006",
	}

	value = strings.TrimSpace(value)
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, loc); err == nil {
			return t, nil
		}
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

// ParseClock parses "HH:MM" into hour and minute
func ParseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", strings.TrimSpace(value))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock %q, expected HH:MM: %w", value, err)
	}
	return t.Hour(), t.Minute(), nil
}

// FormatClock renders hour and minute as HH:MM
func FormatClock(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ParseWeekday resolves an English weekday name ("Monday", "sunday").
// Three-letter abbreviations are accepted too.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.TrimSpace(name)
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := d.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return d, true
		}
	}
	return time.Sunday, false
}
