package calendar

import (
	"strings"
	"time"
)

const (
	recurringLayout = "01-02"
	fullDateLayout  = "2006-01-02"
)

// ExceptionDate is a single exception specifier.
// MM-DD recurs every year, YYYY-MM-DD matches once.
type ExceptionDate struct {
	Raw   string
	Year  int // 0 for recurring specifiers
	Month time.Month
	Day   int
	Note  string
	valid bool
}

// ParseExceptionDate parses a specifier. A specifier that is neither MM-DD
// nor YYYY-MM-DD is returned with Valid() == false and never matches.
func ParseExceptionDate(spec string) ExceptionDate {
	e := ExceptionDate{Raw: spec}
	value := strings.TrimSpace(spec)

	if t, err := time.Parse(recurringLayout, value); err == nil {
		e.Month, e.Day, e.valid = t.Month(), t.Day(), true
		return e
	}
	if t, err := time.Parse(fullDateLayout, value); err == nil {
		e.Year, e.Month, e.Day, e.valid = t.Year(), t.Month(), t.Day(), true
	}
	return e
}

// Valid reports whether the specifier parsed in either form
func (e ExceptionDate) Valid() bool {
	return e.valid
}

// Recurring reports whether the specifier matches every year
func (e ExceptionDate) Recurring() bool {
	return e.valid && e.Year == 0
}

// Matches reports whether the calendar date of t equals the specifier
func (e ExceptionDate) Matches(t time.Time) bool {
	if !e.valid || t.Month() != e.Month || t.Day() != e.Day {
		return false
	}
	return e.Year == 0 || t.Year() == e.Year
}

// ExceptionDates is an ordered collection of exception specifiers
type ExceptionDates []ExceptionDate

// ParseExceptionDates parses every specifier, keeping malformed ones as inert entries
func ParseExceptionDates(specs []string) ExceptionDates {
	dates := make(ExceptionDates, 0, len(specs))
	for _, s := range specs {
		dates = append(dates, ParseExceptionDate(s))
	}
	return dates
}

// Match returns the first specifier matching t
func (d ExceptionDates) Match(t time.Time) (ExceptionDate, bool) {
	for _, e := range d {
		if e.Matches(t) {
			return e, true
		}
	}
	return ExceptionDate{}, false
}

// IsExceptionDate reports whether t matches any specifier
func (d ExceptionDates) IsExceptionDate(t time.Time) bool {
	_, ok := d.Match(t)
	return ok
}

// Invalid returns the raw text of specifiers that can never match
func (d ExceptionDates) Invalid() []string {
	var out []string
	for _, e := range d {
		if !e.valid {
			out = append(out, e.Raw)
		}
	}
	return out
}
