package calendar

import "time"

// Rules implements Calendar from a weekend set and exception dates
type Rules struct {
	Weekends   Weekends
	Exceptions ExceptionDates
}

// NewRules creates a Rules calendar
func NewRules(weekends Weekends, exceptions ExceptionDates) *Rules {
	return &Rules{
		Weekends:   weekends,
		Exceptions: exceptions,
	}
}

// GetDayInfo returns weekend for weekend weekdays, holiday for exception
// dates and workday otherwise. Weekend wins when both apply.
func (r *Rules) GetDayInfo(date time.Time) DayInfo {
	if r.Weekends.Contains(date.Weekday()) {
		return DayInfo{Date: date, Type: DayTypeWeekend, Note: date.Weekday().String()}
	}
	if e, ok := r.Exceptions.Match(date); ok {
		note := e.Note
		if note == "" {
			note = "exception " + e.Raw
		}
		return DayInfo{Date: date, Type: DayTypeHoliday, Note: note}
	}
	return workday(date)
}
