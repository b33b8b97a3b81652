package calendar

import "time"

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

// String returns a lowercase name of the day type
func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	default:
		return "unknown"
	}
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date time.Time
	Type DayType
	Note string
}

// IsWorkday reports whether the day is part of working time
func (d DayInfo) IsWorkday() bool {
	return d.Type == DayTypeWorkday
}

// Calendar classifies calendar dates into working and non-working days
type Calendar interface {
	// GetDayInfo returns the classification of the date. Only the calendar
	// date of the argument is significant.
	GetDayInfo(date time.Time) DayInfo
}

// IsNonWorkingDay reports whether cal excludes the date from working time
func IsNonWorkingDay(cal Calendar, date time.Time) bool {
	return !cal.GetDayInfo(date).IsWorkday()
}

func workday(date time.Time) DayInfo {
	return DayInfo{Date: date, Type: DayTypeWorkday}
}
