package workingtime

import (
	"fmt"
	"time"

	"github.com/username/workingtime/pkg/dateutil"
)

// WorkingWindow is the daily working interval, re-applied to any date.
// Start is expected to be before End; this is not validated here.
type WorkingWindow struct {
	StartHour   int
	StartMinute int
	EndHour     int
	EndMinute   int
}

// DefaultWindow is 06:00-23:00
var DefaultWindow = WorkingWindow{StartHour: 6, EndHour: 23}

// ParseWindow builds a window from two "HH:MM" strings
func ParseWindow(start, end string) (WorkingWindow, error) {
	sh, sm, err := dateutil.ParseClock(start)
	if err != nil {
		return WorkingWindow{}, fmt.Errorf("working day start: %w", err)
	}
	eh, em, err := dateutil.ParseClock(end)
	if err != nil {
		return WorkingWindow{}, fmt.Errorf("working day end: %w", err)
	}
	return WorkingWindow{StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em}, nil
}

// StartOf returns the date of t at the window start
func (w WorkingWindow) StartOf(t time.Time) time.Time {
	return dateutil.SetTimeOfDay(t, w.StartHour, w.StartMinute)
}

// EndOf returns the date of t at the window end
func (w WorkingWindow) EndOf(t time.Time) time.Time {
	return dateutil.SetTimeOfDay(t, w.EndHour, w.EndMinute)
}

// Length returns the working time in one day
func (w WorkingWindow) Length() time.Duration {
	return time.Duration(w.EndHour-w.StartHour)*time.Hour +
		time.Duration(w.EndMinute-w.StartMinute)*time.Minute
}

// String renders HH:MM-HH:MM
func (w WorkingWindow) String() string {
	return dateutil.FormatClock(w.StartHour, w.StartMinute) + "-" + dateutil.FormatClock(w.EndHour, w.EndMinute)
}
