package calendar

import (
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar combines several calendars.
// A day is working only if every member calendar says so.
type CompositeCalendar struct {
	calendars []Calendar
	logger    *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar, skipping nil members
func NewCompositeCalendar(logger *zap.Logger, calendars ...Calendar) *CompositeCalendar {
	if logger == nil {
		logger = zap.NewNop()
	}

	members := make([]Calendar, 0, len(calendars))
	for _, c := range calendars {
		if c != nil {
			members = append(members, c)
		}
	}

	return &CompositeCalendar{
		calendars: members,
		logger:    logger,
	}
}

// GetDayInfo returns the first non-workday verdict of the members
func (cc *CompositeCalendar) GetDayInfo(date time.Time) DayInfo {
	for _, c := range cc.calendars {
		info := c.GetDayInfo(date)
		if !info.IsWorkday() {
			cc.logger.Debug("Non-working day",
				zap.String("date", date.Format(fullDateLayout)),
				zap.Stringer("type", info.Type),
				zap.String("note", info.Note))
			return info
		}
	}
	return workday(date)
}

// Len returns the number of member calendars
func (cc *CompositeCalendar) Len() int {
	return len(cc.calendars)
}
