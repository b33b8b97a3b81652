package workingtime

import (
	"time"

	"github.com/username/workingtime/internal/calendar"
)

// step is the outcome of moving one calendar day away from a boundary
type step struct {
	Done     bool
	Result   time.Time // set when Done
	Boundary time.Time // a time on the day just visited
	Overflow int64     // seconds still to place after the visited day
	Skipped  bool      // visited day was non-working
}

// advanceForward visits the day after boundary. On a working day the
// overflow is counted from the window start; whatever passes the window end
// is carried to the next iteration. Non-working days carry the overflow
// unchanged.
func advanceForward(boundary time.Time, overflow int64, w WorkingWindow, days calendar.Calendar) step {
	next := boundary.AddDate(0, 0, 1)
	dayStart := w.StartOf(next)

	if calendar.IsNonWorkingDay(days, dayStart) {
		return step{Boundary: dayStart, Overflow: overflow, Skipped: true}
	}

	end := w.EndOf(next).Unix()
	candidate := dayStart.Unix() + overflow
	if candidate > end {
		return step{Boundary: dayStart, Overflow: candidate - end}
	}
	return step{Done: true, Result: time.Unix(candidate, 0).In(dayStart.Location())}
}

// advanceReverse mirrors advanceForward: it visits the day before boundary
// and counts the overflow back from the window end.
func advanceReverse(boundary time.Time, overflow int64, w WorkingWindow, days calendar.Calendar) step {
	prev := boundary.AddDate(0, 0, -1)
	dayEnd := w.EndOf(prev)

	if calendar.IsNonWorkingDay(days, dayEnd) {
		return step{Boundary: dayEnd, Overflow: overflow, Skipped: true}
	}

	start := w.StartOf(prev).Unix()
	candidate := dayEnd.Unix() - overflow
	if candidate < start {
		return step{Boundary: dayEnd, Overflow: start - candidate}
	}
	return step{Done: true, Result: time.Unix(candidate, 0).In(dayEnd.Location())}
}
