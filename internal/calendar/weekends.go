package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/username/workingtime/pkg/dateutil"
)

// Weekends is the set of weekdays that are fully non-working
type Weekends map[time.Weekday]struct{}

// NewWeekends builds a weekend set from weekdays
func NewWeekends(days ...time.Weekday) Weekends {
	w := make(Weekends, len(days))
	for _, d := range days {
		w[d] = struct{}{}
	}
	return w
}

// ParseWeekends builds a weekend set from English weekday names
func ParseWeekends(names []string) (Weekends, error) {
	w := make(Weekends, len(names))
	var unknown []string
	for _, name := range names {
		day, ok := dateutil.ParseWeekday(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		w[day] = struct{}{}
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown weekday name(s): %s", strings.Join(unknown, ", "))
	}
	return w, nil
}

// Contains reports whether the weekday is a weekend day
func (w Weekends) Contains(day time.Weekday) bool {
	_, ok := w[day]
	return ok
}

// Names returns weekend day names in Sunday..Saturday order
func (w Weekends) Names() []string {
	names := make([]string, 0, len(w))
	for d := time.Sunday; d <= time.Saturday; d++ {
		if w.Contains(d) {
			names = append(names, d.String())
		}
	}
	return names
}

// Full reports whether every day of the week is excluded
func (w Weekends) Full() bool {
	return len(w) == 7
}
