package workingtime

import (
	"errors"
	"time"
)

// ErrMaxAttempts is returned when overflow resolution runs out of attempts
var ErrMaxAttempts = errors.New("Unable to adjust time")

// ErrDurationRange is returned when the clock part of a duration cannot be
// represented in seconds
var ErrDurationRange = errors.New("duration out of range")

// MaxAttemptsError carries where resolution stopped
type MaxAttemptsError struct {
	Direction Direction
	Attempts  int
	Boundary  time.Time // last day boundary reached
	Remaining int64     // seconds of overflow still to place
}

func (e *MaxAttemptsError) Error() string {
	return ErrMaxAttempts.Error()
}

// Is makes errors.Is(err, ErrMaxAttempts) true
func (e *MaxAttemptsError) Is(target error) bool {
	return target == ErrMaxAttempts
}
