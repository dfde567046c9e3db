package clock

import "time"

// Clock is the time source for punch timestamps and token lifetimes
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current time in UTC, truncated to the second. Punches are
// stored and compared at that precision, matching what a JWT can carry.
func (c *RealClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
