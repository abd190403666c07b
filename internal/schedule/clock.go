package schedule

import "time"

// Clock abstracts the current time so resolution can be tested at any
// instant.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant. Test helper.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}
