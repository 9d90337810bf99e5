package assignment

import (
	"time"

	"roomdesk-backend/internal/domain"
)

// Clock is the single source of "now" for arrived/movable classification.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in the property's time zone.
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// Today is the calendar date of the clock's current instant.
func Today(c Clock) time.Time {
	return domain.DateOf(c.Now())
}
