package usecase

import (
	"time"

	"github.com/iho/dairyledger/internal/domain"
)

// SystemClock reads the wall clock in a fixed location. The business day is
// decided in that location, so "today" does not flip at UTC midnight.
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location.
func (c SystemClock) Now() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return time.Now().In(loc)
}

// FixedClock always returns the same instant. Useful in tests and the CLI.
type FixedClock struct {
	At time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return c.At
}

func today(c Clock) domain.Date {
	return domain.NewDate(c.Now())
}
