package period

import (
	"time"

	"cloud.google.com/go/civil"
)

// Clock tells the resolver what "today" is.
type Clock interface {
	Today() civil.Date
}

// SystemClock reads the wall clock in Location (time.Local when nil).
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Today() civil.Date {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	return civil.DateOf(time.Now().In(loc))
}

// FixedClock always reports the same day.
type FixedClock civil.Date

func (c FixedClock) Today() civil.Date {
	return civil.Date(c)
}
