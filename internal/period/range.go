package period

import (
	"time"

	"cloud.google.com/go/civil"
)

// Range is an inclusive pair of calendar dates with Start <= End.
type Range struct {
	Start civil.Date `json:"start"`
	End   civil.Date `json:"end"`
}

// NewRange builds a range, collapsing an inverted pair to the single day start.
func NewRange(start, end civil.Date) Range {
	if end.Before(start) {
		end = start
	}

	return Range{Start: start, End: end}
}

// Day returns the range covering only d.
func Day(d civil.Date) Range {
	return Range{Start: d, End: d}
}

// Days is the number of calendar days in the range, both ends included.
func (r Range) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

func (r Range) Contains(d civil.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Dates lists every day of the range in ascending order.
func (r Range) Dates() []civil.Date {
	n := r.Days()
	if n <= 0 {
		return nil
	}

	dates := make([]civil.Date, n)
	for i := range dates {
		dates[i] = r.Start.AddDays(i)
	}

	return dates
}

// Overlap returns the intersection of two ranges and whether it is non-empty.
func (r Range) Overlap(other Range) (Range, bool) {
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}

	end := r.End
	if other.End.Before(end) {
		end = other.End
	}

	if end.Before(start) {
		return Range{}, false
	}

	return Range{Start: start, End: end}, true
}

func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// Weekday reports the day of the week of a calendar date.
func Weekday(d civil.Date) time.Weekday {
	return d.In(time.UTC).Weekday()
}

// AddMonths moves d by n months, clamping the day to the target month's length
// (Jan 31 + 1 month = Feb 28/29).
func AddMonths(d civil.Date, n int) civil.Date {
	first := time.Date(d.Year, d.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()

	day := d.Day
	if day > last {
		day = last
	}

	return civil.Date{Year: first.Year(), Month: first.Month(), Day: day}
}
