package period

import (
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// Mode is the granularity the dashboard filter is set to.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// Preset is a named range available in day mode.
type Preset string

const (
	PresetToday      Preset = "today"
	PresetYesterday  Preset = "yesterday"
	PresetLast7Days  Preset = "last_7_days"
	PresetLast30Days Preset = "last_30_days"
	PresetThisMonth  Preset = "this_month"
	PresetLastMonth  Preset = "last_month"
	PresetCustom     Preset = "custom"
)

// MaxCustomDays caps a user-chosen range at two years.
const MaxCustomDays = 731

var (
	ErrInvalidMode   = errors.New("invalid period mode")
	ErrInvalidPreset = errors.New("invalid period preset")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrRangeTooLong  = errors.New("custom range too long")
)

// Selector carries the filter state for every mode. Only the fields relevant
// to the chosen mode are read; zero values fall back to today.
type Selector struct {
	Preset      Preset
	CustomStart civil.Date
	CustomEnd   civil.Date
	Reference   civil.Date
	Year        int
	Month       time.Month
}

// Resolve turns a filter mode and its selector into a concrete range.
func Resolve(mode Mode, sel Selector, today civil.Date) (Range, error) {
	switch mode {
	case ModeDay:
		return resolvePreset(sel, today)
	case ModeWeek:
		ref := sel.Reference
		if isZero(ref) {
			ref = today
		}

		return ISOWeek(ref), nil
	case ModeMonth:
		year, month := sel.Year, sel.Month
		if year == 0 {
			year = today.Year
		}

		if month == 0 {
			month = today.Month
		}

		if month < time.January || month > time.December {
			return Range{}, fmt.Errorf("%w: %d", ErrInvalidMonth, month)
		}

		return MonthRange(year, month), nil
	case ModeYear:
		year := sel.Year
		if year == 0 {
			year = today.Year
		}

		return YearRange(year), nil
	}

	return Range{}, fmt.Errorf("%w: %q", ErrInvalidMode, mode)
}

func resolvePreset(sel Selector, today civil.Date) (Range, error) {
	switch sel.Preset {
	case "", PresetToday:
		return Day(today), nil
	case PresetYesterday:
		return Day(today.AddDays(-1)), nil
	case PresetLast7Days:
		return Range{Start: today.AddDays(-6), End: today}, nil
	case PresetLast30Days:
		return Range{Start: today.AddDays(-29), End: today}, nil
	case PresetThisMonth:
		return Range{Start: civil.Date{Year: today.Year, Month: today.Month, Day: 1}, End: today}, nil
	case PresetLastMonth:
		prev := AddMonths(civil.Date{Year: today.Year, Month: today.Month, Day: 1}, -1)
		return MonthRange(prev.Year, prev.Month), nil
	case PresetCustom:
		return customRange(sel.CustomStart, sel.CustomEnd, today)
	}

	return Range{}, fmt.Errorf("%w: %q", ErrInvalidPreset, sel.Preset)
}

// customRange accepts a user-chosen pair. A single bound collapses the range
// to that day and an inverted pair collapses to its start. Pairs spanning more
// than MaxCustomDays are rejected.
func customRange(start, end, today civil.Date) (Range, error) {
	switch {
	case isZero(start) && isZero(end):
		return Day(today), nil
	case isZero(start):
		return Day(end), nil
	case isZero(end):
		return Day(start), nil
	}

	r := NewRange(start, end)
	if n := r.Days(); n > MaxCustomDays {
		return Range{}, fmt.Errorf("%w: %d days, max %d", ErrRangeTooLong, n, MaxCustomDays)
	}

	return r, nil
}

// ISOWeek returns the Monday..Sunday week containing ref.
func ISOWeek(ref civil.Date) Range {
	offset := int(Weekday(ref))
	if offset == 0 {
		offset = 7
	}

	start := ref.AddDays(-(offset - 1))

	return Range{Start: start, End: start.AddDays(6)}
}

// MonthRange returns the first through the last day of the month.
func MonthRange(year int, month time.Month) Range {
	start := civil.Date{Year: year, Month: month, Day: 1}
	end := civil.DateOf(time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC))

	return Range{Start: start, End: end}
}

// YearRange returns January 1 through December 31.
func YearRange(year int) Range {
	return Range{
		Start: civil.Date{Year: year, Month: time.January, Day: 1},
		End:   civil.Date{Year: year, Month: time.December, Day: 31},
	}
}

// Step moves a resolved range n periods forward (or back when n < 0) in the
// given mode. Day mode shifts by the range length so presets like
// "last 7 days" page through adjacent weeks.
func Step(mode Mode, r Range, n int) Range {
	switch mode {
	case ModeWeek:
		return ISOWeek(r.Start.AddDays(7 * n))
	case ModeMonth:
		first := AddMonths(civil.Date{Year: r.Start.Year, Month: r.Start.Month, Day: 1}, n)
		return MonthRange(first.Year, first.Month)
	case ModeYear:
		return YearRange(r.Start.Year + n)
	}

	shift := r.Days() * n

	return Range{Start: r.Start.AddDays(shift), End: r.End.AddDays(shift)}
}

func isZero(d civil.Date) bool {
	return d == civil.Date{}
}
