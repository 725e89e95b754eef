package dashboard

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"

	"github.com/newgestao/drivercontrol/internal/period"
)

// parseFilter reads the dashboard filter from the query string. month is
// zero-based (0 = January) as the web client sends it.
func parseFilter(r *http.Request) (period.Mode, period.Selector, error) {
	q := r.URL.Query()

	mode := period.Mode(q.Get("mode"))
	if mode == "" {
		mode = period.ModeDay
	}

	sel := period.Selector{Preset: period.Preset(q.Get("preset"))}

	var err error

	if sel.CustomStart, err = dateValue(q.Get("start"), "start"); err != nil {
		return "", sel, err
	}

	if sel.CustomEnd, err = dateValue(q.Get("end"), "end"); err != nil {
		return "", sel, err
	}

	if sel.Reference, err = dateValue(q.Get("date"), "date"); err != nil {
		return "", sel, err
	}

	if s := q.Get("year"); s != "" {
		if sel.Year, err = strconv.Atoi(s); err != nil || sel.Year < 1 {
			return "", sel, fmt.Errorf("invalid year %q", s)
		}
	}

	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil || m < 0 || m > 11 {
			return "", sel, fmt.Errorf("%w: %q", period.ErrInvalidMonth, s)
		}

		sel.Month = time.Month(m + 1)
	}

	if sel.CustomStart != (civil.Date{}) && sel.CustomEnd != (civil.Date{}) && sel.CustomEnd.Before(sel.CustomStart) {
		slog.WarnContext(r.Context(), "inverted custom range collapsed to start day",
			"start", sel.CustomStart,
			"end", sel.CustomEnd,
		)
	}

	return mode, sel, nil
}

func dateValue(s, name string) (civil.Date, error) {
	if s == "" {
		return civil.Date{}, nil
	}

	d, err := civil.ParseDate(s)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid %s: %w", name, err)
	}

	return d, nil
}
