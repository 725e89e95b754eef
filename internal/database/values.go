package database

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a NUMERIC column scanned as text. Rows whose value is
// NULL or not a number report ok=false so callers can leave them out of sums.
func ParseAmount(raw sql.NullString) (decimal.Decimal, bool) {
	if !raw.Valid {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(strings.TrimSpace(raw.String))
	if err != nil {
		return decimal.Zero, false
	}

	return d, true
}

// DateArg renders a calendar date as a query argument. Passing the ISO string
// keeps the driver from attaching a timezone to it.
func DateArg(d civil.Date) string {
	return d.String()
}

// NullDateArg is DateArg for optional dates.
func NullDateArg(d *civil.Date) any {
	if d == nil {
		return nil
	}

	return d.String()
}

// DateOf reads a DATE column. The driver returns midnight UTC, so only the
// calendar fields are kept.
func DateOf(t time.Time) civil.Date {
	return civil.Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// NullDateOf is DateOf for nullable DATE columns.
func NullDateOf(t sql.NullTime) *civil.Date {
	if !t.Valid {
		return nil
	}

	d := DateOf(t.Time)

	return &d
}

// LookupError maps a failed single-row read. A missing row and a row whose
// amount is malformed both become notFound, matching list reads that skip the
// latter. Anything else is wrapped with op.
func LookupError(err, malformed, notFound error, op string) error {
	if errors.Is(err, sql.ErrNoRows) || errors.Is(err, malformed) {
		return notFound
	}

	return fmt.Errorf("%s: %w", op, err)
}
