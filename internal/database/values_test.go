package database_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"

	"github.com/newgestao/drivercontrol/internal/database"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		raw    sql.NullString
		want   string
		wantOK bool
	}{
		{name: "Numeric", raw: sql.NullString{String: "123.45", Valid: true}, want: "123.45", wantOK: true},
		{name: "Padded", raw: sql.NullString{String: " 10 ", Valid: true}, want: "10", wantOK: true},
		{name: "Null", raw: sql.NullString{}, want: "0", wantOK: false},
		{name: "Garbage", raw: sql.NullString{String: "abc", Valid: true}, want: "0", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := database.ParseAmount(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDateOf_IgnoresTimezone(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2024, 3, 1, 23, 30, 0, 0, loc)

	assert.Equal(t, civil.Date{Year: 2024, Month: time.March, Day: 1}, database.DateOf(ts))
	assert.Equal(t, "2024-03-01", database.DateArg(database.DateOf(ts)))
}

func TestNullDate(t *testing.T) {
	assert.Nil(t, database.NullDateOf(sql.NullTime{}))
	assert.Nil(t, database.NullDateArg(nil))

	d := civil.Date{Year: 2024, Month: time.December, Day: 31}
	got := database.NullDateOf(sql.NullTime{Time: d.In(time.UTC), Valid: true})
	assert.Equal(t, &d, got)
	assert.Equal(t, "2024-12-31", database.NullDateArg(&d))
}

func TestLookupError(t *testing.T) {
	errMalformed := errors.New("malformed amount")
	errNotFound := errors.New("not found")
	errConn := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "NoRows", err: sql.ErrNoRows, want: errNotFound},
		{name: "Malformed", err: errMalformed, want: errNotFound},
		{name: "Other", err: errConn, want: errConn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := database.LookupError(tt.err, errMalformed, errNotFound, "getting row")
			assert.ErrorIs(t, got, tt.want)
		})
	}

	assert.EqualError(t, database.LookupError(errConn, errMalformed, errNotFound, "getting row"), "getting row: connection reset")
}
