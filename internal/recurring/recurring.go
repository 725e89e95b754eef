package recurring

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("recurring expense not found")
	ErrInvalidAmount = errors.New("monthly amount must be greater than zero")
	ErrInvalidWindow = errors.New("end date must not be before start date")
)

// Expense is a monthly obligation (car rental, insurance, phone plan) whose
// cost is spread over every day of [StartDate, EndDate]. A nil EndDate means
// open-ended. Active is a display flag; deactivating closes the window.
type Expense struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Name          string
	MonthlyAmount decimal.Decimal
	StartDate     civil.Date
	EndDate       *civil.Date
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

// ActiveOn reports whether the expense accrues cost on day.
func (e *Expense) ActiveOn(day civil.Date) bool {
	if e == nil || day.Before(e.StartDate) {
		return false
	}

	return e.EndDate == nil || !day.After(*e.EndDate)
}

func validateWindow(start civil.Date, end *civil.Date) error {
	if end != nil && end.Before(start) {
		return ErrInvalidWindow
	}

	return nil
}
