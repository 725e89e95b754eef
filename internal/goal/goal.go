package goal

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = errors.New("goal not found")
	ErrInvalidTarget = errors.New("goal target must be greater than zero")
	ErrInvalidDate   = errors.New("goal date is required")
)

// DailyGoal is the revenue a driver aims for on one date. There is at most
// one per user per date.
type DailyGoal struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Date      civil.Date
	Target    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Met is the single comparison used for both per-day and per-period goal
// status. Reaching the target exactly counts as met.
func Met(revenue, target decimal.Decimal) bool {
	return revenue.GreaterThanOrEqual(target)
}
