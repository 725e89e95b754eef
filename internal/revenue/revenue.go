package revenue

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/catalog"
)

var (
	ErrNotFound      = errors.New("revenue not found")
	ErrInvalidAmount = errors.New("revenue amount must not be negative")
	ErrInvalidDate   = errors.New("revenue date is required")
)

// Record is the money earned on one platform on one day. A driver may log
// several records for the same date.
type Record struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Date       civil.Date
	Amount     decimal.Decimal
	PlatformID *uuid.UUID
	Platform   *catalog.Platform // Loaded via JOIN
	Trips      int
	Hours      decimal.Decimal
	Kilometers decimal.Decimal
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
