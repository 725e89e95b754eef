package expense

import (
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/catalog"
)

var (
	ErrNotFound            = errors.New("expense not found")
	ErrInvalidAmount       = errors.New("expense amount must be greater than zero")
	ErrInvalidDate         = errors.New("expense date is required")
	ErrInvalidPayment      = errors.New("invalid payment method")
	ErrInvalidInstallments = errors.New("installment count must be between 2 and 48")
	ErrInvalidFuelLog      = errors.New("fuel log quantity must be greater than zero")
	ErrInvalidEnergy       = errors.New("invalid energy type")
	ErrInstallmentAndFuel  = errors.New("installment expenses cannot carry a fuel log")
	ErrInstallmentPosition = errors.New("installment number must be within the installment count")
)

// PaymentMethod records how an expense was paid. The empty value means unknown.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentDebit    PaymentMethod = "debit"
	PaymentCredit   PaymentMethod = "credit"
	PaymentPix      PaymentMethod = "pix"
	PaymentFuelCard PaymentMethod = "fuel_card"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case "", PaymentCash, PaymentDebit, PaymentCredit, PaymentPix, PaymentFuelCard:
		return true
	}

	return false
}

// Energy distinguishes a combustion refuel (liters) from an EV recharge (kWh).
type Energy string

const (
	EnergyFuel     Energy = "fuel"
	EnergyElectric Energy = "electric"
)

func (e Energy) Valid() bool {
	return e == EnergyFuel || e == EnergyElectric
}

// Unit is the quantity unit shown next to the energy type.
func (e Energy) Unit() string {
	if e == EnergyElectric {
		return "kWh"
	}

	return "L"
}

// Record is a single outgoing payment. Installment fields are set together or not at all.
type Record struct {
	ID                uuid.UUID
	UserID            uuid.UUID
	Date              civil.Date
	Amount            decimal.Decimal
	CategoryID        *uuid.UUID
	Category          *catalog.Category // Loaded via JOIN
	PaymentMethod     PaymentMethod
	InstallmentNumber *int
	InstallmentCount  *int
	Description       string
	FuelLog           *FuelLog
	CreatedAt         time.Time
	UpdatedAt         *time.Time
}

// FuelLog details a refuel or recharge. It always belongs to exactly one
// expense, which carries the money, so it is never summed on its own.
type FuelLog struct {
	ID           uuid.UUID
	ExpenseID    uuid.UUID
	Energy       Energy
	Quantity     decimal.Decimal
	PricePerUnit decimal.Decimal
	Odometer     int
	FullTank     bool
}
