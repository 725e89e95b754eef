package expense

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	CreateExpense(ctx context.Context, r *Record) error
	CreateExpenses(ctx context.Context, records []*Record) error
	GetExpense(ctx context.Context, userID, id uuid.UUID) (*Record, error)
	ListExpenses(ctx context.Context, filter ListFilter) ([]*Record, error)
	UpdateExpense(ctx context.Context, r *Record) error
	DeleteExpense(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	UserID        uuid.UUID
	Date          civil.Date
	Amount        decimal.Decimal
	CategoryID    *uuid.UUID
	PaymentMethod PaymentMethod
	Description   string
	FuelLog       *FuelLog
}

type InstallmentParams struct {
	UserID        uuid.UUID
	FirstDate     civil.Date
	Total         decimal.Decimal
	Count         int
	CategoryID    *uuid.UUID
	PaymentMethod PaymentMethod
	Description   string
}

// ListFilter scopes a listing to one user. Nil fields are not filtered on.
type ListFilter struct {
	UserID     uuid.UUID
	StartDate  *civil.Date
	EndDate    *civil.Date
	CategoryID *uuid.UUID
	FuelOnly   bool
}

const maxInstallments = 48

func validateRecord(r *Record) error {
	if r.Date == (civil.Date{}) {
		return ErrInvalidDate
	}

	if !r.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if !r.PaymentMethod.Valid() {
		return ErrInvalidPayment
	}

	if (r.InstallmentNumber == nil) != (r.InstallmentCount == nil) {
		return ErrInstallmentPosition
	}

	if r.InstallmentCount != nil {
		if *r.InstallmentNumber < 1 || *r.InstallmentNumber > *r.InstallmentCount {
			return ErrInstallmentPosition
		}

		if r.FuelLog != nil {
			return ErrInstallmentAndFuel
		}
	}

	if r.FuelLog != nil {
		return validateFuelLog(r.FuelLog)
	}

	return nil
}

func validateFuelLog(f *FuelLog) error {
	if !f.Energy.Valid() {
		return ErrInvalidEnergy
	}

	if !f.Quantity.IsPositive() || f.PricePerUnit.IsNegative() || f.Odometer < 0 {
		return ErrInvalidFuelLog
	}

	return nil
}

// Create stores the expense and, when present, its fuel log atomically. A fuel
// log without a unit price gets one derived from the paid amount.
func (s *Service) Create(ctx context.Context, params CreateParams) (*Record, error) {
	r := &Record{
		UserID:        params.UserID,
		Date:          params.Date,
		Amount:        params.Amount,
		CategoryID:    params.CategoryID,
		PaymentMethod: params.PaymentMethod,
		Description:   params.Description,
	}

	if params.FuelLog != nil {
		f := *params.FuelLog
		r.FuelLog = &f
	}

	if err := validateRecord(r); err != nil {
		return nil, err
	}

	if r.FuelLog != nil && r.FuelLog.PricePerUnit.IsZero() {
		r.FuelLog.PricePerUnit = r.Amount.DivRound(r.FuelLog.Quantity, 3)
	}

	if err := s.repo.CreateExpense(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// CreateInstallments splits a purchase into Count monthly expenses starting at
// FirstDate. Cents that do not divide evenly go to the first installment.
func (s *Service) CreateInstallments(ctx context.Context, params InstallmentParams) ([]*Record, error) {
	if params.Count < 2 || params.Count > maxInstallments {
		return nil, ErrInvalidInstallments
	}

	shares := SplitInstallments(params.Total, params.Count)
	records := make([]*Record, params.Count)

	for i := range params.Count {
		r := &Record{
			UserID:            params.UserID,
			Date:              period.AddMonths(params.FirstDate, i),
			Amount:            shares[i],
			CategoryID:        params.CategoryID,
			PaymentMethod:     params.PaymentMethod,
			InstallmentNumber: new(i + 1),
			InstallmentCount:  new(params.Count),
			Description:       params.Description,
		}

		if err := validateRecord(r); err != nil {
			return nil, err
		}

		records[i] = r
	}

	if err := s.repo.CreateExpenses(ctx, records); err != nil {
		return nil, err
	}

	return records, nil
}

// SplitInstallments divides total into n cent-exact shares that add back up
// to total. n must be positive.
func SplitInstallments(total decimal.Decimal, n int) []decimal.Decimal {
	count := decimal.NewFromInt(int64(n))
	base := total.Div(count).RoundDown(2)
	first := total.Sub(base.Mul(count.Sub(decimal.NewFromInt(1))))

	shares := make([]decimal.Decimal, n)
	shares[0] = first

	for i := 1; i < n; i++ {
		shares[i] = base
	}

	return shares
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Record, error) {
	return s.repo.GetExpense(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Record, error) {
	return s.repo.ListExpenses(ctx, filter)
}

func (s *Service) Update(ctx context.Context, r *Record) error {
	if err := validateRecord(r); err != nil {
		return err
	}

	return s.repo.UpdateExpense(ctx, r)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, userID, id)
}

// Consumption loads the user's refuels and recharges and computes efficiency
// between full-tank fills. A nil rng covers the whole history.
func (s *Service) Consumption(ctx context.Context, userID uuid.UUID, rng *period.Range) ([]Consumption, error) {
	filter := ListFilter{UserID: userID, FuelOnly: true}
	if rng != nil {
		filter.StartDate = &rng.Start
		filter.EndDate = &rng.End
	}

	records, err := s.repo.ListExpenses(ctx, filter)
	if err != nil {
		return nil, err
	}

	return ComputeConsumption(records), nil
}
