package recurring

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=recurring
type Repository interface {
	CreateExpense(ctx context.Context, e *Expense) error
	GetExpense(ctx context.Context, userID, id uuid.UUID) (*Expense, error)
	ListExpenses(ctx context.Context, userID uuid.UUID) ([]*Expense, error)
	UpdateExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo  Repository
	clock period.Clock
}

func NewService(repo Repository, clock period.Clock) *Service {
	return &Service{repo: repo, clock: clock}
}

type CreateParams struct {
	UserID        uuid.UUID
	Name          string
	MonthlyAmount decimal.Decimal
	StartDate     civil.Date
	EndDate       *civil.Date
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Expense, error) {
	if !params.MonthlyAmount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if err := validateWindow(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}

	e := &Expense{
		UserID:        params.UserID,
		Name:          params.Name,
		MonthlyAmount: params.MonthlyAmount,
		StartDate:     params.StartDate,
		EndDate:       params.EndDate,
		Active:        true,
	}
	if err := s.repo.CreateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Expense, error) {
	return s.repo.GetExpense(ctx, userID, id)
}

// List returns every recurring expense of the user, active or not. Callers
// amortize over their own range, so no date filter is applied here.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Expense, error) {
	return s.repo.ListExpenses(ctx, userID)
}

func (s *Service) Update(ctx context.Context, e *Expense) error {
	if !e.MonthlyAmount.IsPositive() {
		return ErrInvalidAmount
	}

	if err := validateWindow(e.StartDate, e.EndDate); err != nil {
		return err
	}

	if !e.Active {
		s.closeWindow(e)
	}

	return s.repo.UpdateExpense(ctx, e)
}

// Deactivate stops the expense from accruing after today. Days already
// covered keep their cost, so past reports do not change.
func (s *Service) Deactivate(ctx context.Context, userID, id uuid.UUID) (*Expense, error) {
	e, err := s.repo.GetExpense(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	e.Active = false
	s.closeWindow(e)

	if err := s.repo.UpdateExpense(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

// closeWindow ends an open or later-ending window on today, never before the
// start date.
func (s *Service) closeWindow(e *Expense) {
	end := s.clock.Today()
	if end.Before(e.StartDate) {
		end = e.StartDate
	}

	if e.EndDate == nil || end.Before(*e.EndDate) {
		e.EndDate = &end
	}
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteExpense(ctx, userID, id)
}
