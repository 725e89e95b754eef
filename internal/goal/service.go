package goal

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/newgestao/drivercontrol/internal/period"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=goal
type Repository interface {
	UpsertGoal(ctx context.Context, g *DailyGoal) error
	UpsertGoals(ctx context.Context, goals []*DailyGoal) error
	GetGoal(ctx context.Context, userID uuid.UUID, date civil.Date) (*DailyGoal, error)
	ListGoals(ctx context.Context, userID uuid.UUID, start, end civil.Date) ([]*DailyGoal, error)
	DeleteGoal(ctx context.Context, userID uuid.UUID, date civil.Date) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Upsert sets the target for date, replacing any previous one.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, date civil.Date, target decimal.Decimal) (*DailyGoal, error) {
	if date == (civil.Date{}) {
		return nil, ErrInvalidDate
	}

	if !target.IsPositive() {
		return nil, ErrInvalidTarget
	}

	g := &DailyGoal{UserID: userID, Date: date, Target: target}
	if err := s.repo.UpsertGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

// UpsertRange applies the same target to every date in rng. The days are
// written together: either all of them change or none do.
func (s *Service) UpsertRange(ctx context.Context, userID uuid.UUID, rng period.Range, target decimal.Decimal) ([]*DailyGoal, error) {
	if rng.Start == (civil.Date{}) {
		return nil, ErrInvalidDate
	}

	if !target.IsPositive() {
		return nil, ErrInvalidTarget
	}

	goals := make([]*DailyGoal, 0, rng.Days())

	for _, d := range rng.Dates() {
		goals = append(goals, &DailyGoal{UserID: userID, Date: d, Target: target})
	}

	if err := s.repo.UpsertGoals(ctx, goals); err != nil {
		return nil, err
	}

	return goals, nil
}

func (s *Service) Get(ctx context.Context, userID uuid.UUID, date civil.Date) (*DailyGoal, error) {
	return s.repo.GetGoal(ctx, userID, date)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, rng period.Range) ([]*DailyGoal, error) {
	return s.repo.ListGoals(ctx, userID, rng.Start, rng.End)
}

func (s *Service) Delete(ctx context.Context, userID uuid.UUID, date civil.Date) error {
	return s.repo.DeleteGoal(ctx, userID, date)
}
