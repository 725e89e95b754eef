package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/newgestao/drivercontrol/internal/expense"
	"github.com/newgestao/drivercontrol/internal/goal"
	"github.com/newgestao/drivercontrol/internal/period"
	"github.com/newgestao/drivercontrol/internal/recurring"
	"github.com/newgestao/drivercontrol/internal/revenue"
)

//go:generate mockgen -source=service.go -destination=source_mock.go -package=dashboard
type RevenueSource interface {
	List(ctx context.Context, filter revenue.ListFilter) ([]*revenue.Record, error)
}

type ExpenseSource interface {
	List(ctx context.Context, filter expense.ListFilter) ([]*expense.Record, error)
}

type RecurringSource interface {
	List(ctx context.Context, userID uuid.UUID) ([]*recurring.Expense, error)
}

type GoalSource interface {
	List(ctx context.Context, userID uuid.UUID, rng period.Range) ([]*goal.DailyGoal, error)
}

type Service struct {
	revenues  RevenueSource
	expenses  ExpenseSource
	recurring RecurringSource
	goals     GoalSource
	clock     period.Clock
}

func NewService(revenues RevenueSource, expenses ExpenseSource, recurring RecurringSource, goals GoalSource, clock period.Clock) *Service {
	return &Service{
		revenues:  revenues,
		expenses:  expenses,
		recurring: recurring,
		goals:     goals,
		clock:     clock,
	}
}

// Report is everything the dashboard renders for one period.
type Report struct {
	Mode      period.Mode
	Range     period.Range
	Aggregate PeriodAggregate
	Series    []ChartPoint
	Breakdown Breakdown
}

// Resolve turns filter state into a range relative to the service clock.
func (s *Service) Resolve(mode period.Mode, sel period.Selector) (period.Range, error) {
	return period.Resolve(mode, sel, s.clock.Today())
}

// Snapshot holds the raw records a report is computed from.
type Snapshot struct {
	Revenues  []*revenue.Record
	Expenses  []*expense.Record
	Recurring []*recurring.Expense
	Goals     []*goal.DailyGoal
}

// Fetch loads the four inputs concurrently. The first failure cancels the
// other fetches and is returned.
func (s *Service) Fetch(ctx context.Context, userID uuid.UUID, rng period.Range) (*Snapshot, error) {
	var snap Snapshot

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := s.revenues.List(ctx, revenue.ListFilter{UserID: userID, StartDate: &rng.Start, EndDate: &rng.End})
		if err != nil {
			return fmt.Errorf("fetching revenues: %w", err)
		}

		snap.Revenues = records

		return nil
	})

	g.Go(func() error {
		records, err := s.expenses.List(ctx, expense.ListFilter{UserID: userID, StartDate: &rng.Start, EndDate: &rng.End})
		if err != nil {
			return fmt.Errorf("fetching expenses: %w", err)
		}

		snap.Expenses = records

		return nil
	})

	g.Go(func() error {
		records, err := s.recurring.List(ctx, userID)
		if err != nil {
			return fmt.Errorf("fetching recurring expenses: %w", err)
		}

		snap.Recurring = records

		return nil
	})

	g.Go(func() error {
		records, err := s.goals.List(ctx, userID, rng)
		if err != nil {
			return fmt.Errorf("fetching goals: %w", err)
		}

		snap.Goals = records

		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snap, nil
}

// Report fetches the period's records and runs the aggregation pipeline.
func (s *Service) Report(ctx context.Context, userID uuid.UUID, mode period.Mode, rng period.Range) (*Report, error) {
	rng = period.NewRange(rng.Start, rng.End)

	snap, err := s.Fetch(ctx, userID, rng)
	if err != nil {
		return nil, err
	}

	return Build(mode, rng, snap), nil
}

// Build runs the pure pipeline over an already fetched snapshot.
func Build(mode period.Mode, rng period.Range, snap *Snapshot) *Report {
	if snap == nil {
		snap = &Snapshot{}
	}

	return &Report{
		Mode:      mode,
		Range:     rng,
		Aggregate: Aggregate(snap.Revenues, snap.Expenses, snap.Recurring, snap.Goals, rng),
		Series:    BuildChartSeries(rng, snap.Revenues, snap.Expenses),
		Breakdown: ComputeBreakdown(rng, snap.Revenues, snap.Expenses),
	}
}
