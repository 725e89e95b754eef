package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/database"
	"github.com/newgestao/drivercontrol/internal/goal"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

var errMalformedTarget = errors.New("malformed goal target")

// Expected column order: id, user_id, date, target, created_at, updated_at
func scanGoal(s scanner) (*goal.DailyGoal, error) {
	var g goal.DailyGoal

	var date sql.NullTime

	var target sql.NullString

	if err := s.Scan(&g.ID, &g.UserID, &date, &target, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}

	g.Date = database.DateOf(date.Time)

	d, ok := database.ParseAmount(target)
	if !ok {
		return &g, errMalformedTarget
	}

	g.Target = d

	return &g, nil
}

type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// upsert inserts or replaces the goal keyed on (user_id, date).
func upsert(ctx context.Context, q rowQuerier, g *goal.DailyGoal) error {
	query := `
		INSERT INTO daily_goals (user_id, date, target, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (user_id, date) DO UPDATE SET target = EXCLUDED.target, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return q.QueryRowContext(ctx, query, g.UserID, database.DateArg(g.Date), g.Target.String()).
		Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt)
}

func (s *Store) UpsertGoal(ctx context.Context, g *goal.DailyGoal) error {
	if err := upsert(ctx, s.db, g); err != nil {
		return fmt.Errorf("upserting goal: %w", err)
	}

	return nil
}

// UpsertGoals writes every goal in one transaction.
func (s *Store) UpsertGoals(ctx context.Context, goals []*goal.DailyGoal) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, g := range goals {
		if err := upsert(ctx, dbTx, g); err != nil {
			return fmt.Errorf("upserting goal %s: %w", g.Date, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetGoal(ctx context.Context, userID uuid.UUID, date civil.Date) (*goal.DailyGoal, error) {
	query := `
		SELECT id, user_id, date, target::text, created_at, updated_at
		FROM daily_goals
		WHERE user_id = $1 AND date = $2
	`

	g, err := scanGoal(s.db.QueryRowContext(ctx, query, userID, database.DateArg(date)))
	if errors.Is(err, errMalformedTarget) {
		slog.WarnContext(ctx, "hiding goal with malformed target", "id", g.ID, "date", g.Date.String())
	}

	if err != nil {
		return nil, database.LookupError(err, errMalformedTarget, goal.ErrNotFound, "getting goal")
	}

	return g, nil
}

func (s *Store) ListGoals(ctx context.Context, userID uuid.UUID, start, end civil.Date) ([]*goal.DailyGoal, error) {
	query := `
		SELECT id, user_id, date, target::text, created_at, updated_at
		FROM daily_goals
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID, database.DateArg(start), database.DateArg(end))
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	defer rows.Close()

	var goals []*goal.DailyGoal

	for rows.Next() {
		g, err := scanGoal(rows)
		if errors.Is(err, errMalformedTarget) {
			slog.Warn("skipping goal with malformed target", "id", g.ID, "date", g.Date.String())
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}

		goals = append(goals, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating goals: %w", err)
	}

	return goals, nil
}

func (s *Store) DeleteGoal(ctx context.Context, userID uuid.UUID, date civil.Date) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM daily_goals WHERE user_id = $1 AND date = $2`, userID, database.DateArg(date))
	if err != nil {
		return fmt.Errorf("deleting goal: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return goal.ErrNotFound
	}

	return nil
}
