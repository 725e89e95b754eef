package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/database"
	"github.com/newgestao/drivercontrol/internal/recurring"
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

var errMalformedAmount = errors.New("malformed monthly amount")

// Expected column order: id, user_id, name, monthly_amount, start_date, end_date, active, created_at, updated_at
func scanExpense(s scanner) (*recurring.Expense, error) {
	var e recurring.Expense

	var amount sql.NullString

	var start sql.NullTime

	var end sql.NullTime

	if err := s.Scan(
		&e.ID, &e.UserID, &e.Name, &amount, &start, &end, &e.Active, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}

	d, ok := database.ParseAmount(amount)
	if !ok {
		return &e, errMalformedAmount
	}

	e.MonthlyAmount = d
	e.StartDate = database.DateOf(start.Time)
	e.EndDate = database.NullDateOf(end)

	return &e, nil
}

const selectColumns = `id, user_id, name, monthly_amount::text, start_date, end_date, active, created_at, updated_at`

func (s *Store) CreateExpense(ctx context.Context, e *recurring.Expense) error {
	query := `
		INSERT INTO recurring_expenses (user_id, name, monthly_amount, start_date, end_date, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		e.UserID,
		e.Name,
		e.MonthlyAmount.String(),
		database.DateArg(e.StartDate),
		database.NullDateArg(e.EndDate),
		e.Active,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating recurring expense: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, userID, id uuid.UUID) (*recurring.Expense, error) {
	query := `SELECT ` + selectColumns + ` FROM recurring_expenses WHERE id = $1 AND user_id = $2`

	e, err := scanExpense(s.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, errMalformedAmount) {
		slog.WarnContext(ctx, "hiding recurring expense with malformed amount", "id", e.ID)
	}

	if err != nil {
		return nil, database.LookupError(err, errMalformedAmount, recurring.ErrNotFound, "getting recurring expense")
	}

	return e, nil
}

func (s *Store) ListExpenses(ctx context.Context, userID uuid.UUID) ([]*recurring.Expense, error) {
	query := `SELECT ` + selectColumns + ` FROM recurring_expenses WHERE user_id = $1 ORDER BY start_date ASC, name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing recurring expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*recurring.Expense

	for rows.Next() {
		e, err := scanExpense(rows)
		if errors.Is(err, errMalformedAmount) {
			slog.Warn("skipping recurring expense with malformed amount", "id", e.ID)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("scanning recurring expense: %w", err)
		}

		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating recurring expenses: %w", err)
	}

	return expenses, nil
}

func (s *Store) UpdateExpense(ctx context.Context, e *recurring.Expense) error {
	query := `
		UPDATE recurring_expenses
		SET name = $1, monthly_amount = $2, start_date = $3, end_date = $4, active = $5, updated_at = NOW()
		WHERE id = $6 AND user_id = $7
	`

	res, err := s.db.ExecContext(ctx, query,
		e.Name,
		e.MonthlyAmount.String(),
		database.DateArg(e.StartDate),
		database.NullDateArg(e.EndDate),
		e.Active,
		e.ID,
		e.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating recurring expense: %w", err)
	}

	return expectAffected(res, recurring.ErrNotFound)
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recurring_expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting recurring expense: %w", err)
	}

	return expectAffected(res, recurring.ErrNotFound)
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
