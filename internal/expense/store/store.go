package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/database"
	"github.com/newgestao/drivercontrol/internal/expense"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

var errMalformedAmount = errors.New("malformed expense amount")

// Expected column order: see selectExpenseColumns.
func scanExpense(s scanner) (*expense.Record, error) {
	var r expense.Record

	var date sql.NullTime

	var amount, payment sql.NullString

	var installmentNumber, installmentCount sql.NullInt64

	var cKind, cName, cIcon sql.NullString

	var cOwner *uuid.UUID

	var fID *uuid.UUID

	var fEnergy, fQty, fPrice sql.NullString

	var fOdometer sql.NullInt64

	var fFull sql.NullBool

	if err := s.Scan(
		&r.ID, &r.UserID, &date, &amount, &r.CategoryID, &payment,
		&installmentNumber, &installmentCount, &r.Description, &r.CreatedAt, &r.UpdatedAt,
		&cKind, &cName, &cIcon, &cOwner,
		&fID, &fEnergy, &fQty, &fPrice, &fOdometer, &fFull,
	); err != nil {
		return nil, err
	}

	r.Date = database.DateOf(date.Time)
	r.PaymentMethod = expense.PaymentMethod(payment.String)

	if installmentNumber.Valid && installmentCount.Valid {
		r.InstallmentNumber = new(int(installmentNumber.Int64))
		r.InstallmentCount = new(int(installmentCount.Int64))
	}

	if r.CategoryID != nil && cKind.Valid {
		r.Category = &catalog.Category{
			ID:      *r.CategoryID,
			Kind:    catalog.Kind(cKind.String),
			Name:    cName.String,
			OwnerID: cOwner,
		}
		if cIcon.Valid {
			r.Category.Icon = &cIcon.String
		}
	}

	if fID != nil {
		qty, _ := database.ParseAmount(fQty)
		price, _ := database.ParseAmount(fPrice)
		r.FuelLog = &expense.FuelLog{
			ID:           *fID,
			ExpenseID:    r.ID,
			Energy:       expense.Energy(fEnergy.String),
			Quantity:     qty,
			PricePerUnit: price,
			Odometer:     int(fOdometer.Int64),
			FullTank:     fFull.Bool,
		}
	}

	d, ok := database.ParseAmount(amount)
	if !ok {
		return &r, errMalformedAmount
	}

	r.Amount = d

	return &r, nil
}

const selectExpenseColumns = `
	e.id, e.user_id, e.date, e.amount::text, e.category_id, e.payment_method,
	e.installment_number, e.installment_count, e.description, e.created_at, e.updated_at,
	c.kind, c.name, c.icon, c.owner_id,
	f.id, f.energy, f.quantity::text, f.price_per_unit::text, f.odometer, f.full_tank
`

const fromExpenses = `
	FROM expenses e
	LEFT JOIN expense_categories c ON e.category_id = c.id
	LEFT JOIN fuel_logs f ON f.expense_id = e.id
`

func nullPayment(p expense.PaymentMethod) any {
	if p == "" {
		return nil
	}

	return string(p)
}

func insertExpense(ctx context.Context, tx *sql.Tx, r *expense.Record) error {
	query := `
		INSERT INTO expenses (user_id, date, amount, category_id, payment_method, installment_number, installment_count, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, created_at
	`

	err := tx.QueryRowContext(ctx, query,
		r.UserID,
		database.DateArg(r.Date),
		r.Amount.String(),
		r.CategoryID,
		nullPayment(r.PaymentMethod),
		r.InstallmentNumber,
		r.InstallmentCount,
		r.Description,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}

	if r.FuelLog == nil {
		return nil
	}

	return upsertFuelLog(ctx, tx, r.ID, r.FuelLog)
}

func upsertFuelLog(ctx context.Context, tx *sql.Tx, expenseID uuid.UUID, f *expense.FuelLog) error {
	query := `
		INSERT INTO fuel_logs (expense_id, energy, quantity, price_per_unit, odometer, full_tank)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (expense_id) DO UPDATE
		SET energy = EXCLUDED.energy, quantity = EXCLUDED.quantity, price_per_unit = EXCLUDED.price_per_unit,
			odometer = EXCLUDED.odometer, full_tank = EXCLUDED.full_tank
		RETURNING id
	`

	err := tx.QueryRowContext(ctx, query,
		expenseID,
		f.Energy,
		f.Quantity.String(),
		f.PricePerUnit.String(),
		f.Odometer,
		f.FullTank,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("upserting fuel log: %w", err)
	}

	f.ExpenseID = expenseID

	return nil
}

// CreateExpense writes the expense and its fuel log in one database transaction.
func (s *Store) CreateExpense(ctx context.Context, r *expense.Record) error {
	return s.CreateExpenses(ctx, []*expense.Record{r})
}

func (s *Store) CreateExpenses(ctx context.Context, records []*expense.Record) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	for _, r := range records {
		if err := insertExpense(ctx, dbTx, r); err != nil {
			return fmt.Errorf("creating expense: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetExpense(ctx context.Context, userID, id uuid.UUID) (*expense.Record, error) {
	query := `SELECT ` + selectExpenseColumns + fromExpenses + `WHERE e.id = $1 AND e.user_id = $2`

	r, err := scanExpense(s.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, errMalformedAmount) {
		slog.WarnContext(ctx, "hiding expense with malformed amount", "id", r.ID, "date", r.Date.String())
	}

	if err != nil {
		return nil, database.LookupError(err, errMalformedAmount, expense.ErrNotFound, "getting expense")
	}

	return r, nil
}

func (s *Store) ListExpenses(ctx context.Context, filter expense.ListFilter) ([]*expense.Record, error) {
	query := `SELECT ` + selectExpenseColumns + fromExpenses + `WHERE e.user_id = $1`

	args := []any{filter.UserID}

	argIdx := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND e.date >= $%d", argIdx)

		args = append(args, database.DateArg(*filter.StartDate))
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND e.date <= $%d", argIdx)

		args = append(args, database.DateArg(*filter.EndDate))
		argIdx++
	}

	if filter.CategoryID != nil {
		query += fmt.Sprintf(" AND e.category_id = $%d", argIdx)

		args = append(args, *filter.CategoryID)
	}

	if filter.FuelOnly {
		query += " AND f.id IS NOT NULL"
	}

	query += " ORDER BY e.date ASC, e.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var records []*expense.Record

	for rows.Next() {
		r, err := scanExpense(rows)
		if errors.Is(err, errMalformedAmount) {
			slog.Warn("skipping expense with malformed amount", "id", r.ID, "date", r.Date.String())
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating expenses: %w", err)
	}

	return records, nil
}

// UpdateExpense rewrites the expense and replaces or removes its fuel log atomically.
func (s *Store) UpdateExpense(ctx context.Context, r *expense.Record) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		UPDATE expenses
		SET date = $1, amount = $2, category_id = $3, payment_method = $4,
			installment_number = $5, installment_count = $6, description = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
	`

	res, err := dbTx.ExecContext(ctx, query,
		database.DateArg(r.Date),
		r.Amount.String(),
		r.CategoryID,
		nullPayment(r.PaymentMethod),
		r.InstallmentNumber,
		r.InstallmentCount,
		r.Description,
		r.ID,
		r.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return expense.ErrNotFound
	}

	if r.FuelLog != nil {
		if err := upsertFuelLog(ctx, dbTx, r.ID, r.FuelLog); err != nil {
			return err
		}
	} else if _, err := dbTx.ExecContext(ctx, `DELETE FROM fuel_logs WHERE expense_id = $1`, r.ID); err != nil {
		return fmt.Errorf("removing fuel log: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return expense.ErrNotFound
	}

	return nil
}
