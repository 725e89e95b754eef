package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/catalog"
	"github.com/newgestao/drivercontrol/internal/database"
	"github.com/newgestao/drivercontrol/internal/revenue"
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

var errMalformedAmount = errors.New("malformed revenue amount")

// scanRevenue reads a revenue row joined with its platform.
// Expected column order: id, user_id, date, amount, platform_id, trips, hours, kilometers, notes,
// created_at, updated_at, platform kind, platform name, platform color, platform owner_id
func scanRevenue(s scanner) (*revenue.Record, error) {
	var r revenue.Record

	var date sql.NullTime

	var amount, hours, km sql.NullString

	var pKind, pName, pColor sql.NullString

	var pOwner *uuid.UUID

	if err := s.Scan(
		&r.ID, &r.UserID, &date, &amount, &r.PlatformID, &r.Trips, &hours, &km, &r.Notes,
		&r.CreatedAt, &r.UpdatedAt,
		&pKind, &pName, &pColor, &pOwner,
	); err != nil {
		return nil, err
	}

	r.Date = database.DateOf(date.Time)
	r.Hours, _ = database.ParseAmount(hours)
	r.Kilometers, _ = database.ParseAmount(km)

	if r.PlatformID != nil && pKind.Valid {
		r.Platform = &catalog.Platform{
			ID:      *r.PlatformID,
			Kind:    catalog.Kind(pKind.String),
			Name:    pName.String,
			Color:   pColor.String,
			OwnerID: pOwner,
		}
	}

	d, ok := database.ParseAmount(amount)
	if !ok {
		return &r, errMalformedAmount
	}

	r.Amount = d

	return &r, nil
}

const selectRevenueColumns = `
	r.id, r.user_id, r.date, r.amount::text, r.platform_id, r.trips, r.hours::text, r.kilometers::text, r.notes,
	r.created_at, r.updated_at, p.kind, p.name, p.color, p.owner_id
`

const fromRevenues = `
	FROM revenues r
	LEFT JOIN platforms p ON r.platform_id = p.id
`

const insertRevenue = `
	INSERT INTO revenues (user_id, date, amount, platform_id, trips, hours, kilometers, notes, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	RETURNING id, created_at
`

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func insert(ctx context.Context, q queryRower, r *revenue.Record) error {
	return q.QueryRowContext(ctx, insertRevenue,
		r.UserID,
		database.DateArg(r.Date),
		r.Amount.String(),
		r.PlatformID,
		r.Trips,
		r.Hours.String(),
		r.Kilometers.String(),
		r.Notes,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *Store) CreateRevenue(ctx context.Context, r *revenue.Record) error {
	if err := insert(ctx, s.db, r); err != nil {
		return fmt.Errorf("creating revenue: %w", err)
	}

	return nil
}

func (s *Store) GetRevenue(ctx context.Context, userID, id uuid.UUID) (*revenue.Record, error) {
	query := `SELECT ` + selectRevenueColumns + fromRevenues + `WHERE r.id = $1 AND r.user_id = $2`

	return getRevenue(ctx, s.db.QueryRowContext(ctx, query, id, userID))
}

func getRevenue(ctx context.Context, row scanner) (*revenue.Record, error) {
	r, err := scanRevenue(row)
	if errors.Is(err, errMalformedAmount) {
		slog.WarnContext(ctx, "hiding revenue with malformed amount", "id", r.ID, "date", r.Date.String())
	}

	if err != nil {
		return nil, database.LookupError(err, errMalformedAmount, revenue.ErrNotFound, "getting revenue")
	}

	return r, nil
}

type rowsQuerier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func list(ctx context.Context, q rowsQuerier, filter revenue.ListFilter) ([]*revenue.Record, error) {
	query := `SELECT ` + selectRevenueColumns + fromRevenues + `WHERE r.user_id = $1`

	args := []any{filter.UserID}

	argIdx := 2

	if filter.StartDate != nil {
		query += fmt.Sprintf(" AND r.date >= $%d", argIdx)

		args = append(args, database.DateArg(*filter.StartDate))
		argIdx++
	}

	if filter.EndDate != nil {
		query += fmt.Sprintf(" AND r.date <= $%d", argIdx)

		args = append(args, database.DateArg(*filter.EndDate))
		argIdx++
	}

	if filter.PlatformID != nil {
		query += fmt.Sprintf(" AND r.platform_id = $%d", argIdx)

		args = append(args, *filter.PlatformID)
	}

	query += " ORDER BY r.date ASC, r.created_at ASC"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing revenues: %w", err)
	}
	defer rows.Close()

	var records []*revenue.Record

	for rows.Next() {
		r, err := scanRevenue(rows)
		if errors.Is(err, errMalformedAmount) {
			slog.Warn("skipping revenue with malformed amount", "id", r.ID, "date", r.Date.String())
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("scanning revenue: %w", err)
		}

		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating revenues: %w", err)
	}

	return records, nil
}

func (s *Store) ListRevenues(ctx context.Context, filter revenue.ListFilter) ([]*revenue.Record, error) {
	return list(ctx, s.db, filter)
}

func (s *Store) UpdateRevenue(ctx context.Context, r *revenue.Record) error {
	query := `
		UPDATE revenues
		SET date = $1, amount = $2, platform_id = $3, trips = $4, hours = $5, kilometers = $6, notes = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
	`

	res, err := s.db.ExecContext(ctx, query,
		database.DateArg(r.Date),
		r.Amount.String(),
		r.PlatformID,
		r.Trips,
		r.Hours.String(),
		r.Kilometers.String(),
		r.Notes,
		r.ID,
		r.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating revenue: %w", err)
	}

	return expectAffected(res)
}

func (s *Store) DeleteRevenue(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM revenues WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting revenue: %w", err)
	}

	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return revenue.ErrNotFound
	}

	return nil
}

// importLockKey serializes concurrent imports of the same user and window.
func importLockKey(userID uuid.UUID, minDate, maxDate civil.Date) int64 {
	h := fnv.New64a()
	h.Write(userID[:])
	h.Write([]byte(minDate.String()))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.String()))

	return int64(h.Sum64())
}

type importTx struct {
	tx     *sql.Tx
	userID uuid.UUID
}

func (s *Store) BeginImport(ctx context.Context, userID uuid.UUID, minDate, maxDate civil.Date) (revenue.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(userID, minDate, maxDate)); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring import lock: %w", err)
	}

	return &importTx{tx: dbTx, userID: userID}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

func (itx *importTx) FindDuplicates(ctx context.Context, params []revenue.CreateParams) ([]*revenue.Record, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date     civil.Date
		Platform uuid.UUID
		Amount   string
	}

	keyOf := func(d civil.Date, platformID *uuid.UUID, amount string) lookupKey {
		k := lookupKey{Date: d, Amount: amount}
		if platformID != nil {
			k.Platform = *platformID
		}

		return k
	}

	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[keyOf(p.Date, p.PlatformID, p.Amount.StringFixed(2))] = struct{}{}
	}

	existing, err := list(ctx, itx.tx, revenue.ListFilter{
		UserID:    itx.userID,
		StartDate: &minDate,
		EndDate:   &maxDate,
	})
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}

	var duplicates []*revenue.Record

	for _, r := range existing {
		if _, found := keySet[keyOf(r.Date, r.PlatformID, r.Amount.StringFixed(2))]; found {
			duplicates = append(duplicates, r)
		}
	}

	return duplicates, nil
}

func (itx *importTx) CreateRevenues(ctx context.Context, records []*revenue.Record) error {
	for _, r := range records {
		if err := insert(ctx, itx.tx, r); err != nil {
			return fmt.Errorf("creating revenue: %w", err)
		}
	}

	return nil
}
