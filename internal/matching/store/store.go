package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/matching"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, userID uuid.UUID, raw string) (uuid.UUID, error) {
	query := `
		SELECT platform_id
		FROM platform_aliases
		WHERE user_id = $1 AND $2 ILIKE '%' || raw_pattern || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`

	var platformID uuid.UUID

	err := s.db.QueryRowContext(ctx, query, userID, raw).Scan(&platformID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}

		return uuid.Nil, fmt.Errorf("finding alias match: %w", err)
	}

	return platformID, nil
}

func (s *Store) CreateMapping(ctx context.Context, userID uuid.UUID, rawPattern string, platformID uuid.UUID) error {
	query := `
		INSERT INTO platform_aliases (user_id, raw_pattern, platform_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, lower(raw_pattern)) DO UPDATE SET platform_id = EXCLUDED.platform_id
	`

	_, err := s.db.ExecContext(ctx, query, userID, rawPattern, platformID)
	if err != nil {
		return fmt.Errorf("creating alias: %w", err)
	}

	return nil
}

func (s *Store) ListMappings(ctx context.Context, userID uuid.UUID) ([]*matching.Alias, error) {
	query := `
		SELECT id, user_id, raw_pattern, platform_id, created_at
		FROM platform_aliases
		WHERE user_id = $1
		ORDER BY raw_pattern ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing aliases: %w", err)
	}
	defer rows.Close()

	var aliases []*matching.Alias

	for rows.Next() {
		var a matching.Alias
		if err := rows.Scan(&a.ID, &a.UserID, &a.RawPattern, &a.PlatformID, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning alias: %w", err)
		}

		aliases = append(aliases, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating aliases: %w", err)
	}

	return aliases, nil
}

func (s *Store) DeleteMapping(ctx context.Context, userID, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM platform_aliases WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting alias: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return matching.ErrNotFound
	}

	return nil
}
