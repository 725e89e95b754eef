package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/newgestao/drivercontrol/internal/catalog"
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

// Expected column order: id, kind, name, color, owner_id, created_at
func scanPlatform(s scanner) (*catalog.Platform, error) {
	var p catalog.Platform

	var kind string

	if err := s.Scan(&p.ID, &kind, &p.Name, &p.Color, &p.OwnerID, &p.CreatedAt); err != nil {
		return nil, err
	}

	p.Kind = catalog.Kind(kind)

	return &p, nil
}

const selectPlatformColumns = `id, kind, name, color, owner_id, created_at`

func (s *Store) ListPlatforms(ctx context.Context, userID uuid.UUID) ([]*catalog.Platform, error) {
	query := `SELECT ` + selectPlatformColumns + `
		FROM platforms
		WHERE kind = 'system' OR owner_id = $1
		ORDER BY kind DESC, name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing platforms: %w", err)
	}
	defer rows.Close()

	var platforms []*catalog.Platform

	for rows.Next() {
		p, err := scanPlatform(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning platform: %w", err)
		}

		platforms = append(platforms, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating platforms: %w", err)
	}

	return platforms, nil
}

func (s *Store) GetPlatform(ctx context.Context, id uuid.UUID) (*catalog.Platform, error) {
	query := `SELECT ` + selectPlatformColumns + ` FROM platforms WHERE id = $1`

	p, err := scanPlatform(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("getting platform: %w", err)
	}

	return p, nil
}

// FindPlatformByName prefers the user's own platform over a system one with the same name.
func (s *Store) FindPlatformByName(ctx context.Context, userID uuid.UUID, name string) (*catalog.Platform, error) {
	query := `SELECT ` + selectPlatformColumns + `
		FROM platforms
		WHERE lower(name) = lower($2) AND (kind = 'system' OR owner_id = $1)
		ORDER BY kind ASC
		LIMIT 1`

	p, err := scanPlatform(s.db.QueryRowContext(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, catalog.ErrNotFound
		}

		return nil, fmt.Errorf("finding platform: %w", err)
	}

	return p, nil
}

func (s *Store) CreatePlatform(ctx context.Context, p *catalog.Platform) error {
	query := `
		INSERT INTO platforms (kind, name, color, owner_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, p.Kind, p.Name, p.Color, p.OwnerID).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating platform: %w", err)
	}

	return nil
}

func (s *Store) ListCategories(ctx context.Context, userID uuid.UUID) ([]*catalog.Category, error) {
	query := `
		SELECT id, kind, name, icon, owner_id, created_at
		FROM expense_categories
		WHERE kind = 'system' OR owner_id = $1
		ORDER BY kind DESC, name ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*catalog.Category

	for rows.Next() {
		var c catalog.Category

		var kind string

		var icon sql.NullString

		if err := rows.Scan(&c.ID, &kind, &c.Name, &icon, &c.OwnerID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		c.Kind = catalog.Kind(kind)
		if icon.Valid {
			c.Icon = &icon.String
		}

		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, c *catalog.Category) error {
	query := `
		INSERT INTO expense_categories (kind, name, icon, owner_id, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, c.Kind, c.Name, c.Icon, c.OwnerID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}
