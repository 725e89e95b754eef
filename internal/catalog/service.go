package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=catalog
type Repository interface {
	ListPlatforms(ctx context.Context, userID uuid.UUID) ([]*Platform, error)
	GetPlatform(ctx context.Context, id uuid.UUID) (*Platform, error)
	FindPlatformByName(ctx context.Context, userID uuid.UUID, name string) (*Platform, error)
	CreatePlatform(ctx context.Context, p *Platform) error
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*Category, error)
	CreateCategory(ctx context.Context, c *Category) error
}

// AliasResolver looks up a platform through the user's learned aliases.
type AliasResolver interface {
	Suggest(ctx context.Context, userID uuid.UUID, raw string) (uuid.UUID, bool, error)
}

type Service struct {
	repo    Repository
	aliases AliasResolver
}

func NewService(repo Repository, aliases AliasResolver) *Service {
	return &Service{repo: repo, aliases: aliases}
}

func (s *Service) ListPlatforms(ctx context.Context, userID uuid.UUID) ([]*Platform, error) {
	return s.repo.ListPlatforms(ctx, userID)
}

// GetPlatform returns the platform when userID may use it.
func (s *Service) GetPlatform(ctx context.Context, userID, id uuid.UUID) (*Platform, error) {
	p, err := s.repo.GetPlatform(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.VisibleTo(userID) {
		return nil, ErrNotFound
	}

	return p, nil
}

func (s *Service) ListCategories(ctx context.Context, userID uuid.UUID) ([]*Category, error) {
	return s.repo.ListCategories(ctx, userID)
}

func (s *Service) CreatePlatform(ctx context.Context, userID uuid.UUID, name, color string) (*Platform, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	p := &Platform{
		Kind:    KindCustom,
		Name:    name,
		Color:   color,
		OwnerID: &userID,
	}
	if err := s.repo.CreatePlatform(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *Service) CreateCategory(ctx context.Context, userID uuid.UUID, name string, icon *string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	c := &Category{
		Kind:    KindCustom,
		Name:    name,
		Icon:    icon,
		OwnerID: &userID,
	}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

// ResolvePlatform maps a platform label from a statement file to a platform
// the user can see: an exact (case-insensitive) name first, then a learned alias.
func (s *Service) ResolvePlatform(ctx context.Context, userID uuid.UUID, name string) (*Platform, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNotFound
	}

	p, err := s.repo.FindPlatformByName(ctx, userID, name)
	if err == nil {
		return p, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("finding platform by name: %w", err)
	}

	if s.aliases == nil {
		return nil, ErrNotFound
	}

	id, ok, err := s.aliases.Suggest(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("resolving platform alias: %w", err)
	}

	if !ok {
		return nil, ErrNotFound
	}

	p, err = s.repo.GetPlatform(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.VisibleTo(userID) {
		return nil, ErrNotFound
	}

	return p, nil
}
