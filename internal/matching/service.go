package matching

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	FindMatch(ctx context.Context, userID uuid.UUID, raw string) (uuid.UUID, error)
	CreateMapping(ctx context.Context, userID uuid.UUID, rawPattern string, platformID uuid.UUID) error
	ListMappings(ctx context.Context, userID uuid.UUID) ([]*Alias, error)
	DeleteMapping(ctx context.Context, userID, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the platform whose longest learned pattern is contained in raw.
// ok is false when nothing matches.
func (s *Service) Suggest(ctx context.Context, userID uuid.UUID, raw string) (uuid.UUID, bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, false, nil
	}

	id, err := s.repo.FindMatch(ctx, userID, raw)
	if err != nil {
		return uuid.Nil, false, err
	}

	return id, id != uuid.Nil, nil
}

// Learn remembers that rawPattern refers to platformID. Learning the same
// pattern twice replaces the previous platform.
func (s *Service) Learn(ctx context.Context, userID uuid.UUID, rawPattern string, platformID uuid.UUID) error {
	rawPattern = strings.TrimSpace(rawPattern)
	if rawPattern == "" {
		return ErrEmptyPattern
	}

	return s.repo.CreateMapping(ctx, userID, rawPattern, platformID)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]*Alias, error) {
	return s.repo.ListMappings(ctx, userID)
}

func (s *Service) Forget(ctx context.Context, userID, id uuid.UUID) error {
	return s.repo.DeleteMapping(ctx, userID, id)
}
