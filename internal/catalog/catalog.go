// Package catalog holds the platforms revenue is attributed to and the
// categories expenses are filed under. Both come in two kinds: rows shipped
// with the system and rows a user created for themselves.
package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound    = errors.New("catalog entry not found")
	ErrInvalidName = errors.New("name must not be empty")
	ErrInvalidKind = errors.New("invalid catalog kind")
)

type Kind string

const (
	KindSystem Kind = "system"
	KindCustom Kind = "custom"
)

func (k Kind) Valid() bool {
	return k == KindSystem || k == KindCustom
}

type Platform struct {
	ID        uuid.UUID
	Kind      Kind
	Name      string
	Color     string
	OwnerID   *uuid.UUID // nil for system platforms
	CreatedAt time.Time
}

type Category struct {
	ID        uuid.UUID
	Kind      Kind
	Name      string
	Icon      *string
	OwnerID   *uuid.UUID
	CreatedAt time.Time
}

// VisibleTo reports whether userID may attach records to the platform.
func (p *Platform) VisibleTo(userID uuid.UUID) bool {
	if p.Kind == KindSystem {
		return true
	}

	return p.OwnerID != nil && *p.OwnerID == userID
}

func (c *Category) VisibleTo(userID uuid.UUID) bool {
	if c.Kind == KindSystem {
		return true
	}

	return c.OwnerID != nil && *c.OwnerID == userID
}
