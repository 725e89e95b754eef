package matching

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyPattern = errors.New("alias pattern must not be empty")
	ErrNotFound     = errors.New("alias not found")
)

// Alias maps a raw platform label found in statement files to a known platform.
type Alias struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	RawPattern string
	PlatformID uuid.UUID
	CreatedAt  time.Time
}
