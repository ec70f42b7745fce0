// internal/session/store.go
package session

import (
	"context"
	"errors"

	"loan-concierge/internal/models"
)

// ErrNotFound is returned when no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Store persists conversation sessions between turns. Implementations must
// be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Put(ctx context.Context, sess *models.Session) error
	Delete(ctx context.Context, id string) error
}
