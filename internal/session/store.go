package session

import (
	"context"
	"errors"

	"github.com/tuanvumaihuynh/inventory-service/internal/model"
)

// ErrNotFound is returned by a Store when the session is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Store persists server-side sessions.
type Store interface {
	Save(ctx context.Context, s model.Session) error
	Get(ctx context.Context, id string) (model.Session, error)
}
