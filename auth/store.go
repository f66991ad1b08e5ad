package auth

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned by stores for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")

// Store keeps session payloads (the signed-in user's id) keyed by an
// opaque session id.
type Store interface {
	Get(ctx context.Context, id string) (int64, error)
	Set(ctx context.Context, id string, userID int64, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}
