package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionTTL is how long an issued token stays valid. It is refreshed
// only by a new authentication, never on use.
const SessionTTL = 24 * time.Hour

// TokenHeader is the request header carrying the session token.
const TokenHeader = "X-Token"

// SessionStore persists token to user-id mappings with a TTL.
type SessionStore interface {
	Set(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	Get(ctx context.Context, token string) (uuid.UUID, error)
	Delete(ctx context.Context, token string) error
}

// TokenGenerator produces opaque session tokens.
type TokenGenerator interface {
	NewToken() string
}
