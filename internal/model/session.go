package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the durable record of one issued refresh-token chain. Only a
// hash of the current refresh token is stored, never the token itself.
type Session struct {
	ID          uuid.UUID
	UserSubject string
	TokenHash   []byte
	IssuedAt    time.Time
	ExpiresAt   time.Time
	ClientIP    string
	UserAgent   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionStore persists refresh-token sessions. Implementations must be
// safe for concurrent use.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByTokenHash(ctx context.Context, tokenHash []byte) (Session, error)
	// Rotate replaces the stored token hash and expiry in a single
	// conditional update keyed on (id, oldHash), so that of two callers
	// racing on the same stale hash at most one succeeds. Returns
	// ErrSessionNotFound when the session was already rotated or revoked.
	Rotate(ctx context.Context, id uuid.UUID, oldHash, newHash []byte, newExpiresAt time.Time) error
	Revoke(ctx context.Context, id uuid.UUID) error
	RevokeAllForUser(ctx context.Context, userSubject string) (int64, error)
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
