package model

import (
	"context"
	"time"
)

// RevocationStore records token identifiers invalidated before their
// natural expiry. Entries past their expiry are inert and reclaimed by
// SweepExpired or by the backing store's own TTL mechanism.
type RevocationStore interface {
	// Revoke is idempotent; re-revoking with an earlier expiry is a no-op.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
}
