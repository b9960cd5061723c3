package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/authkeeper/internal/model"
)

var _ model.RevocationStore = (*RevocationStore)(nil)

// RevocationStore is the in-process blacklist: a mutex-guarded map from
// token identifier to expiry. A stand-in for a distributed cache; the
// redis repository is the drop-in durable alternative.
type RevocationStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewRevocationStore() *RevocationStore {
	return &RevocationStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke inserts an entry; re-revoking with an earlier expiry is a no-op.
func (s *RevocationStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[tokenID]; ok && !existing.Before(expiresAt) {
		return nil
	}
	s.entries[tokenID] = expiresAt
	return nil
}

// IsRevoked reports whether the identifier has a live entry. Entries past
// expiry read as absent; reclaiming them is left to SweepExpired.
func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.entries[tokenID]
	if !ok {
		return false, nil
	}
	return expiresAt.After(s.now()), nil
}

func (s *RevocationStore) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	for tokenID, expiresAt := range s.entries {
		if expiresAt.Before(now) {
			delete(s.entries, tokenID)
			count++
		}
	}
	return count, nil
}
