package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dtroode/authkeeper/internal/model"
)

const revocationPrefix = "token:revoked:"

var _ model.RevocationStore = (*RevocationStore)(nil)

// RevocationStore backs the blacklist with redis; entry lifetime is
// delegated to key TTLs.
type RevocationStore struct {
	client *goredis.Client
}

func NewRevocationStore(client *goredis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		// Already past its natural expiry; nothing to shadow.
		return nil
	}

	key := revocationKey(tokenID)
	current, err := s.client.TTL(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to read revocation ttl: %w", err)
	}
	if current >= ttl {
		return nil
	}

	if err := s.client.Set(ctx, key, 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store revocation entry: %w", err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revocationKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check revocation entry: %w", err)
	}
	return n > 0, nil
}

// SweepExpired is a no-op: redis reclaims entries through key TTLs.
func (s *RevocationStore) SweepExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

func revocationKey(tokenID string) string {
	return revocationPrefix + tokenID
}
