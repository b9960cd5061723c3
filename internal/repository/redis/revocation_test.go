package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*RevocationStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRevocationStore(client), mr
}

func TestRevocationStore_RevokeAndLookup(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	revoked, err := store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "token-1", time.Now().Add(time.Hour)))

	revoked, err = store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevocationStore_EntryExpiresWithTTL(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t)

	require.NoError(t, store.Revoke(ctx, "token-1", time.Now().Add(time.Hour)))

	mr.FastForward(2 * time.Hour)

	revoked, err := store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_PastExpiryIsNoop(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Revoke(ctx, "token-1", time.Now().Add(-time.Minute)))

	revoked, err := store.IsRevoked(ctx, "token-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevocationStore_KeepsLongerTTL(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Revoke(ctx, "token-1", time.Now().Add(time.Hour)))
	require.NoError(t, store.Revoke(ctx, "token-1", time.Now().Add(time.Minute)))

	ttl, err := store.client.TTL(ctx, revocationKey("token-1")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 30*time.Minute)
}

func TestRevocationStore_SweepExpired(t *testing.T) {
	store, _ := newTestStore(t)

	count, err := store.SweepExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
}
