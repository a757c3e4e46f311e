package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore connects to the Redis named by SHOPLIST_TEST_REDIS_ADDR.
func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	addr := os.Getenv("SHOPLIST_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SHOPLIST_TEST_REDIS_ADDR not set")
	}
	store, err := NewSessionStore(context.Background(), addr, "", 0, time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewSessionStore_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := NewSessionStore(ctx, "127.0.0.1:1", "", 0, time.Minute)
	assert.Error(t, err)
}

func TestSessionStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	sessionID := uuid.NewString()
	t.Cleanup(func() { store.client.Del(ctx, store.key(sessionID)) })

	_, ok, err := store.Get(ctx, sessionID, "list")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, sessionID, "list", "g1"))
	value, ok, err := store.Get(ctx, sessionID, "list")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "g1", value)

	ttl, err := store.client.TTL(ctx, store.key(sessionID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0), "Set refreshes the expiry")

	require.NoError(t, store.Delete(ctx, sessionID, "list"))
	_, ok, err = store.Get(ctx, sessionID, "list")
	require.NoError(t, err)
	assert.False(t, ok)
}
