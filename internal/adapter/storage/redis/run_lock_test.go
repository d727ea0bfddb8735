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

func newRunLock(t *testing.T) (*RunLock, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRunLock(client), s
}

func TestRunLock_ExclusiveUntilUnlocked(t *testing.T) {
	lock, _ := newRunLock(t)
	ctx := context.Background()

	token, ok, err := lock.TryLock(ctx, "tax:900", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, token)

	_, ok, err = lock.TryLock(ctx, "tax:900", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second run should be skipped")

	_, ok, err = lock.TryLock(ctx, "tax:901", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "different alliances are independent")

	require.NoError(t, lock.Unlock(ctx, "tax:900", token))

	_, ok, err = lock.TryLock(ctx, "tax:900", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRunLock_ExpiresAfterTTL(t *testing.T) {
	lock, s := newRunLock(t)
	ctx := context.Background()

	_, ok, err := lock.TryLock(ctx, "bank:900", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	s.FastForward(2 * time.Second)

	_, ok, err = lock.TryLock(ctx, "bank:900", time.Second)
	require.NoError(t, err)
	assert.True(t, ok, "expired lock should be free again")
}

func TestRunLock_UnlockWithStaleTokenKeepsLock(t *testing.T) {
	lock, s := newRunLock(t)
	ctx := context.Background()

	stale, ok, err := lock.TryLock(ctx, "tax:900", time.Second)
	require.NoError(t, err)
	require.True(t, ok)

	s.FastForward(2 * time.Second)

	current, ok, err := lock.TryLock(ctx, "tax:900", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, lock.Unlock(ctx, "tax:900", stale))

	val, err := s.Get("lock:tax:900")
	require.NoError(t, err)
	assert.Equal(t, current, val)
}
