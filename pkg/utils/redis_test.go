package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisLocker_ExclusiveUntilReleased(t *testing.T) {
	_, rdb := newTestRedis(t)
	l := NewRedisLocker(rdb, "lock:", time.Minute)
	ctx := context.Background()

	release, err := l.TryLock(ctx, "tenant-1")
	require.NoError(t, err)

	_, err = l.TryLock(ctx, "tenant-1")
	require.ErrorIs(t, err, ErrLockHeld)

	other, err := l.TryLock(ctx, "tenant-2")
	require.NoError(t, err, "locks are per key")
	require.NoError(t, other(ctx))

	require.NoError(t, release(ctx))

	again, err := l.TryLock(ctx, "tenant-1")
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestRedisLocker_ExpiredReleaseDoesNotFreeNewHolder(t *testing.T) {
	mr, rdb := newTestRedis(t)
	l := NewRedisLocker(rdb, "lock:", time.Second)
	ctx := context.Background()

	stale, err := l.TryLock(ctx, "tenant-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	fresh, err := l.TryLock(ctx, "tenant-1")
	require.NoError(t, err)

	require.NoError(t, stale(ctx))
	assert.True(t, mr.Exists("lock:tenant-1"), "stale release must not delete the new holder's key")

	require.NoError(t, fresh(ctx))
	assert.False(t, mr.Exists("lock:tenant-1"))
}

func TestOpenRedis_RequiresAddr(t *testing.T) {
	_, err := OpenRedis(context.Background(), RedisConfig{})
	assert.Error(t, err)
}

func TestOpenRedis_Pings(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := OpenRedis(context.Background(), RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	_ = rdb.Close()
}
