package ratelimit

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterFixedWindow(t *testing.T) {
	l := NewMemoryLimiter(2, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 10, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	r1, err := l.Allow(ctx, "ip:1")
	require.NoError(t, err)
	assert.True(t, r1.Allowed)
	assert.Equal(t, 1, r1.Remaining)

	r2, _ := l.Allow(ctx, "ip:1")
	assert.True(t, r2.Allowed)
	assert.Equal(t, 0, r2.Remaining)

	r3, _ := l.Allow(ctx, "ip:1")
	assert.False(t, r3.Allowed)
	assert.Equal(t, 0, r3.Remaining)
	assert.Equal(t, time.Date(2024, 1, 1, 12, 1, 0, 0, time.UTC), r3.ResetAt)

	other, _ := l.Allow(ctx, "ip:2")
	assert.True(t, other.Allowed, "keys are counted independently")

	now = now.Add(time.Minute)
	r4, _ := l.Allow(ctx, "ip:1")
	assert.True(t, r4.Allowed, "new window resets the count")
	assert.Len(t, l.windows, 1)
}

func TestMemoryLimiterSweepsOncePerWindow(t *testing.T) {
	l := NewMemoryLimiter(5, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		_, err := l.Allow(ctx, fmt.Sprintf("ip:%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, l.sweeps)
	assert.Len(t, l.windows, 1000)

	now = now.Add(time.Minute)
	for i := 0; i < 10; i++ {
		_, err := l.Allow(ctx, fmt.Sprintf("ip:new-%d", i))
		require.NoError(t, err)
	}
	assert.Equal(t, 2, l.sweeps, "one pass per window boundary")
	assert.Len(t, l.windows, 10, "windows from the previous minute are dropped")

	// A late caller from the old window must not trigger another pass.
	now = now.Add(-time.Second)
	_, err := l.Allow(ctx, "ip:late")
	require.NoError(t, err)
	assert.Equal(t, 2, l.sweeps)
}

func TestRedisLimiter(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("set TEST_REDIS_ADDR to run redis limiter tests")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedisLimiter(client, 1, time.Minute)
	key := "test:" + uuid.NewString()
	ctx := context.Background()

	r1, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, r1.Allowed)

	r2, err := l.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, r2.Allowed)
}
