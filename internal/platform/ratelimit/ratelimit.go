package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Result describes the state of a key's window after a call to Allow.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter is a fixed-window request counter keyed by client.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

func result(count, limit int, resetAt time.Time) Result {
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

type window struct {
	start time.Time
	count int
}

type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window
	// lastSweep is the window start of the most recent eviction pass.
	lastSweep time.Time
	sweeps    int
}

func NewMemoryLimiter(limit int, per time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  per,
		now:     time.Now,
		windows: map[string]*window{},
	}
}

func (m *MemoryLimiter) Allow(_ context.Context, key string) (Result, error) {
	now := m.now()
	start := now.Truncate(m.window)

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || !w.start.Equal(start) {
		w = &window{start: start}
		m.windows[key] = w
		if start.After(m.lastSweep) {
			m.evict(start)
		}
	}
	w.count++
	return result(w.count, m.limit, start.Add(m.window)), nil
}

// evict drops windows older than the current one, once per window
// boundary. Caller holds mu.
func (m *MemoryLimiter) evict(current time.Time) {
	m.lastSweep = current
	m.sweeps++
	for k, w := range m.windows {
		if w.start.Before(current) {
			delete(m.windows, k)
		}
	}
}

type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int, per time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: per,
		prefix: "people-notes:ratelimit",
		now:    time.Now,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (Result, error) {
	start := r.now().Truncate(r.window)
	redisKey := fmt.Sprintf("%s:%s:%d", r.prefix, key, start.Unix())

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, r.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Result{}, fmt.Errorf("rate limit incr %s: %w", key, err)
	}
	return result(int(incr.Val()), r.limit, start.Add(r.window)), nil
}
