package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces limiter entries in a shared Redis instance.
const keyPrefix = "perch:ratelimit:"

// slidingWindowScript prunes, counts, and conditionally records a request
// in one atomic evaluation. KEYS[1] is the client key; ARGV holds now (ms),
// window (ms), limit, and a unique member id.
//
// Returns {allowed, retained count, oldest retained score in ms}.
const slidingWindowScript = `
local cutoff = tonumber(ARGV[1]) - tonumber(ARGV[2])
redis.call('ZREMRANGEBYSCORE', KEYS[1], '-inf', '(' .. cutoff)
local count = redis.call('ZCARD', KEYS[1])
if count >= tonumber(ARGV[3]) then
  local oldest = redis.call('ZRANGE', KEYS[1], 0, 0, 'WITHSCORES')
  return {0, count, tonumber(oldest[2])}
end
redis.call('ZADD', KEYS[1], tonumber(ARGV[1]), ARGV[4])
redis.call('PEXPIRE', KEYS[1], tonumber(ARGV[2]))
return {1, count + 1, 0}
`

// RedisLimiter implements the sliding window over a Redis sorted set, one
// set per client key, scores in epoch milliseconds. All instances sharing
// the Redis see one combined window per client.
//
// Entries expire with the window, so idle clients clean themselves up
// without a sweeper.
type RedisLimiter struct {
	client *redis.Client
	script *redis.Script

	mu     sync.Mutex
	config Config

	// now is stubbed in tests.
	now func() time.Time
}

// NewRedisLimiter creates a Redis-backed sliding-window limiter on an
// existing client.
func NewRedisLimiter(client *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		script: redis.NewScript(slidingWindowScript),
		config: cfg.withDefaults(),
		now:    time.Now,
	}
}

// Allow implements Limiter. Errors indicate the Redis call itself failed;
// callers decide whether to fail open.
func (r *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	r.mu.Lock()
	limit := r.config.Limit
	window := r.config.Window
	now := r.now()
	r.mu.Unlock()

	nowMs := now.UnixMilli()
	windowMs := window.Milliseconds()
	member := uuid.NewString()

	res, err := r.script.Run(ctx, r.client,
		[]string{keyPrefix + key},
		nowMs, windowMs, limit, member,
	).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit script failed: %w", err)
	}

	values, ok := res.([]interface{})
	if !ok || len(values) != 3 {
		return Decision{}, fmt.Errorf("unexpected rate limit script result: %v", res)
	}

	allowed := values[0].(int64) == 1
	count := values[1].(int64)
	oldestMs := values[2].(int64)

	if !allowed {
		oldest := time.UnixMilli(oldestMs)
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: retryAfterSeconds(oldest, now, window),
		}, nil
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Decision{Allowed: true, Remaining: remaining}, nil
}

// SetLimits implements Limiter.
func (r *RedisLimiter) SetLimits(limit int, window time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit > 0 {
		r.config.Limit = limit
	}
	if window > 0 {
		r.config.Window = window
	}
}
