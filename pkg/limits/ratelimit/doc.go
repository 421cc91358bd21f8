// Package ratelimit implements per-client sliding-window rate limiting.
//
// # Algorithm
//
// Each client key maps to a log of request timestamps. On every request:
//
//  1. Timestamps older than now - window are pruned from the client's log.
//  2. If the retained count is at or above the limit, the request is
//     rejected and NOT recorded, with Retry-After derived from the oldest
//     retained timestamp: ceil((oldest + window - now) / 1s), floored at 1.
//  3. Otherwise the current time is appended and the request passes.
//
// This gives exact sliding-window behavior: a client allowed 60 requests
// per minute can never have more than 60 timestamps inside any 60-second
// span, and rejected attempts do not extend the penalty.
//
// # Stores
//
//   - MemoryLimiter: mutex-guarded map for single-instance deployments.
//     Idle clients are removed by a cron-scheduled Sweeper, and a hard cap
//     on tracked clients evicts the longest-idle entry when exceeded.
//   - RedisLimiter: sorted-set implementation with the same semantics,
//     evaluated atomically by a Lua script, for multi-instance deployments.
//     Keys self-expire, so no sweeper is needed.
//
// # Usage
//
//	limiter := ratelimit.NewMemoryLimiter(ratelimit.Config{
//	    Limit:  60,
//	    Window: time.Minute,
//	})
//	decision, _ := limiter.Allow(ctx, clientKey)
//	if !decision.Allowed {
//	    // reject with Retry-After: decision.RetryAfter seconds
//	}
//
// # Thread Safety
//
// All limiters are safe for concurrent use.
package ratelimit
