// Package limits groups admission control for the bridge.
//
// # Overview
//
// Every inbound request passes one gate before path dispatch: a per-client
// sliding-window rate limit. The ratelimit sub-package implements it behind
// a small Limiter interface with two stores:
//
//   - memory: mutex-guarded timestamp logs, bounded by a client cap and a
//     cron-driven sweeper that evicts idle clients
//   - redis: one sorted set per client evaluated atomically in a Lua
//     script, shared across bridge instances
//
// # Usage
//
//	limiter := ratelimit.NewMemoryLimiter(ratelimit.Config{
//		Limit:  60,
//		Window: time.Minute,
//	})
//
//	decision, err := limiter.Allow(ctx, clientKey)
//	if !decision.Allowed {
//		// reject with 429 and Retry-After: decision.RetryAfter
//	}
package limits
