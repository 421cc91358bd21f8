package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"perch-hq/perch/pkg/bridge/types"
	"perch-hq/perch/pkg/limits/ratelimit"
)

// RateLimitMiddleware gates every request through the sliding-window
// limiter before path dispatch. The gate applies uniformly to all paths,
// /health and /metrics included.
//
// Rejected requests receive a 429 too_many_requests envelope with
// Cache-Control: no-store and a Retry-After header computed from the
// oldest retained timestamp in the client's window. Rejections do not
// consume quota.
//
// If the limiter itself fails (a Redis store losing its connection), the
// request is allowed through: availability of the read path wins over
// strictness of the limit.
//
// Example usage:
//
//	handler = RateLimitMiddleware(limiter)(handler)
func RateLimitMiddleware(limiter ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := ClientKey(r)
			ctx := context.WithValue(r.Context(), ClientKeyKey, key)
			r = r.WithContext(ctx)

			decision, err := limiter.Allow(ctx, key)
			if err != nil {
				slog.ErrorContext(ctx, "rate limiter unavailable, allowing request",
					"client_key", key,
					"error", err,
				)
				next.ServeHTTP(w, r)
				return
			}

			if !decision.Allowed {
				requestID := GetRequestID(ctx)

				slog.WarnContext(ctx, "rate limit exceeded",
					"client_key", key,
					"retry_after_s", decision.RetryAfter,
					"request_id", requestID,
				)

				envelope := types.NewTooManyRequests(
					"rate limit exceeded, retry later", requestID,
				)

				w.Header().Set("Retry-After", strconv.Itoa(decision.RetryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Cache-Control", "no-store")
				w.WriteHeader(http.StatusTooManyRequests)
				_ = json.NewEncoder(w).Encode(envelope)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// ClientKey derives the rate-limit key for a request from forwarding
// headers. Priority: X-Real-IP, then the first comma-separated entry of
// X-Forwarded-For, then the literal "unknown". The transport remote
// address is never used: the gateway is expected to sit behind a proxy
// that sets these headers, and without them all clients share one bucket.
func ClientKey(r *http.Request) string {
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}

	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first := strings.TrimSpace(strings.Split(forwarded, ",")[0])
		if first != "" {
			return first
		}
	}

	return "unknown"
}

// GetClientKey extracts the rate-limit client key from the context.
// Returns empty string if not found.
func GetClientKey(ctx context.Context) string {
	if key, ok := ctx.Value(ClientKeyKey).(string); ok {
		return key
	}
	return ""
}
