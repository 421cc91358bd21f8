package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"perch-hq/perch/pkg/bridge/types"
)

// RecoveryMiddleware recovers from panics in HTTP handlers and returns a 502
// bad_gateway envelope, so the contract of exactly one response per request
// holds even when a handler fails unexpectedly. It logs the panic with stack
// trace but does not expose internal details to clients.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(r.Context())
				stack := debug.Stack()

				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", requestID,
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(stack),
				)

				envelope := types.NewBadGateway(
					"unexpected internal failure", requestID,
				)

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Cache-Control", "no-store")
				w.WriteHeader(http.StatusBadGateway)

				// Encoding errors past this point cannot be reported
				_ = json.NewEncoder(w).Encode(envelope)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
