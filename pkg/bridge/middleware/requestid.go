package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"
)

const (
	// RequestIDHeader is the HTTP header carrying the correlation id.
	RequestIDHeader = "X-Request-ID"
)

// RequestIDMiddleware assigns a fresh correlation id to every request and
// adds it to the context and response headers. Client-supplied X-Request-ID
// values are ignored: ids are always generated server-side so they cannot be
// forged or collide across tenants.
//
// The correlation id is:
//   - Added to the request context for handler access
//   - Included in the X-Request-ID response header
//   - Echoed in the requestId field of error envelopes
//
// Example usage:
//
//	handler = RequestIDMiddleware(handler)
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := generateRequestID()

		// Add request ID to context
		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)

		// Add request ID to response headers
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// generateRequestID generates a correlation id from cryptographic random
// bytes. Format: 8 bytes hex encoded, 16 lowercase hex characters.
//
// Example output: "9f86d081884c7d65"
func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means the platform entropy source is broken;
		// a fixed id keeps responses well-formed
		return "0000000000000000"
	}
	return hex.EncodeToString(b)
}

// GetRequestID extracts the correlation id from the context.
// Returns empty string if not found.
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
