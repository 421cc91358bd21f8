package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"

	"perch-hq/perch/pkg/bridge/types"
)

// MethodGateMiddleware rejects every non-GET request with 405 before the
// rate limiter or any handler runs. The gateway is a read-only surface: the
// same gate applies to every path, known or not.
//
// Rejections carry Allow: GET, Cache-Control: no-store, and a
// method_not_allowed envelope.
//
// Example usage:
//
//	handler = MethodGateMiddleware(handler)
func MethodGateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			requestID := GetRequestID(r.Context())

			envelope := types.NewMethodNotAllowed(
				fmt.Sprintf("method %s not allowed, use GET", r.Method),
				requestID,
			)

			w.Header().Set("Allow", http.MethodGet)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Cache-Control", "no-store")
			w.WriteHeader(http.StatusMethodNotAllowed)
			_ = json.NewEncoder(w).Encode(envelope)
			return
		}

		next.ServeHTTP(w, r)
	})
}
