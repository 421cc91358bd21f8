package handlers

import (
	"log/slog"
	"net/http"

	"perch-hq/perch/pkg/bridge"
	"perch-hq/perch/pkg/bridge/middleware"
	"perch-hq/perch/pkg/bridge/types"
)

// HealthHandler serves the liveness payload. The payload is built per
// request (fresh timestamp, correlation id) and never cached.
type HealthHandler struct {
	// Service is the name reported in the payload.
	Service string
}

// NewHealthHandler creates a health handler reporting the given service name.
func NewHealthHandler(service string) *HealthHandler {
	return &HealthHandler{Service: service}
}

// ServeHTTP implements http.Handler.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	w.Header().Set("Cache-Control", "no-store")
	if err := bridge.WriteJSON(w, http.StatusOK, types.NewHealthStatus(h.Service, requestID)); err != nil {
		slog.ErrorContext(ctx, "failed to write health response",
			"request_id", requestID,
			"error", err,
		)
	}
}
