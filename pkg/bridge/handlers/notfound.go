package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"perch-hq/perch/pkg/bridge"
	"perch-hq/perch/pkg/bridge/middleware"
	"perch-hq/perch/pkg/bridge/types"
)

// NotFoundHandler answers every unknown path with the 404 envelope.
type NotFoundHandler struct{}

// NewNotFoundHandler creates a not-found handler.
func NewNotFoundHandler() *NotFoundHandler {
	return &NotFoundHandler{}
}

// ServeHTTP implements http.Handler.
func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	envelope := types.NewNotFound(fmt.Sprintf("path %s not found", r.URL.Path), requestID)
	if err := bridge.WriteError(w, envelope); err != nil {
		slog.ErrorContext(ctx, "failed to write error response",
			"request_id", requestID,
			"error", err,
		)
	}
}
