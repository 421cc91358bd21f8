package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"perch-hq/perch/pkg/bridge"
	"perch-hq/perch/pkg/bridge/middleware"
	"perch-hq/perch/pkg/upstream"
)

// ToolsHandler exposes the upstream tool catalog: one tools/list call per
// request, with the response cached client-side for the requested ttl.
type ToolsHandler struct {
	client   UpstreamClient
	recorder UpstreamRecorder
}

// NewToolsHandler creates a tools handler. The recorder may be nil.
func NewToolsHandler(client UpstreamClient, recorder UpstreamRecorder) *ToolsHandler {
	return &ToolsHandler{
		client:   client,
		recorder: recorder,
	}
}

// ServeHTTP implements http.Handler.
func (h *ToolsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	params := bridge.ParseToolsParams(r.URL.Query())

	start := time.Now()
	result, err := h.client.ListTools(ctx)
	elapsed := time.Since(start)

	if err != nil {
		outcome := upstream.ClassifyError(err)
		record(h.recorder, "tools/list", outcome, elapsed)
		slog.ErrorContext(ctx, "tool catalog fetch failed",
			"request_id", requestID,
			"client_key", middleware.GetClientKey(ctx),
			"outcome", string(outcome),
			"elapsed_ms", elapsed.Milliseconds(),
			"error", err,
		)
		if werr := bridge.WriteUpstreamFailure(w, err, requestID); werr != nil {
			slog.ErrorContext(ctx, "failed to write error response", "error", werr)
		}
		return
	}

	record(h.recorder, "tools/list", result.Outcome, elapsed)
	if werr := bridge.WriteUpstreamResult(w, r, result, params.TTL, requestID); werr != nil {
		slog.ErrorContext(ctx, "failed to write tools response",
			"request_id", requestID,
			"error", werr,
		)
	}
}
