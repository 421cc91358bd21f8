package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"perch-hq/perch/pkg/bridge"
	"perch-hq/perch/pkg/bridge/middleware"
	"perch-hq/perch/pkg/bridge/types"
	"perch-hq/perch/pkg/upstream"
)

// SearchHandler forwards post searches upstream: validation first, then one
// tools/call per request. Invalid queries are rejected with a 400 before
// anything is sent upstream.
type SearchHandler struct {
	client   UpstreamClient
	recorder UpstreamRecorder
}

// NewSearchHandler creates a search handler. The recorder may be nil.
func NewSearchHandler(client UpstreamClient, recorder UpstreamRecorder) *SearchHandler {
	return &SearchHandler{
		client:   client,
		recorder: recorder,
	}
}

// ServeHTTP implements http.Handler.
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	params, err := bridge.ParseSearchParams(r.URL.Query())
	if err != nil {
		slog.WarnContext(ctx, "search query rejected",
			"request_id", requestID,
			"client_key", middleware.GetClientKey(ctx),
			"error", err,
		)
		if werr := bridge.WriteError(w, types.NewBadRequest(err.Error(), requestID)); werr != nil {
			slog.ErrorContext(ctx, "failed to write error response", "error", werr)
		}
		return
	}

	start := time.Now()
	result, err := h.client.SearchPosts(ctx, params.Query, params.Limit)
	elapsed := time.Since(start)

	if err != nil {
		outcome := upstream.ClassifyError(err)
		record(h.recorder, "tools/call", outcome, elapsed)
		slog.ErrorContext(ctx, "post search failed",
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

	record(h.recorder, "tools/call", result.Outcome, elapsed)
	if werr := bridge.WriteUpstreamResult(w, r, result, params.TTL, requestID); werr != nil {
		slog.ErrorContext(ctx, "failed to write search response",
			"request_id", requestID,
			"error", werr,
		)
	}
}
