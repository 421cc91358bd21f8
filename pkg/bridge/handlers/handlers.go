package handlers

import (
	"context"
	"time"

	"perch-hq/perch/pkg/upstream"
)

// UpstreamClient is the slice of the upstream client the handlers depend on.
type UpstreamClient interface {
	// ListTools fetches the upstream tool catalog.
	ListTools(ctx context.Context) (*upstream.Result, error)

	// SearchPosts invokes the post search tool.
	SearchPosts(ctx context.Context, query string, limit int) (*upstream.Result, error)
}

// UpstreamRecorder receives one observation per upstream call. Implementations
// must be safe for concurrent use.
type UpstreamRecorder interface {
	RecordUpstream(method string, outcome upstream.Outcome, duration time.Duration)
}

// record forwards an observation when a recorder is configured.
func record(recorder UpstreamRecorder, method string, outcome upstream.Outcome, elapsed time.Duration) {
	if recorder != nil {
		recorder.RecordUpstream(method, outcome, elapsed)
	}
}
