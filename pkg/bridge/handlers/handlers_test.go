package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"perch-hq/perch/pkg/bridge/middleware"
	"perch-hq/perch/pkg/upstream"
)

const testRequestID = "feedfacecafebeef"

// stubClient is a scriptable UpstreamClient.
type stubClient struct {
	result *upstream.Result
	err    error

	listCalls   int
	searchCalls int
	lastQuery   string
	lastLimit   int
}

func (s *stubClient) ListTools(ctx context.Context) (*upstream.Result, error) {
	s.listCalls++
	return s.result, s.err
}

func (s *stubClient) SearchPosts(ctx context.Context, query string, limit int) (*upstream.Result, error) {
	s.searchCalls++
	s.lastQuery = query
	s.lastLimit = limit
	return s.result, s.err
}

// stubRecorder captures upstream observations.
type stubRecorder struct {
	mu       sync.Mutex
	methods  []string
	outcomes []upstream.Outcome
}

func (s *stubRecorder) RecordUpstream(method string, outcome upstream.Outcome, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = append(s.methods, method)
	s.outcomes = append(s.outcomes, outcome)
}

// newRequest builds a GET request carrying a correlation id, as the
// middleware chain would before a handler runs.
func newRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := context.WithValue(req.Context(), middleware.RequestIDKey, testRequestID)
	return req.WithContext(ctx)
}

func successResult(body string) *upstream.Result {
	return &upstream.Result{
		Outcome:   upstream.OutcomeSuccess,
		Status:    http.StatusOK,
		Body:      body,
		ValidJSON: true,
	}
}
