package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeRecorder captures request observations.
type fakeRecorder struct {
	mu              sync.Mutex
	requests        []string // "METHOD path status"
	rateLimited     []string
	conditionalHits []string
}

func (f *fakeRecorder) RecordRequest(method, path, status string, duration time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, method+" "+path+" "+status)
}

func (f *fakeRecorder) RecordRateLimited(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rateLimited = append(f.rateLimited, path)
}

func (f *fakeRecorder) RecordConditionalHit(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.conditionalHits = append(f.conditionalHits, path)
}

func statusHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
}

func TestMetricsMiddleware(t *testing.T) {
	recorder := &fakeRecorder{}
	wrapped := MetricsMiddleware(recorder)(statusHandler(http.StatusOK))

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if len(recorder.requests) != 1 || recorder.requests[0] != "GET /tools 200" {
		t.Errorf("unexpected observations: %v", recorder.requests)
	}
	if len(recorder.rateLimited) != 0 {
		t.Errorf("expected no rate-limited observations, got %v", recorder.rateLimited)
	}
	if len(recorder.conditionalHits) != 0 {
		t.Errorf("expected no conditional observations, got %v", recorder.conditionalHits)
	}
}

func TestMetricsMiddleware_RateLimited(t *testing.T) {
	recorder := &fakeRecorder{}
	wrapped := MetricsMiddleware(recorder)(statusHandler(http.StatusTooManyRequests))

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if len(recorder.rateLimited) != 1 || recorder.rateLimited[0] != "/search" {
		t.Errorf("expected one rate-limited observation for /search, got %v", recorder.rateLimited)
	}
}

func TestMetricsMiddleware_ConditionalHit(t *testing.T) {
	recorder := &fakeRecorder{}
	wrapped := MetricsMiddleware(recorder)(statusHandler(http.StatusNotModified))

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	if len(recorder.conditionalHits) != 1 || recorder.conditionalHits[0] != "/tools" {
		t.Errorf("expected one conditional observation for /tools, got %v", recorder.conditionalHits)
	}
}

func TestMetricsMiddleware_NilRecorder(t *testing.T) {
	wrapped := MetricsMiddleware(nil)(statusHandler(http.StatusOK))

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected pass-through with nil recorder, got %d", w.Code)
	}
}
