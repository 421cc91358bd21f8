package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"perch-hq/perch/pkg/bridge/types"
	"perch-hq/perch/pkg/limits/ratelimit"
)

// fakeLimiter is a scriptable ratelimit.Limiter.
type fakeLimiter struct {
	decision ratelimit.Decision
	err      error
	lastKey  string
}

func (f *fakeLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	f.lastKey = key
	return f.decision, f.err
}

func (f *fakeLimiter) SetLimits(limit int, window time.Duration) {}

func TestRateLimitMiddleware_Allows(t *testing.T) {
	limiter := &fakeLimiter{decision: ratelimit.Decision{Allowed: true, Remaining: 59}}

	var gotKey string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = GetClientKey(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RateLimitMiddleware(limiter)(handler)

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	req.Header.Set("X-Real-IP", "203.0.113.7")
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if limiter.lastKey != "203.0.113.7" {
		t.Errorf("expected limiter keyed by client IP, got %q", limiter.lastKey)
	}
	if gotKey != "203.0.113.7" {
		t.Errorf("expected client key in context, got %q", gotKey)
	}
}

func TestRateLimitMiddleware_Rejects(t *testing.T) {
	limiter := &fakeLimiter{decision: ratelimit.Decision{Allowed: false, RetryAfter: 17}}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run for rejected requests")
	})

	wrapped := RequestIDMiddleware(RateLimitMiddleware(limiter)(handler))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected status 429, got %d", w.Code)
	}
	if got := w.Header().Get("Retry-After"); got != "17" {
		t.Errorf("expected Retry-After 17, got %q", got)
	}
	if got := w.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != types.CodeTooManyRequests {
		t.Errorf("expected code %q, got %q", types.CodeTooManyRequests, body.Error)
	}
	if !requestIDPattern.MatchString(body.RequestID) {
		t.Errorf("expected correlation id in envelope, got %q", body.RequestID)
	}
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	limiter := &fakeLimiter{err: errors.New("redis unreachable")}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RateLimitMiddleware(limiter)(handler)

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected request allowed on limiter failure, got %d", w.Code)
	}
}

func TestClientKey(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    string
	}{
		{
			name:    "no headers",
			headers: nil,
			want:    "unknown",
		},
		{
			name:    "real ip",
			headers: map[string]string{"X-Real-IP": "203.0.113.7"},
			want:    "203.0.113.7",
		},
		{
			name:    "real ip trimmed",
			headers: map[string]string{"X-Real-IP": "  203.0.113.7  "},
			want:    "203.0.113.7",
		},
		{
			name:    "forwarded for single",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.4"},
			want:    "198.51.100.4",
		},
		{
			name:    "forwarded for takes first entry",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1, 10.0.0.2"},
			want:    "198.51.100.4",
		},
		{
			name: "real ip wins over forwarded for",
			headers: map[string]string{
				"X-Real-IP":       "203.0.113.7",
				"X-Forwarded-For": "198.51.100.4",
			},
			want: "203.0.113.7",
		},
		{
			name:    "empty forwarded entries fall back",
			headers: map[string]string{"X-Forwarded-For": " , 10.0.0.1"},
			want:    "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/tools", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}

			if got := ClientKey(req); got != tt.want {
				t.Errorf("expected key %q, got %q", tt.want, got)
			}
		})
	}
}
