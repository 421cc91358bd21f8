package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

var requestIDPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestRequestIDMiddleware(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetRequestID(r.Context()) == "" {
			t.Error("request id should be in context")
		}
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RequestIDMiddleware(handler)

	t.Run("generates 16 lowercase hex chars", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		requestID := w.Header().Get(RequestIDHeader)
		if !requestIDPattern.MatchString(requestID) {
			t.Errorf("expected 16 lowercase hex chars, got %q", requestID)
		}
	})

	t.Run("ignores client-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		req.Header.Set(RequestIDHeader, "spoofed-id-123")
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		requestID := w.Header().Get(RequestIDHeader)
		if requestID == "spoofed-id-123" {
			t.Error("client-supplied request id must not be echoed")
		}
		if !requestIDPattern.MatchString(requestID) {
			t.Errorf("expected generated id, got %q", requestID)
		}
	})

	t.Run("generates unique ids", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			req := httptest.NewRequest(http.MethodGet, "/tools", nil)
			w := httptest.NewRecorder()
			wrapped.ServeHTTP(w, req)

			id := w.Header().Get(RequestIDHeader)
			if seen[id] {
				t.Fatalf("duplicate request id after %d requests: %s", i, id)
			}
			seen[id] = true
		}
	})
}

func TestGetRequestID_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	if got := GetRequestID(req.Context()); got != "" {
		t.Errorf("expected empty string without middleware, got %q", got)
	}
}

func BenchmarkRequestIDMiddleware(b *testing.B) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RequestIDMiddleware(handler)
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w := httptest.NewRecorder()
		wrapped.ServeHTTP(w, req)
	}
}
