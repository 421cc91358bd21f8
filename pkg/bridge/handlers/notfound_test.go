package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"perch-hq/perch/pkg/bridge/types"
)

func TestNotFoundHandler(t *testing.T) {
	handler := NewNotFoundHandler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newRequest("/nope"))

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != types.CodeNotFound {
		t.Errorf("expected code %q, got %q", types.CodeNotFound, body.Error)
	}
	if !strings.Contains(body.Detail, "/nope") {
		t.Errorf("expected detail to name the path, got %q", body.Detail)
	}
	if body.RequestID != testRequestID {
		t.Errorf("expected requestId %q, got %q", testRequestID, body.RequestID)
	}
}
