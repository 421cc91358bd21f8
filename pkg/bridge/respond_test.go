package bridge

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"perch-hq/perch/pkg/bridge/types"
	"perch-hq/perch/pkg/upstream"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	envelope := types.NewBadRequest("query parameter q is required", "abcdef0123456789")
	if err := WriteError(rec, envelope); err != nil {
		t.Fatalf("WriteError failed: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("expected JSON content type, got %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != types.CodeBadRequest {
		t.Errorf("expected error code %q, got %q", types.CodeBadRequest, body.Error)
	}
	if body.Detail != "query parameter q is required" {
		t.Errorf("unexpected detail: %q", body.Detail)
	}
	if body.RequestID != "abcdef0123456789" {
		t.Errorf("unexpected requestId: %q", body.RequestID)
	}
}

func TestWriteUpstreamFailure(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantDetail string
	}{
		{
			name:       "timeout",
			err:        &upstream.TimeoutError{Timeout: 10 * time.Second},
			wantStatus: http.StatusGatewayTimeout,
			wantCode:   types.CodeUpstreamTimeout,
		},
		{
			name:       "missing credential",
			err:        &upstream.CredentialError{},
			wantStatus: http.StatusBadGateway,
			wantCode:   types.CodeBadGateway,
			wantDetail: "upstream credential not configured",
		},
		{
			name:       "transport failure",
			err:        &upstream.TransportError{Cause: io.ErrUnexpectedEOF},
			wantStatus: http.StatusBadGateway,
			wantCode:   types.CodeBadGateway,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			if err := WriteUpstreamFailure(rec, tt.err, "0000111122223333"); err != nil {
				t.Fatalf("WriteUpstreamFailure failed: %v", err)
			}

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if got := rec.Header().Get("Cache-Control"); got != "no-store" {
				t.Errorf("expected no-store, got %q", got)
			}

			var body types.ErrorEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Error != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, body.Error)
			}
			if tt.wantDetail != "" && body.Detail != tt.wantDetail {
				t.Errorf("expected detail %q, got %q", tt.wantDetail, body.Detail)
			}
			if body.RequestID != "0000111122223333" {
				t.Errorf("unexpected requestId: %q", body.RequestID)
			}
		})
	}
}

func TestWriteUpstreamResult_HTTPError(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)

	result := &upstream.Result{
		Outcome: upstream.OutcomeHTTPError,
		Status:  http.StatusServiceUnavailable,
		Body:    `{"error":"overloaded"}`,
	}

	if err := WriteUpstreamResult(rec, req, result, 60, "aaaa0000bbbb1111"); err != nil {
		t.Fatalf("WriteUpstreamResult failed: %v", err)
	}

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected upstream status to be echoed, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}

	var body types.UpstreamErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.UpstreamStatus != http.StatusServiceUnavailable {
		t.Errorf("expected upstreamStatus 503, got %d", body.UpstreamStatus)
	}
	if body.Body != `{"error":"overloaded"}` {
		t.Errorf("unexpected echoed body: %q", body.Body)
	}
	if body.RequestID != "aaaa0000bbbb1111" {
		t.Errorf("unexpected requestId: %q", body.RequestID)
	}
}

func TestWriteUpstreamResult_HTTPErrorTruncation(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)

	long := strings.Repeat("x", MaxEchoedUpstreamBody+500)
	result := &upstream.Result{
		Outcome: upstream.OutcomeHTTPError,
		Status:  http.StatusBadGateway,
		Body:    long,
	}

	if err := WriteUpstreamResult(rec, req, result, 60, "id"); err != nil {
		t.Fatalf("WriteUpstreamResult failed: %v", err)
	}

	var body types.UpstreamErrorBody
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if len(body.Body) != MaxEchoedUpstreamBody {
		t.Errorf("expected echoed body truncated to %d, got %d", MaxEchoedUpstreamBody, len(body.Body))
	}
}

func TestWriteUpstreamResult_SuccessJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)

	raw := `{"tools":[{"name":"get_twitter_posts"}]}`
	result := &upstream.Result{
		Outcome:   upstream.OutcomeSuccess,
		Status:    http.StatusOK,
		Body:      raw,
		ValidJSON: true,
	}

	if err := WriteUpstreamResult(rec, req, result, 120, "id"); err != nil {
		t.Fatalf("WriteUpstreamResult failed: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=120" {
		t.Errorf("unexpected Cache-Control: %q", got)
	}

	// Body passes through verbatim, no correlation id injected.
	if rec.Body.String() != raw {
		t.Errorf("expected verbatim pass-through, got %q", rec.Body.String())
	}

	// ETag covers exactly the bytes written.
	sum := sha256.Sum256(rec.Body.Bytes())
	wantETag := `"` + hex.EncodeToString(sum[:]) + `"`
	if got := rec.Header().Get("ETag"); got != wantETag {
		t.Errorf("expected ETag %s, got %s", wantETag, got)
	}
}

func TestWriteUpstreamResult_SuccessNonJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)

	result := &upstream.Result{
		Outcome: upstream.OutcomeSuccess,
		Status:  http.StatusOK,
		Body:    "plain text",
	}

	if err := WriteUpstreamResult(rec, req, result, 60, "id"); err != nil {
		t.Fatalf("WriteUpstreamResult failed: %v", err)
	}

	if rec.Body.String() != `{"raw":"plain text"}` {
		t.Errorf("expected wrapped body, got %q", rec.Body.String())
	}

	// No correlation id inside the wrapped body.
	var decoded map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode wrapped body: %v", err)
	}
	if _, ok := decoded["requestId"]; ok {
		t.Error("wrapped body must not carry a requestId field")
	}

	sum := sha256.Sum256(rec.Body.Bytes())
	wantETag := `"` + hex.EncodeToString(sum[:]) + `"`
	if got := rec.Header().Get("ETag"); got != wantETag {
		t.Errorf("expected ETag over wrapped bytes %s, got %s", wantETag, got)
	}
}

func TestWriteUpstreamResult_EchoesNon200Success(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/tools", nil)

	result := &upstream.Result{
		Outcome:   upstream.OutcomeSuccess,
		Status:    http.StatusAccepted,
		Body:      `{"queued":true}`,
		ValidJSON: true,
	}

	if err := WriteUpstreamResult(rec, req, result, 60, "id"); err != nil {
		t.Fatalf("WriteUpstreamResult failed: %v", err)
	}

	if rec.Code != http.StatusAccepted {
		t.Errorf("expected 2xx status to be echoed, got %d", rec.Code)
	}
}

func TestWriteUpstreamResult_ETagStability(t *testing.T) {
	raw := `{"stable":true}`
	result := &upstream.Result{
		Outcome:   upstream.OutcomeSuccess,
		Status:    http.StatusOK,
		Body:      raw,
		ValidJSON: true,
	}

	etags := make([]string, 2)
	for i := range etags {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/tools", nil)
		if err := WriteUpstreamResult(rec, req, result, 60, "id"); err != nil {
			t.Fatalf("WriteUpstreamResult failed: %v", err)
		}
		etags[i] = rec.Header().Get("ETag")
	}

	if etags[0] == "" || etags[0] != etags[1] {
		t.Errorf("expected identical ETags for identical bodies, got %q and %q", etags[0], etags[1])
	}
}

func TestWriteUpstreamResult_ConditionalGet(t *testing.T) {
	raw := `{"cached":true}`
	etag := ComputeETag([]byte(raw))

	tests := []struct {
		name        string
		ifNoneMatch string
		want304     bool
	}{
		{name: "no header", ifNoneMatch: "", want304: false},
		{name: "exact match", ifNoneMatch: etag, want304: true},
		{name: "weak form matches", ifNoneMatch: "W/" + etag, want304: true},
		{name: "among list", ifNoneMatch: `"other", ` + etag + `, "another"`, want304: true},
		{name: "no match", ifNoneMatch: `"deadbeef"`, want304: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/tools", nil)
			if tt.ifNoneMatch != "" {
				req.Header.Set("If-None-Match", tt.ifNoneMatch)
			}

			result := &upstream.Result{
				Outcome:   upstream.OutcomeSuccess,
				Status:    http.StatusOK,
				Body:      raw,
				ValidJSON: true,
			}

			if err := WriteUpstreamResult(rec, req, result, 90, "id"); err != nil {
				t.Fatalf("WriteUpstreamResult failed: %v", err)
			}

			if tt.want304 {
				if rec.Code != http.StatusNotModified {
					t.Fatalf("expected 304, got %d", rec.Code)
				}
				if rec.Body.Len() != 0 {
					t.Errorf("expected empty 304 body, got %q", rec.Body.String())
				}
				// Cache headers survive on the 304.
				if got := rec.Header().Get("ETag"); got != etag {
					t.Errorf("expected ETag %s on 304, got %s", etag, got)
				}
				if got := rec.Header().Get("Cache-Control"); got != "public, max-age=90" {
					t.Errorf("unexpected Cache-Control on 304: %q", got)
				}
			} else {
				if rec.Code != http.StatusOK {
					t.Fatalf("expected 200, got %d", rec.Code)
				}
				if rec.Body.String() != raw {
					t.Errorf("expected full body, got %q", rec.Body.String())
				}
			}
		})
	}
}

func TestComputeETag(t *testing.T) {
	etag := ComputeETag([]byte("hello"))

	if !strings.HasPrefix(etag, `"`) || !strings.HasSuffix(etag, `"`) {
		t.Errorf("expected double-quoted ETag, got %s", etag)
	}

	hexPart := strings.Trim(etag, `"`)
	if len(hexPart) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(hexPart))
	}
	if hexPart != strings.ToLower(hexPart) {
		t.Errorf("expected lowercase hex, got %s", hexPart)
	}
	if _, err := hex.DecodeString(hexPart); err != nil {
		t.Errorf("ETag is not valid hex: %v", err)
	}
}

func BenchmarkComputeETag(b *testing.B) {
	body := []byte(strings.Repeat(`{"posts":[{"id":1}]}`, 100))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ComputeETag(body)
	}
}
