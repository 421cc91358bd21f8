package bridge

import (
	"errors"
	"net/url"
	"strings"
	"testing"
)

func TestParseToolsParams(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantTTL int
	}{
		{name: "absent ttl defaults", query: "", wantTTL: 60},
		{name: "empty ttl defaults", query: "ttl=", wantTTL: 60},
		{name: "in range", query: "ttl=120", wantTTL: 120},
		{name: "zero allowed", query: "ttl=0", wantTTL: 0},
		{name: "upper bound", query: "ttl=600", wantTTL: 600},
		{name: "above range clamps", query: "ttl=601", wantTTL: 600},
		{name: "negative clamps to zero", query: "ttl=-5", wantTTL: 0},
		{name: "fraction truncates toward zero", query: "ttl=12.9", wantTTL: 12},
		{name: "negative fraction truncates toward zero", query: "ttl=-0.9", wantTTL: 0},
		{name: "exponent notation", query: "ttl=1e2", wantTTL: 100},
		{name: "huge value clamps without overflow", query: "ttl=1e300", wantTTL: 600},
		{name: "huge negative clamps without overflow", query: "ttl=-1e300", wantTTL: 0},
		{name: "non-numeric defaults", query: "ttl=abc", wantTTL: 60},
		{name: "NaN defaults", query: "ttl=NaN", wantTTL: 60},
		{name: "Infinity defaults", query: "ttl=Infinity", wantTTL: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad query: %v", err)
			}

			params := ParseToolsParams(values)
			if params.TTL != tt.wantTTL {
				t.Errorf("ttl: expected %d, got %d", tt.wantTTL, params.TTL)
			}
		})
	}
}

func TestParseSearchParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantError bool
		wantQ     string
		wantLimit int
		wantTTL   int
	}{
		{
			name:      "minimal",
			query:     "q=golang",
			wantQ:     "golang",
			wantLimit: 20,
			wantTTL:   60,
		},
		{
			name:      "all params",
			query:     "q=golang&limit=50&ttl=300",
			wantQ:     "golang",
			wantLimit: 50,
			wantTTL:   300,
		},
		{
			name:      "missing q",
			query:     "limit=5",
			wantError: true,
		},
		{
			name:      "empty q",
			query:     "q=",
			wantError: true,
		},
		{
			name:      "limit below range clamps",
			query:     "q=x&limit=0",
			wantQ:     "x",
			wantLimit: 1,
			wantTTL:   60,
		},
		{
			name:      "limit above range clamps",
			query:     "q=x&limit=101",
			wantQ:     "x",
			wantLimit: 100,
			wantTTL:   60,
		},
		{
			name:      "negative limit clamps to one",
			query:     "q=x&limit=-3",
			wantQ:     "x",
			wantLimit: 1,
			wantTTL:   60,
		},
		{
			name:      "non-numeric limit defaults",
			query:     "q=x&limit=many",
			wantQ:     "x",
			wantLimit: 20,
			wantTTL:   60,
		},
		{
			name:      "fractional limit truncates",
			query:     "q=x&limit=7.8",
			wantQ:     "x",
			wantLimit: 7,
			wantTTL:   60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad query: %v", err)
			}

			params, err := ParseSearchParams(values)
			if tt.wantError {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if vErr.Param != "q" {
					t.Errorf("expected offending param q, got %q", vErr.Param)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if params.Query != tt.wantQ {
				t.Errorf("q: expected %q, got %q", tt.wantQ, params.Query)
			}
			if params.Limit != tt.wantLimit {
				t.Errorf("limit: expected %d, got %d", tt.wantLimit, params.Limit)
			}
			if params.TTL != tt.wantTTL {
				t.Errorf("ttl: expected %d, got %d", tt.wantTTL, params.TTL)
			}
		})
	}
}

func TestParseSearchParams_QueryLength(t *testing.T) {
	atLimit := url.Values{"q": {strings.Repeat("a", 1000)}}
	if _, err := ParseSearchParams(atLimit); err != nil {
		t.Errorf("expected 1000-char q to be accepted, got %v", err)
	}

	overLimit := url.Values{"q": {strings.Repeat("a", 1001)}}
	if _, err := ParseSearchParams(overLimit); err == nil {
		t.Error("expected 1001-char q to be rejected")
	}

	// Length counts runes, not bytes: 1000 two-byte runes are in range.
	multibyte := url.Values{"q": {strings.Repeat("é", 1000)}}
	if _, err := ParseSearchParams(multibyte); err != nil {
		t.Errorf("expected 1000-rune multibyte q to be accepted, got %v", err)
	}
}
