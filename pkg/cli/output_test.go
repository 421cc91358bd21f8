package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

type stringerResult struct {
	Name string `json:"name"`
}

func (r stringerResult) String() string {
	return "result: " + r.Name
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  OutputFormat
		wantErr bool
	}{
		{FormatText, false},
		{FormatJSON, false},
		{OutputFormat(""), false},
		{OutputFormat("csv"), true},
		{OutputFormat("yaml"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			formatter, err := NewFormatter(tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NewFormatter(%q) = nil error, want error", tt.format)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewFormatter(%q) error: %v", tt.format, err)
			}
			if formatter == nil {
				t.Fatalf("NewFormatter(%q) returned nil formatter", tt.format)
			}
		})
	}
}

func TestTextFormatter_UsesStringer(t *testing.T) {
	var buf bytes.Buffer
	formatter := &TextFormatter{}

	if err := formatter.FormatTo(&buf, stringerResult{Name: "tools"}); err != nil {
		t.Fatalf("FormatTo error: %v", err)
	}
	if got := buf.String(); got != "result: tools\n" {
		t.Errorf("FormatTo wrote %q, want %q", got, "result: tools\n")
	}

	out, err := formatter.Format(stringerResult{Name: "tools"})
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if string(out) != "result: tools\n" {
		t.Errorf("Format = %q, want %q", out, "result: tools\n")
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := &JSONFormatter{Indent: true}

	if err := formatter.FormatTo(&buf, stringerResult{Name: "tools"}); err != nil {
		t.Fatalf("FormatTo error: %v", err)
	}

	var decoded stringerResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Name != "tools" {
		t.Errorf("decoded name = %q, want %q", decoded.Name, "tools")
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("indented formatter produced unindented output")
	}
}

func TestJSONFormatter_Compact(t *testing.T) {
	formatter := &JSONFormatter{}

	out, err := formatter.Format(stringerResult{Name: "x"})
	if err != nil {
		t.Fatalf("Format error: %v", err)
	}
	if string(out) != `{"name":"x"}` {
		t.Errorf("Format = %q, want compact JSON", out)
	}
}
