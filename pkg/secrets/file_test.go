package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeSecretFile(t *testing.T, dir, name, value string, mode os.FileMode) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(value), mode); err != nil {
		t.Fatalf("failed to write secret file: %v", err)
	}
	// WriteFile honors umask, so force the exact mode.
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("failed to chmod secret file: %v", err)
	}
}

func TestNewFileProvider(t *testing.T) {
	dir := t.TempDir()

	provider, err := NewFileProvider(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.BasePath != dir {
		t.Errorf("expected base path %s, got %s", dir, provider.BasePath)
	}
}

func TestNewFileProvider_MissingDir(t *testing.T) {
	_, err := NewFileProvider("/nonexistent/secrets/dir")
	if err == nil {
		t.Error("expected error for missing directory, got nil")
	}
}

func TestNewFileProvider_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "file", "x", 0600)

	_, err := NewFileProvider(filepath.Join(dir, "file"))
	if err == nil {
		t.Error("expected error for non-directory path, got nil")
	}
}

func TestFileProvider_GetSecret(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "upstream-token", "tok-123\n", 0600)

	provider, err := NewFileProvider(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, err := provider.GetSecret(context.Background(), "upstream-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value != "tok-123" {
		t.Errorf("expected trimmed value 'tok-123', got '%s'", value)
	}
}

func TestFileProvider_GetSecret_ReadOnlyPermission(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "token", "v", 0400)

	provider, err := NewFileProvider(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	value, err := provider.GetSecret(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error for 0400 file: %v", err)
	}
	if value != "v" {
		t.Errorf("expected 'v', got '%s'", value)
	}
}

func TestFileProvider_GetSecret_InsecurePermissions(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "token", "v", 0644)

	provider, err := NewFileProvider(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.GetSecret(context.Background(), "token")
	if err == nil {
		t.Error("expected error for world-readable secret file, got nil")
	}
}

func TestFileProvider_GetSecret_NotFound(t *testing.T) {
	dir := t.TempDir()

	provider, err := NewFileProvider(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = provider.GetSecret(context.Background(), "missing")
	if err == nil {
		t.Error("expected error for missing secret, got nil")
	}
}

func TestFileProvider_GetSecret_Traversal(t *testing.T) {
	dir := t.TempDir()

	provider, err := NewFileProvider(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{"../etc/passwd", "a/b"} {
		if _, err := provider.GetSecret(context.Background(), name); err == nil {
			t.Errorf("expected error for secret name %q, got nil", name)
		}
		if provider.Supports(name) {
			t.Errorf("expected Supports(%q) to be false", name)
		}
	}
}

func TestFileProvider_GetSecret_FreshRead(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "token", "before", 0600)

	provider, err := NewFileProvider(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v, _ := provider.GetSecret(context.Background(), "token"); v != "before" {
		t.Fatalf("expected 'before', got '%s'", v)
	}

	writeSecretFile(t, dir, "token", "after", 0600)

	v, err := provider.GetSecret(context.Background(), "token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != "after" {
		t.Errorf("expected rotated value 'after', got '%s'", v)
	}
}

func TestFileProvider_Supports(t *testing.T) {
	dir := t.TempDir()
	writeSecretFile(t, dir, "present", "v", 0600)

	provider, err := NewFileProvider(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !provider.Supports("present") {
		t.Error("expected Supports to be true for existing file")
	}
	if provider.Supports("absent") {
		t.Error("expected Supports to be false for missing file")
	}
}
