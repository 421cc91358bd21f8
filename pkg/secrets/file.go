package secrets

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileProvider loads secrets from files in a directory. This supports
// Kubernetes-style mounted secrets where each secret is a single file named
// after the secret.
//
// Files must have restrictive permissions (0600 or 0400) or the provider
// refuses to read them.
type FileProvider struct {
	BasePath string // Directory containing secret files
}

// NewFileProvider creates a file-based secret provider rooted at basePath.
func NewFileProvider(basePath string) (*FileProvider, error) {
	info, err := os.Stat(basePath)
	if err != nil {
		return nil, fmt.Errorf("secrets directory not accessible: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("secrets path is not a directory: %s", basePath)
	}

	return &FileProvider{
		BasePath: basePath,
	}, nil
}

// GetSecret reads a secret file from the base directory. The file is read on
// every call so rotated secrets take effect without a restart.
func (p *FileProvider) GetSecret(ctx context.Context, name string) (string, error) {
	if strings.Contains(name, "..") || strings.ContainsRune(name, os.PathSeparator) {
		return "", fmt.Errorf("invalid secret name: %s", name)
	}

	path := filepath.Join(p.BasePath, name)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("secret not found: %s", name)
		}
		return "", fmt.Errorf("failed to stat secret file: %w", err)
	}

	mode := info.Mode().Perm()
	if mode != 0600 && mode != 0400 {
		return "", fmt.Errorf("secret file %s has insecure permissions %o, expected 0600 or 0400", name, mode)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file: %w", err)
	}

	return strings.TrimSpace(string(data)), nil
}

// Provider returns the provider name.
func (p *FileProvider) Provider() string {
	return "file"
}

// Supports reports whether a file for the secret exists in the base
// directory.
func (p *FileProvider) Supports(name string) bool {
	if strings.Contains(name, "..") || strings.ContainsRune(name, os.PathSeparator) {
		return false
	}

	path := filepath.Join(p.BasePath, name)
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
