package secrets

import (
	"context"
	"testing"
)

func TestEnvProvider_GetSecret(t *testing.T) {
	t.Setenv("PERCH_SECRET_TEST_KEY", "test-value")

	provider := NewEnvProvider("PERCH_SECRET_")

	value, err := provider.GetSecret(context.Background(), "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if value != "test-value" {
		t.Errorf("expected value 'test-value', got '%s'", value)
	}
}

func TestEnvProvider_GetSecret_NotFound(t *testing.T) {
	provider := NewEnvProvider("PERCH_SECRET_")

	_, err := provider.GetSecret(context.Background(), "nonexistent-key")
	if err == nil {
		t.Error("expected error for nonexistent secret, got nil")
	}
}

func TestEnvProvider_GetSecret_NotCached(t *testing.T) {
	t.Setenv("PERCH_SECRET_ROTATED_TOKEN", "before")

	provider := NewEnvProvider("PERCH_SECRET_")

	value, err := provider.GetSecret(context.Background(), "rotated-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "before" {
		t.Errorf("expected 'before', got '%s'", value)
	}

	t.Setenv("PERCH_SECRET_ROTATED_TOKEN", "after")

	value, err = provider.GetSecret(context.Background(), "rotated-token")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "after" {
		t.Errorf("expected rotated value 'after', got '%s'", value)
	}
}

func TestEnvProvider_SecretNameConversion(t *testing.T) {
	tests := []struct {
		name       string
		secretName string
		envVarName string
	}{
		{
			name:       "simple name",
			secretName: "token",
			envVarName: "PERCH_SECRET_TOKEN",
		},
		{
			name:       "name with hyphens",
			secretName: "upstream-token",
			envVarName: "PERCH_SECRET_UPSTREAM_TOKEN",
		},
		{
			name:       "name with underscores",
			secretName: "my_secret_key",
			envVarName: "PERCH_SECRET_MY_SECRET_KEY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVarName, "expected")

			provider := NewEnvProvider("PERCH_SECRET_")

			value, err := provider.GetSecret(context.Background(), tt.secretName)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if value != "expected" {
				t.Errorf("expected value 'expected', got '%s'", value)
			}
		})
	}
}

func TestEnvProvider_Supports(t *testing.T) {
	provider := NewEnvProvider("PERCH_SECRET_")

	if !provider.Supports("anything-at-all") {
		t.Error("env provider should support any secret name")
	}
}

func TestEnvProvider_Provider(t *testing.T) {
	provider := NewEnvProvider("PERCH_SECRET_")

	if got := provider.Provider(); got != "env" {
		t.Errorf("expected provider name 'env', got '%s'", got)
	}
}
