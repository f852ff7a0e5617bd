package git

import "testing"

func TestConfigValidate(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing URL")
	}

	cfg.URL = "https://github.com/org/templates.git"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfigRefDefault(t *testing.T) {
	cfg := &Config{URL: "https://github.com/org/templates.git"}
	if got := cfg.ref(); got != "main" {
		t.Errorf("ref() = %q, want main", got)
	}

	cfg.Ref = "v2"
	if got := cfg.ref(); got != "v2" {
		t.Errorf("ref() = %q, want v2", got)
	}
}

func TestConfigToken(t *testing.T) {
	cfg := &Config{URL: "https://github.com/org/templates.git"}

	t.Setenv(DefaultTokenEnv, "default-token")
	if got := cfg.token(); got != "default-token" {
		t.Errorf("token() = %q, want default-token", got)
	}

	cfg.TokenEnv = "CUSTOM_TOKEN_ENV"
	t.Setenv("CUSTOM_TOKEN_ENV", "custom-token")
	if got := cfg.token(); got != "custom-token" {
		t.Errorf("token() = %q, want custom-token", got)
	}
}

func TestNewFetcherRejectsInvalidConfig(t *testing.T) {
	if _, err := NewFetcher(&Config{}); err == nil {
		t.Error("expected error for config without URL")
	}
}

func TestFetcherCleanupWithoutFetch(t *testing.T) {
	f, err := NewFetcher(&Config{URL: "https://github.com/org/templates.git"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.Cleanup(); err != nil {
		t.Errorf("cleanup before fetch should be a no-op, got %v", err)
	}
}
