package config

import (
	"testing"
	"time"
)

func TestLoadConfig_DefaultsAndRequired(t *testing.T) {
	t.Setenv("STASH_CLIENT_KEY", "ck")
	t.Setenv("STASH_DEVICE_ID", "dev")
	t.Setenv("KEY_CACHE_TTL", "15m")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default port, got %q", cfg.HTTPPort)
	}
	if cfg.StashBaseURL != "https://api.stashcat.com" {
		t.Fatalf("unexpected base url %q", cfg.StashBaseURL)
	}
	if cfg.JWTAccessTTLMinutes != 15 {
		t.Fatalf("expected default jwt ttl 15, got %d", cfg.JWTAccessTTLMinutes)
	}
	if cfg.KeyCacheTTL != 15*time.Minute {
		t.Fatalf("expected 15m ttl, got %v", cfg.KeyCacheTTL)
	}
}

func TestLoadConfig_MissingClientKey(t *testing.T) {
	t.Setenv("STASH_CLIENT_KEY", "")
	t.Setenv("STASH_DEVICE_ID", "dev")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for missing STASH_CLIENT_KEY")
	}
}
