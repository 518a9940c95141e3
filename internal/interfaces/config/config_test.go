package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("FEED_URL", "http://example.com/feed")
	t.Setenv("TEMPLATE_PATH", "template.html")
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FeedURL != "http://example.com/feed" {
		t.Errorf("unexpected feed url %q", cfg.FeedURL)
	}
	if cfg.CacheBackend != BackendFile {
		t.Errorf("expected default backend %q, got %q", BackendFile, cfg.CacheBackend)
	}
	if cfg.RenderedFilename != "index.html" {
		t.Errorf("unexpected rendered filename %q", cfg.RenderedFilename)
	}
	if cfg.CacheTTL() != 12*time.Hour {
		t.Errorf("expected 12h ttl, got %v", cfg.CacheTTL())
	}
	if !cfg.Typography {
		t.Error("expected typography on by default")
	}
}

func TestLoadConfigMissingFeedURL(t *testing.T) {
	t.Setenv("FEED_URL", "")
	t.Setenv("TEMPLATE_PATH", "template.html")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error without FEED_URL")
	}
}

func TestLoadConfigUnknownBackend(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_BACKEND", "redis")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error for an unknown cache backend")
	}
}

func TestLoadConfigListenRequiresSecret(t *testing.T) {
	setRequired(t)
	t.Setenv("LISTEN_ADDR", ":8080")
	t.Setenv("REBUILD_SECRET", "")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected an error when serving without a rebuild secret")
	}

	t.Setenv("REBUILD_SECRET", "hunter2")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("unexpected listen addr %q", cfg.ListenAddr)
	}
}

func TestLoadConfigCustomTTL(t *testing.T) {
	setRequired(t)
	t.Setenv("CACHE_TTL_HOURS", "1")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.CacheTTL() != time.Hour {
		t.Errorf("expected 1h ttl, got %v", cfg.CacheTTL())
	}
}
