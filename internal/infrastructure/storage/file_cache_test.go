package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	cache := testFileCache(t)
	ctx := context.Background()

	if err := cache.Save(ctx, "posts", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	if !cache.Contains(ctx, "posts") {
		t.Error("expected Contains to be true after save")
	}

	data, err := cache.Load(ctx, "posts")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(data) != "payload" {
		t.Errorf("expected %q, got %q", "payload", data)
	}
}

func TestFileCacheMissingKey(t *testing.T) {
	cache := testFileCache(t)
	ctx := context.Background()

	if cache.Contains(ctx, "never-saved") {
		t.Error("expected Contains to be false for missing key")
	}
	data, err := cache.Load(ctx, "never-saved")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Errorf("expected absent, got %q", data)
	}
}

func TestFileCacheNegativeTTLExpiresImmediately(t *testing.T) {
	cache := testFileCache(t)
	ctx := context.Background()

	if err := cache.Save(ctx, "posts", []byte("stale"), -time.Second); err != nil {
		t.Fatalf("save: %v", err)
	}

	if cache.Contains(ctx, "posts") {
		t.Error("expected entry with negative ttl to read as expired")
	}
	data, err := cache.Load(ctx, "posts")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if data != nil {
		t.Errorf("expected absent, got %q", data)
	}

	// The file itself is not eagerly deleted.
	path := filepath.Join(cache.Dir(), Digest("posts"))
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected expired entry file to remain on disk: %v", err)
	}
}

func TestFileCacheOverwrite(t *testing.T) {
	cache := testFileCache(t)
	ctx := context.Background()

	if err := cache.Save(ctx, "posts", []byte("first"), time.Hour); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := cache.Save(ctx, "posts", []byte("second"), time.Hour); err != nil {
		t.Fatalf("save second: %v", err)
	}

	data, _ := cache.Load(ctx, "posts")
	if string(data) != "second" {
		t.Errorf("expected overwrite to win, got %q", data)
	}
}

func TestFileCacheClear(t *testing.T) {
	cache := testFileCache(t)
	ctx := context.Background()

	if err := cache.Clear(ctx, "absent"); err != nil {
		t.Errorf("clear of absent key should be a no-op, got %v", err)
	}

	if err := cache.Save(ctx, "posts", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := cache.Clear(ctx, "posts"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cache.Contains(ctx, "posts") {
		t.Error("expected entry to be gone after clear")
	}
}

func TestNewFileCacheCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	if _, err := NewFileCache(dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("expected cache dir to exist: %v", err)
	}
}

func TestDigestIsStableAndHex(t *testing.T) {
	a := Digest("posts")
	b := Digest("posts")
	if a != b {
		t.Errorf("digest not stable: %q vs %q", a, b)
	}
	if len(a) != 40 {
		t.Errorf("expected 40 hex chars, got %d (%q)", len(a), a)
	}
	if Digest("other") == a {
		t.Error("different keys should not collide")
	}
}

func testFileCache(t *testing.T) *FileCache {
	t.Helper()
	cache, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("new file cache: %v", err)
	}
	return cache
}
