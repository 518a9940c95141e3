package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores one file per key inside a base directory. The
// filename is the SHA-1 digest of the key, so arbitrary key strings are
// safe filesystem identifiers, and the file's mtime encodes the expiry:
// an mtime in the future means the entry is still valid.
type FileCache struct {
	dir string
}

// NewFileCache creates the base directory (including parents) if absent
// and fails if it cannot.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return &FileCache{dir: dir}, nil
}

// Digest maps an arbitrary key string to its storage identifier.
func Digest(key string) string {
	sum := sha1.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}

// Dir returns the cache's base directory.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, Digest(key))
}

// Load returns the payload saved under key, or (nil, nil) when the
// entry is absent or expired. Expired entries are left on disk.
func (c *FileCache) Load(ctx context.Context, key string) ([]byte, error) {
	if !c.Contains(ctx, key) {
		return nil, nil
	}

	data, err := os.ReadFile(c.path(key))
	if err != nil {
		// Raced with a clear; indistinguishable from absent.
		return nil, nil
	}
	return data, nil
}

// Save replaces any existing entry for key, writes the payload and
// stamps the expiry as the file's mtime.
func (c *FileCache) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.Clear(ctx, key); err != nil {
		return err
	}

	path := c.path(key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}

	expiresAt := time.Now().Add(ttl)
	if err := os.Chtimes(path, expiresAt, expiresAt); err != nil {
		return fmt.Errorf("stamp cache expiry: %w", err)
	}
	return nil
}

// Contains reports whether an entry exists for key and has not expired.
func (c *FileCache) Contains(ctx context.Context, key string) bool {
	info, err := os.Stat(c.path(key))
	if err != nil {
		return false
	}
	return info.ModTime().After(time.Now())
}

// Clear removes the entry for key; absent entries are a no-op.
func (c *FileCache) Clear(ctx context.Context, key string) error {
	if err := os.Remove(c.path(key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("clear cache entry: %w", err)
	}
	return nil
}
