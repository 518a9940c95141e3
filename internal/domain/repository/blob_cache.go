package repository

import (
	"context"
	"time"
)

// BlobCache persists opaque serialized values under string keys with a
// caller-chosen time-to-live.
//
// Absence is never an error: Load returns (nil, nil) both when no entry
// exists and when the entry has expired. Expired entries are not
// eagerly deleted. A negative ttl produces an already-expired entry.
type BlobCache interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Contains(ctx context.Context, key string) bool
	Clear(ctx context.Context, key string) error
}
