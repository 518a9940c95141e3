package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteCache is a BlobCache backend that keeps entries in a sqlite
// database instead of one file per key. Unlike FileCache it stores the
// expiry as an explicit column, which keeps the format self-describing.
// Keys are digested together with a scope string so several feeds can
// share one database file.
type SQLiteCache struct {
	db    *sql.DB
	scope string
}

func NewSQLiteCache(dbPath, scope string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to sqlite database: %w", err)
	}

	cache := &SQLiteCache{db: db, scope: scope}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := cache.initSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return cache, nil
}

func (c *SQLiteCache) initSchema(ctx context.Context) error {
	_, err := c.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS cache_entries (
		key_digest TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		expires_at INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create cache table: %w", err)
	}
	return nil
}

func (c *SQLiteCache) digest(key string) string {
	return Digest(c.scope + "\x00" + key)
}

func (c *SQLiteCache) Load(ctx context.Context, key string) ([]byte, error) {
	var (
		payload   []byte
		expiresAt int64
	)
	err := c.db.QueryRowContext(
		ctx,
		"SELECT payload, expires_at FROM cache_entries WHERE key_digest = ?",
		c.digest(key),
	).Scan(&payload, &expiresAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cache entry: %w", err)
	}
	if expiresAt <= time.Now().UnixNano() {
		// Expired entries read as absent; they are not deleted here.
		return nil, nil
	}
	return payload, nil
}

func (c *SQLiteCache) Save(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	_, err := c.db.ExecContext(
		ctx,
		`INSERT INTO cache_entries (key_digest, payload, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key_digest) DO UPDATE SET
			payload = excluded.payload,
			expires_at = excluded.expires_at`,
		c.digest(key),
		data,
		time.Now().Add(ttl).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("save cache entry: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Contains(ctx context.Context, key string) bool {
	var expiresAt int64
	err := c.db.QueryRowContext(
		ctx,
		"SELECT expires_at FROM cache_entries WHERE key_digest = ?",
		c.digest(key),
	).Scan(&expiresAt)
	if err != nil {
		return false
	}
	return expiresAt > time.Now().UnixNano()
}

func (c *SQLiteCache) Clear(ctx context.Context, key string) error {
	_, err := c.db.ExecContext(
		ctx,
		"DELETE FROM cache_entries WHERE key_digest = ?",
		c.digest(key),
	)
	if err != nil {
		return fmt.Errorf("clear cache entry: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
