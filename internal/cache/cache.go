// Package cache persists raw metadata-lookup responses in SQLite so
// repeated runs over the same manuscript avoid refetching. It lives at
// the composition boundary; core pipeline code never touches it.
package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/manuscript-tools/refcheck/internal/enrich"
)

// Store wraps a SQLite database of keyed lookup responses.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE IF NOT EXISTS lookups (
			key        TEXT PRIMARY KEY,
			body       BLOB NOT NULL,
			fetched_at TEXT NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the cached body for a key, if present.
func (s *Store) Get(key string) ([]byte, bool) {
	var body []byte
	err := s.db.QueryRow(`SELECT body FROM lookups WHERE key = ?`, key).Scan(&body)
	if err != nil {
		return nil, false
	}
	return body, true
}

// Put stores a body under a key, replacing any previous value.
func (s *Store) Put(key string, body []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO lookups (key, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at`,
		key, body, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("caching lookup: %w", err)
	}
	return nil
}

// WrapFetcher returns a fetcher that consults the cache before falling
// through to next. Responses are cached by request URL; cache write
// failures are ignored so a broken cache never breaks a lookup.
func (s *Store) WrapFetcher(next enrich.Fetcher) enrich.Fetcher {
	return func(ctx context.Context, url string) ([]byte, error) {
		if body, ok := s.Get(url); ok {
			return body, nil
		}
		body, err := next(ctx, url)
		if err != nil {
			return nil, err
		}
		if len(body) > 0 {
			_ = s.Put(url, body)
		}
		return body, nil
	}
}
