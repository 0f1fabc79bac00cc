// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/job-matcher/pkg/types"
)

// SQLite persists cached batches in a local database so repeated CLI runs
// within the TTL reuse earlier retrievals.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens or creates the cache database at path.
func OpenSQLite(path string, ttl time.Duration) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &SQLite{db: db, ttl: ttl, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS listing_cache (
			key TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			stored_at INTEGER NOT NULL,
			expires_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_listing_cache_expires ON listing_cache(expires_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the live entry for key.
func (s *SQLite) Get(ctx context.Context, key string) ([]types.Listing, bool, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM listing_cache WHERE key = ? AND expires_at > ?`,
		key, s.now().UnixNano(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var listings []types.Listing
	if err := json.Unmarshal([]byte(payload), &listings); err != nil {
		return nil, false, fmt.Errorf("decoding cache entry %s: %w", key, err)
	}
	return listings, true, nil
}

// Set stores listings under key, replacing any previous entry.
func (s *SQLite) Set(ctx context.Context, key string, listings []types.Listing) error {
	payload, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	now := s.now()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO listing_cache (key, payload, stored_at, expires_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload,
		   stored_at = excluded.stored_at, expires_at = excluded.expires_at`,
		key, string(payload), now.UnixNano(), now.Add(s.ttl).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("writing cache entry: %w", err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (s *SQLite) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM listing_cache WHERE expires_at <= ?`, s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("pruning cache: %w", err)
	}
	return res.RowsAffected()
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
