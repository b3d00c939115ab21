package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Rrens/code-search-web/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS browser_storage (
	browser_id TEXT    NOT NULL,
	key        TEXT    NOT NULL,
	value      TEXT    NOT NULL,
	expires_at INTEGER,
	PRIMARY KEY (browser_id, key)
);
CREATE INDEX IF NOT EXISTS idx_browser_storage_expires_at ON browser_storage (expires_at);
`

// Storage implements domain.Storage in a local SQLite file. Rows written with
// a zero ttl have a NULL expires_at and never expire.
type Storage struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// Open opens (and if needed creates) the database at path
func Open(ctx context.Context, path string, ttl time.Duration) (*Storage, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// A single connection serialises writers and keeps :memory: databases shared.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Storage{db: db, ttl: ttl, now: time.Now}, nil
}

func (s *Storage) Get(ctx context.Context, browserID, key string) (string, error) {
	query := `
		SELECT value FROM browser_storage
		WHERE browser_id = ? AND key = ? AND (expires_at IS NULL OR expires_at > ?)
	`
	var value string
	err := s.db.QueryRowContext(ctx, query, browserID, key, s.now().Unix()).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("failed to get item: %w", err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, browserID, key, value string) error {
	query := `
		INSERT INTO browser_storage (browser_id, key, value, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (browser_id, key)
		DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`
	var expiresAt sql.NullInt64
	if s.ttl > 0 {
		expiresAt = sql.NullInt64{Int64: s.now().Add(s.ttl).Unix(), Valid: true}
	}
	if _, err := s.db.ExecContext(ctx, query, browserID, key, value, expiresAt); err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, browserID, key string) error {
	query := `DELETE FROM browser_storage WHERE browser_id = ? AND key = ?`
	if _, err := s.db.ExecContext(ctx, query, browserID, key); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

// Prune deletes expired rows and returns how many were removed
func (s *Storage) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM browser_storage WHERE expires_at <= ?`, s.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune storage: %w", err)
	}
	return res.RowsAffected()
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}
