package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Storage implements domain.Storage on the browser_storage table. A zero ttl
// stores a NULL expires_at, which never expires.
type Storage struct {
	db  *DB
	ttl time.Duration
}

// NewStorage creates a new postgres-backed storage
func NewStorage(db *DB, ttl time.Duration) *Storage {
	return &Storage{db: db, ttl: ttl}
}

func (s *Storage) Get(ctx context.Context, browserID, key string) (string, error) {
	query := `
		SELECT value
		FROM browser_storage
		WHERE browser_id = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > now())
	`
	var value string
	err := s.db.Pool.QueryRow(ctx, query, browserID, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("failed to get item: %w", err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, browserID, key, value string) error {
	query := `
		INSERT INTO browser_storage (browser_id, key, value, updated_at, expires_at)
		VALUES ($1, $2, $3, now(), $4)
		ON CONFLICT (browser_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = now(), expires_at = EXCLUDED.expires_at
	`
	var expiresAt *time.Time
	if s.ttl > 0 {
		t := time.Now().Add(s.ttl)
		expiresAt = &t
	}

	_, err := s.db.Pool.Exec(ctx, query, browserID, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, browserID, key string) error {
	query := `DELETE FROM browser_storage WHERE browser_id = $1 AND key = $2`
	_, err := s.db.Pool.Exec(ctx, query, browserID, key)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

// Prune deletes expired rows and returns how many were removed
func (s *Storage) Prune(ctx context.Context) (int64, error) {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM browser_storage WHERE expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("failed to prune storage: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Close() error {
	s.db.Close()
	return nil
}
