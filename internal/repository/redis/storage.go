package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/redis/go-redis/v9"
)

const storagePrefix = "browser:"

// Storage implements domain.Storage with one hash per browser
type Storage struct {
	client *Client
	ttl    time.Duration
}

// NewStorage creates a new redis-backed storage
func NewStorage(client *Client, ttl time.Duration) *Storage {
	return &Storage{client: client, ttl: ttl}
}

func storageKey(browserID string) string {
	return storagePrefix + browserID
}

func (s *Storage) Get(ctx context.Context, browserID, key string) (string, error) {
	value, err := s.client.rdb.HGet(ctx, storageKey(browserID), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("failed to get item: %w", err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, browserID, key, value string) error {
	hashKey := storageKey(browserID)

	pipe := s.client.rdb.TxPipeline()
	pipe.HSet(ctx, hashKey, key, value)
	if s.ttl > 0 {
		pipe.Expire(ctx, hashKey, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set item: %w", err)
	}
	return nil
}

func (s *Storage) Remove(ctx context.Context, browserID, key string) error {
	if err := s.client.rdb.HDel(ctx, storageKey(browserID), key).Err(); err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *Storage) Close() error {
	return s.client.Close()
}
