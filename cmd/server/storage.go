package main

import (
	"context"
	"fmt"
	"time"

	"github.com/Rrens/code-search-web/internal/api/middleware"
	"github.com/Rrens/code-search-web/internal/config"
	"github.com/Rrens/code-search-web/internal/domain"
	"github.com/Rrens/code-search-web/internal/repository/memory"
	"github.com/Rrens/code-search-web/internal/repository/postgres"
	"github.com/Rrens/code-search-web/internal/repository/redis"
	"github.com/Rrens/code-search-web/internal/repository/sqlite"
	"github.com/rs/zerolog/log"
)

// stores holds the storage backend selected by session.driver
type stores struct {
	storage domain.Storage
	// redis is set when the redis driver is used; the login limiter shares it
	redis *redis.Client
	// local is the in-process login limiter, swept until Close
	local *memory.RateLimiter
}

const loginLimiterScope = "login"

func openStorage(ctx context.Context, cfg *config.Config) (*stores, error) {
	ttl := cfg.Session.TTL

	switch cfg.Session.Driver {
	case config.DriverMemory:
		log.Warn().Msg("Using in-memory browser storage; sign-ins are lost on restart")
		return &stores{storage: memory.NewStorage(ttl, 10*time.Minute)}, nil

	case config.DriverRedis:
		client, err := redis.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return &stores{storage: redis.NewStorage(client, ttl), redis: client}, nil

	case config.DriverSQLite:
		storage, err := sqlite.Open(ctx, cfg.SQLite.Path, ttl)
		if err != nil {
			return nil, err
		}
		return &stores{storage: storage}, nil

	case config.DriverPostgres:
		if err := postgres.RunMigrations(cfg.Database.DSN()); err != nil {
			return nil, err
		}
		db, err := postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return &stores{storage: postgres.NewStorage(db, ttl)}, nil
	}

	return nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
}

// limiter counts login attempts in redis when available so every instance
// shares the budget, otherwise in process.
func (s *stores) limiter(cfg config.RateLimitConfig) middleware.Limiter {
	if s.redis != nil {
		return redis.NewRateLimiter(s.redis, loginLimiterScope, cfg.RequestsPerMinute, cfg.Burst)
	}
	s.local = memory.NewRateLimiter(cfg.RequestsPerMinute, cfg.Burst, 10*time.Minute)
	return s.local
}

func (s *stores) Close() error {
	if s.local != nil {
		s.local.Close()
	}
	return s.storage.Close()
}
