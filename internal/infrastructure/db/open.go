package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/inkwell/blog-system/internal/core/ports"
	"github.com/inkwell/blog-system/internal/infrastructure/db/memory"
	"github.com/inkwell/blog-system/internal/infrastructure/db/mongo"
	"github.com/inkwell/blog-system/internal/infrastructure/db/postgres"
	"github.com/inkwell/blog-system/internal/infrastructure/db/redis"
	"github.com/inkwell/blog-system/internal/infrastructure/db/sqlite"
	"github.com/inkwell/blog-system/internal/pkg/config"
)

// Stores bundles the storage dependencies of the services.
type Stores struct {
	Backend     string
	KV          *Instrumented
	Idempotency ports.IdempotencyStore
	// Mongo is set when the store backend or the credential provider uses
	// MongoDB. Both share this one connection.
	Mongo   *mongo.Conn
	closers []func(context.Context) error
}

// Close releases every connection opened by Open, in reverse order.
func (s *Stores) Close(ctx context.Context) error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Open connects the backend named by cfg.StoreBackend, plus MongoDB when
// cfg.AuthProvider needs it. Idempotency keys live in Redis when that backend
// is selected and in process memory otherwise.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	s := &Stores{Backend: cfg.StoreBackend}

	var kv Backend
	switch cfg.StoreBackend {
	case "memory":
		kv = memory.NewStore()

	case "redis":
		client, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return client.Close() })
		kv = redis.NewStore(client, "")
		s.Idempotency = redis.NewIdempotencyStore(client)

	case "mongo":
		conn, err := s.mongoConn(ctx, cfg)
		if err != nil {
			return nil, err
		}
		kv = conn.Store()

	case "postgres":
		pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { pool.Close(); return nil })
		store := postgres.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		kv = store

	case "sqlite":
		store, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func(context.Context) error { return store.Close() })
		kv = store

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	if cfg.AuthProvider == "mongo" {
		if _, err := s.mongoConn(ctx, cfg); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
	}

	if s.Idempotency == nil {
		s.Idempotency = memory.NewIdempotencyStore()
	}
	s.KV = Instrument(cfg.StoreBackend, kv)

	log.Info().Str("backend", cfg.StoreBackend).Msg("store opened")
	return s, nil
}

// mongoConn returns the shared MongoDB connection, dialing it on first use.
func (s *Stores) mongoConn(ctx context.Context, cfg *config.Config) (*mongo.Conn, error) {
	if s.Mongo != nil {
		return s.Mongo, nil
	}
	conn, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, conn.Close)
	s.Mongo = conn
	return conn, nil
}
