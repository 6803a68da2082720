// Package platform opens the stores shared by the server and the scheduler.
package platform

import (
	"context"
	"time"

	"github.com/ujjiboni/dashboard/internal/cache"
	"github.com/ujjiboni/dashboard/internal/config"
	"github.com/ujjiboni/dashboard/internal/guard"
	"github.com/ujjiboni/dashboard/internal/repository"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// OpenStateRepository opens the configured state store. The returned func
// closes it.
func OpenStateRepository(ctx context.Context, cfg *config.Config) (repository.StateRepository, func(), error) {
	if cfg.State.Driver != config.DriverPostgres {
		return repository.NewMemoryStateRepository(), func() {}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := repository.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return repository.NewStateRepository(db), func() { db.Close() }, nil
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.GetConnMaxLifetime())

	return db, nil
}

// OpenCache returns the query cache and submission guard for the configured
// driver. With redis both share one client, closed by the returned func.
func OpenCache(cfg *config.Config, submissionTTL time.Duration) (cache.QueryCache, guard.Guard, func()) {
	if cfg.Cache.Driver != config.DriverRedis {
		return cache.NewMemoryCache(cfg.GetCacheStaleTime()), guard.NewMemoryGuard(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return cache.NewRedisCache(client, cfg.GetCacheStaleTime()),
		guard.NewRedisGuard(client, submissionTTL),
		func() { client.Close() }
}
