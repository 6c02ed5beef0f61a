package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/comitanigiacomo/kanso-demo-engine/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/config"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/generator"
	"github.com/comitanigiacomo/kanso-demo-engine/internal/core/services"
)

// Resources holds the opened storage and shared connections.
type Resources struct {
	Store domain.KeyValueStore
	Redis *redis.Client

	closers []func() error
}

func (r *Resources) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		errs = append(errs, r.closers[i]())
	}
	return errors.Join(errs...)
}

// Open connects the configured storage backend. Redis is opened whenever a
// host is configured: it backs the redis backend, caches the postgres backend
// and feeds the rate limiter. For other backends an unreachable Redis is only
// logged.
func Open(ctx context.Context, cfg config.Config, log *zap.Logger) (*Resources, error) {
	res := &Resources{}

	if cfg.Redis.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		switch {
		case err == nil:
			res.Redis = rdb
			res.closers = append(res.closers, rdb.Close)
		case cfg.Storage.Backend == config.BackendRedis:
			return nil, err
		default:
			log.Warn("redis unavailable, continuing without cache and rate limiting", zap.Error(err))
		}
	}

	ns := cfg.Storage.Namespace

	switch cfg.Storage.Backend {
	case config.BackendMemory:
		res.Store = repository.NewInMemoryStore()

	case config.BackendSQLite:
		store, err := repository.NewSQLiteStore(cfg.Storage.SQLitePath, ns)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.Store = store
		res.closers = append(res.closers, store.Close)

	case config.BackendRedis:
		res.Store = repository.NewRedisStore(res.Redis, ns)

	case config.BackendPostgres:
		db, err := sqlx.Connect(cfg.Database.Driver, cfg.Database.DSN())
		if err != nil {
			res.Close()
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)
		res.closers = append(res.closers, db.Close)

		pg := repository.NewPostgresStore(db, ns)
		if err := pg.EnsureSchema(ctx); err != nil {
			res.Close()
			return nil, err
		}

		res.Store = pg
		if res.Redis != nil {
			res.Store = repository.NewCachedStore(pg, res.Redis, ns, log.Named("cache"))
		}

	default:
		return nil, config.ErrInvalidBackend
	}

	log.Info("storage ready",
		zap.String("backend", cfg.Storage.Backend),
		zap.Bool("redis", res.Redis != nil),
	)
	return res, nil
}

// DemoOptions translates the demo section of the configuration.
func DemoOptions(cfg config.Config) []services.DemoOption {
	return []services.DemoOption{
		services.WithSource(generator.NewSource(cfg.Demo.Seed)),
		services.WithFreshness(cfg.Demo.Freshness),
		services.WithSyncDelay(cfg.Demo.SyncDelay),
	}
}

// NewClient builds the mode-appropriate client. The DemoStore is also
// returned in demo mode so callers can drive its lifecycle; it is nil in
// live mode.
func NewClient(cfg config.Config, res *Resources, log *zap.Logger) (domain.Client, *services.DemoStore, error) {
	opts := services.ClientOptions{
		Mode:        services.ModeLive,
		Logger:      log,
		LiveURL:     cfg.Live.BaseURL,
		LiveToken:   cfg.Live.Token,
		LiveTimeout: cfg.Live.Timeout,
	}
	if cfg.IsDemo() {
		opts.Mode = services.ModeDemo
		opts.Store = res.Store
		opts.DemoOptions = DemoOptions(cfg)
	}

	client, err := services.NewClient(opts)
	if err != nil {
		return nil, nil, err
	}
	demo, _ := client.(*services.DemoStore)
	return client, demo, nil
}
