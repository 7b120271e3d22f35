// Package container builds the process-wide components from configuration
// and hands them to the binaries. It holds no package state.
package container

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hbnb/config"
	"github.com/oksasatya/go-hbnb/internal/application"
	repo "github.com/oksasatya/go-hbnb/internal/domain/repository"
	"github.com/oksasatya/go-hbnb/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-hbnb/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-hbnb/internal/interface/http"
	"github.com/oksasatya/go-hbnb/internal/router"
	"github.com/oksasatya/go-hbnb/pkg/helpers"
)

type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Store  repo.Store
	Facade *application.Facade
	JWT    *helpers.JWTManager
	Redis  *redis.Client // nil unless rate limiting is enabled

	pool *pgxpool.Pool
	db   *sql.DB
}

// New wires storage, hashing and auth. With the postgres driver it also
// applies pending migrations.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg, Logger: logger}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MinConns:        cfg.DBMinConns,
			MaxConnLifetime: cfg.DBMaxConnLife,
		})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.pool = pool
		c.db = pginfra.OpenDB(pool)
		c.Store = pginfra.NewStore(c.db)
	default:
		c.Store = memory.NewStore()
	}
	logger.WithField("driver", cfg.StorageDriver).Info("storage ready")

	hasher, err := helpers.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptCost)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Facade = application.NewFacade(c.Store, hasher, logger)
	c.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL, cfg.AppName)

	if cfg.RateLimitEnabled {
		rdb, err := helpers.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			// The limiter fails open, so an unreachable redis only disables it.
			logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
		} else {
			c.Redis = rdb
		}
	}
	return c, nil
}

// RouterDeps is the HTTP surface configuration for this container.
func (c *Container) RouterDeps() router.Deps {
	health := map[string]handlers.Pinger{}
	if c.pool != nil {
		health["postgres"] = c.pool.Ping
	}
	if c.Redis != nil {
		health["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}
	return router.Deps{
		Facade:      c.Facade,
		JWT:         c.JWT,
		Cookies:     helpers.NewCookie(c.Config.CookieDomain, c.Config.CookieSecure),
		Redis:       c.Redis,
		Logger:      c.Logger,
		Health:      health,
		CORSOrigins: c.Config.CORSOrigins(),
		AccessLog:   c.Config.HTTPLogEnabled,
		Limits: router.Limits{
			LoginPerMinute:  c.Config.RateLimitLogin,
			WritesPerMinute: c.Config.RateLimitWrites,
			BypassPrivateIP: c.Config.RateLimitPrivate,
		},
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Close())
	}
	if c.db != nil {
		errs = append(errs, c.db.Close())
	}
	if c.pool != nil {
		c.pool.Close()
	}
	return errors.Join(errs...)
}
