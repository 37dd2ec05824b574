package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Black-And-White-Club/pizza-walk/app/eventbus"
	"github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard"
	leaderboardcache "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/cache"
	"github.com/Black-And-White-Club/pizza-walk/app/modules/user"
	usermigrations "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/pizza-walk/app/observability"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	"github.com/Black-And-White-Club/pizza-walk/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
)

const pingTimeout = 5 * time.Second

// App holds the infrastructure and modules of the API server.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Router        chi.Router
	EventBus      eventbus.EventBus
	DB            *bun.DB
	Redis         *redis.Client

	LeaderboardModule *leaderboard.Module
	UserModule        *user.Module

	wg sync.WaitGroup
}

// NewApp connects the configured backends and builds every module.
// Postgres, Redis and NATS are all optional; without them the server runs on in-memory fallbacks.
func NewApp(ctx context.Context, cfg *config.Config, obs observability.Observability) (*App, error) {
	logger := obs.Provider.Logger
	app := &App{
		Config:        cfg,
		Observability: obs,
		Router:        newRouter(obs),
	}

	// 1. Event bus
	if cfg.NATS.URL != "" {
		bus, err := eventbus.NewNATSEventBus(cfg.NATS.URL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create event bus: %w", err)
		}
		app.EventBus = bus
	} else {
		logger.InfoContext(ctx, "NATS not configured, using in-memory event bus")
		app.EventBus = eventbus.NewInMemoryEventBus(logger)
	}

	// 2. Snapshot cache
	var cache leaderboardcache.SnapshotCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = client.Close()
			app.closeInfra()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.Redis = client
		cache = leaderboardcache.NewRedisCache(client)
	} else {
		cache = leaderboardcache.NewMemoryCache(time.Now)
	}

	// 3. Leaderboard module
	leaderboardModule, err := leaderboard.NewLeaderboardModule(ctx, cfg, obs, app.EventBus, app.Router, cache)
	if err != nil {
		app.closeInfra()
		return nil, fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	app.LeaderboardModule = leaderboardModule

	// 4. Accounts need Postgres
	if cfg.Postgres.DSN != "" {
		db, err := openDB(ctx, cfg.Postgres.DSN)
		if err != nil {
			app.closeInfra()
			return nil, err
		}
		app.DB = db
		if err := migrateUsers(ctx, db); err != nil {
			app.closeInfra()
			return nil, err
		}

		userModule, err := user.NewUserModule(ctx, cfg, obs, app.EventBus, app.Router, db)
		if err != nil {
			app.closeInfra()
			return nil, fmt.Errorf("failed to initialize user module: %w", err)
		}
		app.UserModule = userModule
	} else {
		logger.WarnContext(ctx, "Postgres not configured, user endpoints are disabled")
	}

	return app, nil
}

func openDB(ctx context.Context, dsn string) (*bun.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return db, nil
}

func migrateUsers(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, usermigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run user migrations: %w", err)
	}
	return nil
}

// Close releases the modules and every backend connection.
func (app *App) Close() error {
	logger := app.Observability.Provider.Logger
	if app.UserModule != nil {
		if err := app.UserModule.Close(); err != nil {
			logger.Error("Failed to close user module", attr.Error(err))
		}
	}
	if app.LeaderboardModule != nil {
		if err := app.LeaderboardModule.Close(); err != nil {
			logger.Error("Failed to close leaderboard module", attr.Error(err))
		}
	}
	app.wg.Wait()
	app.closeInfra()
	return nil
}

func (app *App) closeInfra() {
	logger := app.Observability.Provider.Logger
	if app.EventBus != nil {
		if err := app.EventBus.Close(); err != nil {
			logger.Error("Failed to close event bus", attr.Error(err))
		}
	}
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			logger.Error("Failed to close redis client", attr.Error(err))
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			logger.Error("Failed to close database", attr.Error(err))
		}
	}
}
