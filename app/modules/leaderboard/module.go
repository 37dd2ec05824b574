package leaderboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Black-And-White-Club/pizza-walk/app/httpmiddleware"
	leaderboardservice "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/application"
	leaderboardcache "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/cache"
	leaderboardhandlers "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/handlers"
	leaderboardqueue "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/queue"
	"github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/roblox"
	leaderboardrouter "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/router"
	"github.com/Black-And-White-Club/pizza-walk/app/observability"
	"github.com/Black-And-White-Club/pizza-walk/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

const queueStopTimeout = 30 * time.Second

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService leaderboardservice.Service
	queue              *leaderboardqueue.Service
	cancelFunc         context.CancelFunc
	observability      observability.Observability
}

// NewLeaderboardModule wires the Roblox client, the snapshot service and the HTTP routes.
// The periodic warmer is only started when Postgres and a warm interval are configured.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	publisher leaderboardservice.Publisher,
	httpRouter chi.Router,
	cache leaderboardcache.SnapshotCache,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing")

	// 1. Upstream client
	client := roblox.NewHTTPClient(roblox.Config{
		APIKey:         cfg.Roblox.APIKey,
		UniverseID:     cfg.Roblox.UniverseID,
		BaseURL:        cfg.Roblox.BaseURL,
		UsersBaseURL:   cfg.Roblox.UsersBaseURL,
		RequestTimeout: cfg.Roblox.RequestTimeout,
		LookupRPS:      cfg.Roblox.LookupRPS,
	}, logger)

	// 2. Service
	service := leaderboardservice.NewLeaderboardService(
		client,
		cache,
		publisher,
		leaderboardservice.Config{
			HasCredentials:    cfg.Roblox.HasCredentials(),
			APIKey:            cfg.Roblox.APIKey,
			UniverseID:        cfg.Roblox.UniverseID,
			PageSize:          cfg.Roblox.PageSize,
			LookupConcurrency: cfg.Roblox.LookupConcurrency,
			CacheTTL:          cfg.Leaderboard.CacheTTL,
			ProbeDelay:        cfg.Roblox.ProbeDelay,
			RefreshTimeout:    cfg.Leaderboard.RefreshTimeout,
		},
		logger,
		obs.Registry.LeaderboardMetrics,
		tracer,
	)
	if !cfg.Roblox.HasCredentials() {
		logger.WarnContext(ctx, "Roblox credentials not configured, leaderboards will use fallback data")
	}

	// 3. HTTP routes
	if httpRouter != nil {
		handlers := leaderboardhandlers.NewLeaderboardHandlers(service, logger, tracer, cfg.HTTP.Addr)
		limiter := httpmiddleware.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)
		leaderboardrouter.Register(httpRouter, handlers, cfg.HTTP.AllowedOrigins, limiter, logger)
	}

	module := &Module{
		LeaderboardService: service,
		observability:      obs,
	}

	// 4. Optional cache warmer
	if cfg.Postgres.DSN != "" && cfg.Leaderboard.WarmInterval > 0 {
		queue, err := leaderboardqueue.NewService(ctx, cfg.Postgres.DSN, service, cfg.Leaderboard.WarmInterval, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create leaderboard queue service: %w", err)
		}
		module.queue = queue
	}

	return module, nil
}

// Run starts the leaderboard module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.queue != nil {
		if err := m.queue.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start leaderboard queue", "error", err)
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close shuts down the leaderboard module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.queue != nil {
		ctx, cancel := context.WithTimeout(context.Background(), queueStopTimeout)
		defer cancel()
		if err := m.queue.Stop(ctx); err != nil {
			logger.Error("Error stopping leaderboard queue", "error", err)
			return fmt.Errorf("error stopping leaderboard queue: %w", err)
		}
	}

	logger.Info("Leaderboard module stopped")
	return nil
}
