package user

import (
	"context"
	"sync"

	"github.com/Black-And-White-Club/pizza-walk/app/httpmiddleware"
	userservice "github.com/Black-And-White-Club/pizza-walk/app/modules/user/application"
	userhandlers "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/handlers"
	userdb "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/repositories"
	userrouter "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/router"
	"github.com/Black-And-White-Club/pizza-walk/app/observability"
	"github.com/Black-And-White-Club/pizza-walk/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"golang.org/x/time/rate"
)

// Module represents the user module.
type Module struct {
	UserService   userservice.Service
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewUserModule wires the user repository, service and HTTP routes.
func NewUserModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	publisher userservice.Publisher,
	httpRouter chi.Router,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "user.NewUserModule initializing")

	repo := userdb.NewRepository(db)
	service := userservice.NewUserService(repo, publisher, logger, obs.Registry.UserMetrics, tracer, db)

	if httpRouter != nil {
		handlers := userhandlers.NewUserHandlers(service, logger, tracer)
		limiter := httpmiddleware.NewIPRateLimiter(rate.Limit(cfg.HTTP.RateLimit), cfg.HTTP.RateBurst)
		userrouter.Register(httpRouter, handlers, cfg.HTTP.AllowedOrigins, limiter, logger)
	}

	return &Module{
		UserService:   service,
		observability: obs,
	}, nil
}

// Run starts the user module.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting user module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "User module goroutine stopped")
}

// Close shuts down the user module.
func (m *Module) Close() error {
	m.observability.Provider.Logger.Info("Stopping user module")
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}
