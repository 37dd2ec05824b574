package userrouter

import (
	"log/slog"

	"github.com/Black-And-White-Club/pizza-walk/app/httpmiddleware"
	userhandlers "github.com/Black-And-White-Club/pizza-walk/app/modules/user/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register mounts the account endpoints under /api/users.
func Register(
	httpRouter chi.Router,
	handlers userhandlers.Handlers,
	allowedOrigins []string,
	limiter *httpmiddleware.IPRateLimiter,
	logger *slog.Logger,
) {
	httpRouter.Route("/api/users", func(r chi.Router) {
		r.Use(httpmiddleware.CORSMiddleware(allowedOrigins))
		r.Use(httpmiddleware.RateLimitMiddleware(limiter))

		r.Get("/", handlers.HandleListUsers)
		r.Post("/", handlers.HandleCreateUser)
		r.Post("/login", handlers.HandleLogin)
		r.Patch("/{id}/admin", handlers.HandleSetAdmin)
		r.Delete("/{id}", handlers.HandleDeleteUser)
	})

	logger.Info("User routes registered", slog.String("prefix", "/api/users"))
}
