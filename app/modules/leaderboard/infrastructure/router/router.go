package leaderboardrouter

import (
	"log/slog"

	"github.com/Black-And-White-Club/pizza-walk/app/httpmiddleware"
	leaderboardhandlers "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// Register mounts the leaderboard and diagnostic endpoints under /api.
func Register(
	httpRouter chi.Router,
	handlers leaderboardhandlers.Handlers,
	allowedOrigins []string,
	limiter *httpmiddleware.IPRateLimiter,
	logger *slog.Logger,
) {
	httpRouter.Route("/api", func(r chi.Router) {
		r.Use(httpmiddleware.CORSMiddleware(allowedOrigins))
		r.Use(httpmiddleware.RateLimitMiddleware(limiter))

		r.Get("/leaderboards", handlers.HandleGetLeaderboards)
		r.Get("/leaderboards/export.xlsx", handlers.HandleExport)
		r.Get("/leaderboards/{category}/chart.png", handlers.HandleChart)

		r.Get("/test", handlers.HandleTest)
		r.Get("/status", handlers.HandleStatus)
		r.Get("/debug-data-store", handlers.HandleDebugDataStore)
		r.Get("/list-ordered-stores", handlers.HandleListOrderedStores)
		r.Get("/force-roblox-test", handlers.HandleForceRobloxTest)
		r.Get("/clear-cache", handlers.HandleClearCache)
	})

	logger.Info("Leaderboard routes registered", slog.String("prefix", "/api"))
}
