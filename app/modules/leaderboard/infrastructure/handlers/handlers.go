package leaderboardhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	leaderboardservice "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/application"
	"go.opentelemetry.io/otel/trace"
)

// LeaderboardHandlers serves the leaderboard and diagnostic endpoints.
type LeaderboardHandlers struct {
	service leaderboardservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
	addr    string
	now     func() time.Time
}

// NewLeaderboardHandlers creates the handlers. addr is reported by the status endpoint.
func NewLeaderboardHandlers(service leaderboardservice.Service, logger *slog.Logger, tracer trace.Tracer, addr string) *LeaderboardHandlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &LeaderboardHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
		addr:    addr,
		now:     time.Now,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
