package leaderboardhandlers

import (
	"errors"
	"net/http"

	leaderboardservice "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/application"
	leaderboarddomain "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/domain"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
)

func (h *LeaderboardHandlers) timestamp() string {
	return leaderboarddomain.FormatTimestamp(h.now())
}

// HandleTest is the liveness probe the client's connection test calls.
func (h *LeaderboardHandlers) HandleTest(w http.ResponseWriter, r *http.Request) {
	info := h.service.ConnectionInfo()
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "✅ Server is working!",
		"universeId":    info.UniverseID,
		"apiKeyPresent": info.APIKeyConfigured,
		"time":          h.timestamp(),
	})
}

func (h *LeaderboardHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	info := h.service.ConnectionInfo()
	writeJSON(w, http.StatusOK, map[string]any{
		"server":           "running",
		"addr":             h.addr,
		"universeId":       info.UniverseID,
		"apiKeyConfigured": info.APIKeyConfigured,
		"apiKeyLength":     info.APIKeyLength,
		"cacheBackend":     info.CacheBackend,
		"timestamp":        h.timestamp(),
	})
}

func (h *LeaderboardHandlers) HandleDebugDataStore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.service.DebugDataStore(ctx, r.URL.Query().Get("store"))
	if err != nil {
		h.diagnosticError(w, r, "debug data store", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *LeaderboardHandlers) HandleListOrderedStores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	list, err := h.service.ListOrderedStores(ctx)
	if err != nil {
		h.diagnosticError(w, r, "list ordered stores", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *LeaderboardHandlers) HandleForceRobloxTest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	report, err := h.service.ProbeAllStores(ctx)
	if err != nil {
		h.diagnosticError(w, r, "probe stores", err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *LeaderboardHandlers) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.service.ClearCache(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Clearing leaderboard cache failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to clear cache")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Cache cleared",
		"timestamp": h.timestamp(),
	})
}

func (h *LeaderboardHandlers) diagnosticError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, leaderboardservice.ErrMissingCredentials) {
		writeError(w, http.StatusBadRequest, leaderboarddomain.MissingCredentialsMessage)
		return
	}
	ctx := r.Context()
	h.logger.WarnContext(ctx, "Diagnostic request failed",
		attr.ExtractCorrelationID(ctx),
		attr.String("operation", op),
		attr.Error(err),
	)
	writeError(w, http.StatusBadGateway, err.Error())
}
