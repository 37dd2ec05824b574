package leaderboardrouter

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	leaderboardhandlers "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// recordingHandlers remembers which handler served the last request.
type recordingHandlers struct {
	hit string
}

func (h *recordingHandlers) mark(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.hit = name
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *recordingHandlers) HandleGetLeaderboards(w http.ResponseWriter, r *http.Request) {
	h.mark("leaderboards")(w, r)
}
func (h *recordingHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	h.mark("chart:"+chi.URLParam(r, "category"))(w, r)
}
func (h *recordingHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	h.mark("export")(w, r)
}
func (h *recordingHandlers) HandleTest(w http.ResponseWriter, r *http.Request) { h.mark("test")(w, r) }
func (h *recordingHandlers) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.mark("status")(w, r)
}
func (h *recordingHandlers) HandleDebugDataStore(w http.ResponseWriter, r *http.Request) {
	h.mark("debug")(w, r)
}
func (h *recordingHandlers) HandleListOrderedStores(w http.ResponseWriter, r *http.Request) {
	h.mark("list")(w, r)
}
func (h *recordingHandlers) HandleForceRobloxTest(w http.ResponseWriter, r *http.Request) {
	h.mark("probe")(w, r)
}
func (h *recordingHandlers) HandleClearCache(w http.ResponseWriter, r *http.Request) {
	h.mark("clear")(w, r)
}

var _ leaderboardhandlers.Handlers = (*recordingHandlers)(nil)

func TestRegister(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/leaderboards", "leaderboards"},
		{http.MethodGet, "/api/leaderboards/export.xlsx", "export"},
		{http.MethodGet, "/api/leaderboards/fastest/chart.png", "chart:fastest"},
		{http.MethodGet, "/api/test", "test"},
		{http.MethodGet, "/api/status", "status"},
		{http.MethodGet, "/api/debug-data-store", "debug"},
		{http.MethodGet, "/api/list-ordered-stores", "list"},
		{http.MethodGet, "/api/force-roblox-test", "probe"},
		{http.MethodGet, "/api/clear-cache", "clear"},
	}

	handlers := &recordingHandlers{}
	r := chi.NewRouter()
	Register(r, handlers, []string{"http://localhost:5173"}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			handlers.hit = ""
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusNoContent, rr.Code)
			assert.Equal(t, tt.want, handlers.hit)
		})
	}
}

func TestRegister_Preflight(t *testing.T) {
	r := chi.NewRouter()
	Register(r, &recordingHandlers{}, []string{"http://localhost:5173"}, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	req := httptest.NewRequest(http.MethodOptions, "/api/leaderboards", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
}
