package leaderboardhandlers

import (
	"errors"
	"fmt"
	"net/http"

	leaderboardservice "github.com/Black-And-White-Club/pizza-walk/app/modules/leaderboard/application"
	"github.com/Black-And-White-Club/pizza-walk/app/observability/attr"
	"github.com/go-chi/chi/v5"
)

// HandleGetLeaderboards always answers 200; upstream trouble shows up in _metadata.
func (h *LeaderboardHandlers) HandleGetLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap := h.service.GetLeaderboards(ctx)
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, snap)
}

func (h *LeaderboardHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := chi.URLParam(r, "category")

	png, err := h.service.RenderChart(ctx, category)
	if errors.Is(err, leaderboardservice.ErrUnknownCategory) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "Chart rendering failed", attr.ExtractCorrelationID(ctx), attr.Category(category), attr.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

func (h *LeaderboardHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.service.ExportWorkbook(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Workbook export failed", attr.ExtractCorrelationID(ctx), attr.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to export leaderboards")
		return
	}

	filename := fmt.Sprintf("pizza-walk-leaderboards-%s.xlsx", h.now().UTC().Format("20060102-150405"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
