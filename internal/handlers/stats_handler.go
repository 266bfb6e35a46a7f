// internal/handlers/stats_handler.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mbamerni/tzbi-vo/internal/config"
	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/service"
	"github.com/mbamerni/tzbi-vo/internal/webutil"
)

type StatsHandler struct {
	service    service.StatsService
	windowDays int
	logger     *slog.Logger
}

func NewStatsHandler(s service.StatsService, statsCfg config.StatsConfig, logger *slog.Logger) *StatsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatsHandler{service: s, windowDays: statsCfg.HeatmapWindowDays, logger: logger}
}

func (h *StatsHandler) GetStreaks(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStreaks"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}

	streaks, err := h.service.Streaks(r.Context(), userID)
	if err != nil {
		logger.Error("Error calculating streaks", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, streaks)
}

func (h *StatsHandler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetHeatmap"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}

	windowDays := h.windowDays
	if raw := r.URL.Query().Get("window"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 || parsed > 366 {
			logger.Warn("Invalid heatmap window", slog.String("window", raw))
			webutil.HandleError(w, logger, model.NewAppError(
				"INVALID_QUERY_PARAM", "window must be an integer between 0 and 366.", "window", model.ErrInvalidInput))
			return
		}
		windowDays = parsed
	}

	cells, err := h.service.Heatmap(r.Context(), userID, windowDays)
	if err != nil {
		logger.Error("Error building heatmap", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, cells)
}

func (h *StatsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSummary"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		logger.Error("Error building stats summary", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, summary)
}
