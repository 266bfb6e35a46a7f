// internal/handlers/sync_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/service"
	"github.com/mbamerni/tzbi-vo/internal/webutil"
)

type SyncHandler struct {
	service service.SyncService
	logger  *slog.Logger
}

func NewSyncHandler(s service.SyncService, logger *slog.Logger) *SyncHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncHandler{service: s, logger: logger}
}

// PostDrain is called by the UI on connectivity-restored and foreground
// events to push the offline queue.
func (h *SyncHandler) PostDrain(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostDrain"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}
	logger = logger.With(slog.String("user_id", userID.String()))

	result, err := h.service.Drain(r.Context(), userID)
	if err != nil {
		logger.Error("Error draining sync queue", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result)
}

func (h *SyncHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetStatus"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}

	status, err := h.service.Status(r.Context(), userID)
	if err != nil {
		logger.Error("Error reading sync status", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, status)
}
