// internal/handlers/schedule_handler.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/service"
	"github.com/mbamerni/tzbi-vo/internal/webutil"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type ScheduleHandler struct {
	service service.ScheduleService
	logger  *slog.Logger
}

func NewScheduleHandler(s service.ScheduleService, logger *slog.Logger) *ScheduleHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScheduleHandler{service: s, logger: logger}
}

// GetSchedule resolves the active group/dhikr set for one day.
func (h *ScheduleHandler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetSchedule"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}
	date := chi.URLParam(r, "date")
	logger = logger.With(slog.String("user_id", userID.String()), slog.String("date", date))

	cfg, err := h.service.Resolve(r.Context(), userID, date)
	if err != nil {
		logger.Error("Error resolving schedule", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, cfg)
}

// GetScheduleGroups returns the definitions filtered to the day's snapshot.
func (h *ScheduleHandler) GetScheduleGroups(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetScheduleGroups"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}
	date := chi.URLParam(r, "date")
	logger = logger.With(slog.String("user_id", userID.String()), slog.String("date", date))

	groups, err := h.service.DisplayedGroups(r.Context(), userID, date)
	if err != nil {
		logger.Error("Error listing displayed groups", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	if groups == nil {
		groups = []model.DhikrGroup{}
	}

	webutil.RespondWithJSON(w, http.StatusOK, groups)
}

// PutSchedule records an explicit override snapshot for one day.
func (h *ScheduleHandler) PutSchedule(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutSchedule"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}
	date := chi.URLParam(r, "date")
	logger = logger.With(slog.String("user_id", userID.String()), slog.String("date", date))

	var req model.OverrideRequest
	if err := webutil.DecodeJSONBody(r, &req); err != nil {
		logger.Warn("Failed to decode request body", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"INVALID_REQUEST_BODY", "Request body is malformed.", "", model.ErrInvalidInput))
		return
	}

	if err := webutil.Validator.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			logger.Warn("Validation failed", slog.String("errors", validationErrors.Error()))
			webutil.HandleError(w, logger, webutil.NewValidationErrorResponse(validationErrors))
		} else {
			logger.Error("Unexpected error during validation", slog.Any("error", err))
			webutil.HandleError(w, logger, err)
		}
		return
	}

	cfg, err := h.service.RecordOverride(r.Context(), userID, date, req.ActiveGroupIDs, req.ActiveDhikrIDs)
	if err != nil {
		logger.Error("Error recording schedule override", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Schedule override recorded")
	webutil.RespondWithJSON(w, http.StatusOK, cfg)
}
