// internal/handlers/preference_handler.go
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

type PreferenceHandler struct {
	service service.PreferenceService
	logger  *slog.Logger
}

func NewPreferenceHandler(s service.PreferenceService, logger *slog.Logger) *PreferenceHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferenceHandler{service: s, logger: logger}
}

func (h *PreferenceHandler) GetPreference(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetPreference"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}
	key := chi.URLParam(r, "key")
	logger = logger.With(slog.String("user_id", userID.String()), slog.String("key", key))

	pref, err := h.service.Get(r.Context(), userID, key)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Preference not found")
		} else {
			logger.Error("Error reading preference", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, pref)
}

func (h *PreferenceHandler) PutPreference(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutPreference"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}
	key := chi.URLParam(r, "key")
	logger = logger.With(slog.String("user_id", userID.String()), slog.String("key", key))

	var req model.PutPreferenceRequest
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

	pref, err := h.service.Put(r.Context(), userID, key, req.Value)
	if err != nil {
		logger.Error("Error storing preference", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Preference stored")
	webutil.RespondWithJSON(w, http.StatusOK, pref)
}
