// internal/handlers/counter_handler.go
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
	"github.com/google/uuid"
)

type CounterHandler struct {
	service service.CounterService
	logger  *slog.Logger
}

func NewCounterHandler(s service.CounterService, logger *slog.Logger) *CounterHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CounterHandler{service: s, logger: logger}
}

// GetDay returns the per-dhikr counts for one day.
func (h *CounterHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "GetDay"))

	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return
	}
	date := chi.URLParam(r, "date")
	logger = logger.With(slog.String("user_id", userID.String()), slog.String("date", date))

	day, err := h.service.LoadDay(r.Context(), userID, date)
	if err != nil {
		logger.Error("Error loading day", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, day)
}

// PostIncrement is the tap endpoint.
func (h *CounterHandler) PostIncrement(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostIncrement"))

	userID, dhikrID, date, ok := h.counterParams(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(
		slog.String("user_id", userID.String()),
		slog.String("dhikr_id", dhikrID.String()),
		slog.String("date", date))

	result, err := h.service.Increment(r.Context(), userID, dhikrID, date)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Info("Dhikr not found", slog.Any("error", err))
		} else {
			logger.Error("Error incrementing counter", slog.Any("error", err))
		}
		webutil.HandleError(w, logger, err)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, result)
}

// PostReset zeroes a counter.
func (h *CounterHandler) PostReset(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PostReset"))

	userID, dhikrID, date, ok := h.counterParams(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(
		slog.String("user_id", userID.String()),
		slog.String("dhikr_id", dhikrID.String()),
		slog.String("date", date))

	result, err := h.service.Reset(r.Context(), userID, dhikrID, date)
	if err != nil {
		logger.Error("Error resetting counter", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Counter reset")
	webutil.RespondWithJSON(w, http.StatusOK, result)
}

// PutCount sets a counter to an exact value.
func (h *CounterHandler) PutCount(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(slog.String("handler", "PutCount"))

	userID, dhikrID, date, ok := h.counterParams(w, r, logger)
	if !ok {
		return
	}
	logger = logger.With(
		slog.String("user_id", userID.String()),
		slog.String("dhikr_id", dhikrID.String()),
		slog.String("date", date))

	var req model.ManualSetRequest
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

	result, err := h.service.SetCount(r.Context(), userID, dhikrID, date, &req)
	if err != nil {
		logger.Error("Error setting counter", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Counter set", slog.Int("value", result.Count))
	webutil.RespondWithJSON(w, http.StatusOK, result)
}

// counterParams extracts user id, item id and the target date. The date
// query parameter defaults to today.
func (h *CounterHandler) counterParams(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (uuid.UUID, uuid.UUID, string, bool) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		logger.Warn("Unauthorized access attempt", slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"UNAUTHORIZED", "Authentication required.", "", model.ErrForbidden))
		return uuid.Nil, uuid.Nil, "", false
	}

	itemIDStr := chi.URLParam(r, "item_id")
	dhikrID, err := uuid.Parse(itemIDStr)
	if err != nil {
		logger.Warn("Invalid item ID format in URL", slog.String("item_id_str", itemIDStr), slog.String("error", err.Error()))
		webutil.HandleError(w, logger, model.NewAppError(
			"INVALID_URL_PARAM", "item_id is malformed.", "item_id", model.ErrInvalidInput))
		return uuid.Nil, uuid.Nil, "", false
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = model.Today()
	}
	return userID, dhikrID, date, true
}
