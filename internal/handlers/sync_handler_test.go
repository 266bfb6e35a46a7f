// internal/handlers/sync_handler_test.go
package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mbamerni/tzbi-vo/internal/handlers"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func syncRouter(handler *handlers.SyncHandler) *chi.Mux {
	return newTestRouter(func(r chi.Router) {
		r.Post("/sync/drain", handler.PostDrain)
		r.Get("/sync/status", handler.GetStatus)
	})
}

func TestSyncHandler_PostDrain(t *testing.T) {
	userID := uuid.New()
	rejectedDhikr := uuid.New()

	mockService := new(mocks.SyncService)
	mockService.On("Drain", mock.Anything, userID).Return(&model.DrainResult{
		Attempted: 3,
		Applied:   1,
		Remaining: 1,
		Rejected: []model.RejectedMutation{
			{DhikrID: rejectedDhikr, LogDate: "2024-03-01", Reason: "remote returned 422"},
		},
	}, nil).Once()

	router := syncRouter(handlers.NewSyncHandler(mockService, testLogger()))

	req := createRequest(t, http.MethodPost, "/sync/drain", nil, &userID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got model.DrainResult
	decodeBody(t, rr, &got)
	assert.Equal(t, 3, got.Attempted)
	assert.Equal(t, 1, got.Applied)
	assert.Equal(t, 1, got.Remaining)
	require.Len(t, got.Rejected, 1)
	assert.Equal(t, rejectedDhikr, got.Rejected[0].DhikrID)
	mockService.AssertExpectations(t)
}

func TestSyncHandler_PostDrain_Unauthorized(t *testing.T) {
	router := syncRouter(handlers.NewSyncHandler(new(mocks.SyncService), testLogger()))

	req := createRequest(t, http.MethodPost, "/sync/drain", nil, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestSyncHandler_GetStatus(t *testing.T) {
	userID := uuid.New()
	oldest := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mockService := new(mocks.SyncService)
	mockService.On("Status", mock.Anything, userID).
		Return(&model.QueueStatus{Pending: 4, OldestQueuedAt: &oldest}, nil).Once()

	router := syncRouter(handlers.NewSyncHandler(mockService, testLogger()))

	req := createRequest(t, http.MethodGet, "/sync/status", nil, &userID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got model.QueueStatus
	decodeBody(t, rr, &got)
	assert.Equal(t, 4, got.Pending)
	require.NotNil(t, got.OldestQueuedAt)
	assert.True(t, oldest.Equal(*got.OldestQueuedAt))
	mockService.AssertExpectations(t)
}
