// internal/handlers/schedule_handler_test.go
package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbamerni/tzbi-vo/internal/handlers"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/service/mocks"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func scheduleRouter(handler *handlers.ScheduleHandler) *chi.Mux {
	return newTestRouter(func(r chi.Router) {
		r.Get("/schedule/{date}", handler.GetSchedule)
		r.Put("/schedule/{date}", handler.PutSchedule)
		r.Get("/schedule/{date}/groups", handler.GetScheduleGroups)
	})
}

func TestScheduleHandler_GetSchedule(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	tests := []struct {
		name           string
		date           string
		userID         *uuid.UUID
		setupMock      func(m *mocks.ScheduleService)
		expectedStatus int
	}{
		{
			name:   "success",
			date:   "2024-03-01",
			userID: &userID,
			setupMock: func(m *mocks.ScheduleService) {
				m.On("Resolve", mock.Anything, userID, "2024-03-01").
					Return(&model.ScheduleConfig{
						Date:           "2024-03-01",
						ActiveGroupIDs: []uuid.UUID{groupID},
						ActiveDhikrIDs: []uuid.UUID{},
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "invalid date",
			date:   "03-01-2024",
			userID: &userID,
			setupMock: func(m *mocks.ScheduleService) {
				m.On("Resolve", mock.Anything, userID, "03-01-2024").
					Return(nil, model.ErrInvalidInput).Once()
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing user",
			date:           "2024-03-01",
			userID:         nil,
			setupMock:      func(m *mocks.ScheduleService) {},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(mocks.ScheduleService)
			tc.setupMock(mockService)
			router := scheduleRouter(handlers.NewScheduleHandler(mockService, testLogger()))

			req := createRequest(t, http.MethodGet, "/schedule/"+tc.date, nil, tc.userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			if tc.expectedStatus == http.StatusOK {
				var got model.ScheduleConfig
				decodeBody(t, rr, &got)
				assert.Equal(t, []uuid.UUID{groupID}, got.ActiveGroupIDs)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestScheduleHandler_PutSchedule(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()
	dhikrID := uuid.New()

	validBody := model.OverrideRequest{
		ActiveGroupIDs: []uuid.UUID{groupID},
		ActiveDhikrIDs: []uuid.UUID{dhikrID},
	}

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *mocks.ScheduleService)
		expectedStatus int
	}{
		{
			name: "success",
			body: validBody,
			setupMock: func(m *mocks.ScheduleService) {
				m.On("RecordOverride", mock.Anything, userID, "2024-03-01",
					[]uuid.UUID{groupID}, []uuid.UUID{dhikrID}).
					Return(&model.ScheduleConfig{
						Date:           "2024-03-01",
						ActiveGroupIDs: []uuid.UUID{groupID},
						ActiveDhikrIDs: []uuid.UUID{dhikrID},
					}, nil).Once()
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing id lists fails validation",
			body:           map[string]interface{}{},
			setupMock:      func(m *mocks.ScheduleService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mockService := new(mocks.ScheduleService)
			tc.setupMock(mockService)
			router := scheduleRouter(handlers.NewScheduleHandler(mockService, testLogger()))

			req := createRequest(t, http.MethodPut, "/schedule/2024-03-01", tc.body, &userID)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
			mockService.AssertExpectations(t)
		})
	}
}

func TestScheduleHandler_GetScheduleGroups(t *testing.T) {
	userID := uuid.New()
	groupID := uuid.New()

	mockService := new(mocks.ScheduleService)
	mockService.On("DisplayedGroups", mock.Anything, userID, "2024-03-01").
		Return([]model.DhikrGroup{{GroupID: groupID, Name: "Morning", IsActive: true}}, nil).Once()

	router := scheduleRouter(handlers.NewScheduleHandler(mockService, testLogger()))

	req := createRequest(t, http.MethodGet, "/schedule/2024-03-01/groups", nil, &userID)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var got []model.DhikrGroup
	decodeBody(t, rr, &got)
	require.Len(t, got, 1)
	assert.Equal(t, "Morning", got[0].Name)
	mockService.AssertExpectations(t)
}
