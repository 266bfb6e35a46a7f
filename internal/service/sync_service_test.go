// internal/service/sync_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/repository"
	repomocks "github.com/mbamerni/tzbi-vo/internal/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSyncService_Enqueue_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	queueRepo := repository.NewGormQueueRepository()
	mockRemote := new(repomocks.RemoteStore)
	svc := NewSyncService(db, queueRepo, mockRemote)

	userID := uuid.New()
	dhikrID := uuid.New()

	require.NoError(t, svc.Enqueue(ctx, userID, dhikrID, "2024-03-01", 5))
	require.NoError(t, svc.Enqueue(ctx, userID, dhikrID, "2024-03-01", 9))
	require.NoError(t, svc.Enqueue(ctx, userID, dhikrID, "2024-03-01", 12))

	pending, err := svc.PendingForDay(ctx, userID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, 12, pending[dhikrID])

	// Drain pushes exactly the last enqueued value, once.
	mockRemote.On("UpsertLog", mock.Anything, userID, dhikrID, "2024-03-01", 12).Return(nil).Once()

	result, err := svc.Drain(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 0, result.Remaining)
	assert.Empty(t, result.Rejected)
	mockRemote.AssertExpectations(t)

	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Pending)
	assert.Nil(t, status.OldestQueuedAt)
}

func TestSyncService_Enqueue_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSyncService(db, repository.NewGormQueueRepository(), new(repomocks.RemoteStore))

	err := svc.Enqueue(context.Background(), uuid.New(), uuid.New(), "bad-date", 3)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	err = svc.Enqueue(context.Background(), uuid.New(), uuid.New(), "2024-03-01", -1)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestSyncService_Drain_TransientFailureRetains(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	queueRepo := repository.NewGormQueueRepository()
	mockRemote := new(repomocks.RemoteStore)
	svc := NewSyncService(db, queueRepo, mockRemote)

	userID := uuid.New()
	dhikrID := uuid.New()
	require.NoError(t, svc.Enqueue(ctx, userID, dhikrID, "2024-03-01", 7))

	mockRemote.On("UpsertLog", mock.Anything, userID, dhikrID, "2024-03-01", 7).
		Return(fmt.Errorf("%w: connection refused", model.ErrRemoteUnavailable)).Once()

	result, err := svc.Drain(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 1, result.Remaining)

	// Still queued; a second drain with a healthy remote applies it.
	mockRemote.On("UpsertLog", mock.Anything, userID, dhikrID, "2024-03-01", 7).Return(nil).Once()

	result, err = svc.Drain(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)
	mockRemote.AssertExpectations(t)
}

func TestSyncService_Drain_MissingSessionRetains(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	mockRemote := new(repomocks.RemoteStore)
	svc := NewSyncService(db, repository.NewGormQueueRepository(), mockRemote)

	userID := uuid.New()
	require.NoError(t, svc.Enqueue(ctx, userID, uuid.New(), "2024-03-01", 3))

	mockRemote.On("UpsertLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: remote returned 401", model.ErrNoSession)).Once()

	result, err := svc.Drain(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Remaining)

	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Pending)
	require.NotNil(t, status.OldestQueuedAt)
}

func TestSyncService_Drain_RejectionRemovesAndReports(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	mockRemote := new(repomocks.RemoteStore)
	svc := NewSyncService(db, repository.NewGormQueueRepository(), mockRemote)

	userID := uuid.New()
	badDhikr := uuid.New()
	goodDhikr := uuid.New()
	require.NoError(t, svc.Enqueue(ctx, userID, badDhikr, "2024-03-01", 5))
	require.NoError(t, svc.Enqueue(ctx, userID, goodDhikr, "2024-03-02", 8))

	mockRemote.On("UpsertLog", mock.Anything, userID, badDhikr, "2024-03-01", 5).
		Return(fmt.Errorf("%w: remote returned 422", model.ErrRemoteRejected)).Once()
	mockRemote.On("UpsertLog", mock.Anything, userID, goodDhikr, "2024-03-02", 8).Return(nil).Once()

	result, err := svc.Drain(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 1, result.Applied)
	assert.Equal(t, 0, result.Remaining)
	require.Len(t, result.Rejected, 1)
	assert.Equal(t, badDhikr, result.Rejected[0].DhikrID)
	assert.Equal(t, "2024-03-01", result.Rejected[0].LogDate)

	// Rejected rows do not loop forever.
	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Pending)
	mockRemote.AssertExpectations(t)
}

func TestSyncService_Drain_ConcurrentEnqueueSurvives(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	mockRemote := new(repomocks.RemoteStore)
	svc := NewSyncService(db, repository.NewGormQueueRepository(), mockRemote)

	userID := uuid.New()
	dhikrID := uuid.New()
	require.NoError(t, svc.Enqueue(ctx, userID, dhikrID, "2024-03-01", 3))

	// A tap lands while the drain's remote write is in flight. The newer
	// value must not be wiped when the drain cleans up the pushed row.
	mockRemote.On("UpsertLog", mock.Anything, userID, dhikrID, "2024-03-01", 3).
		Run(func(args mock.Arguments) {
			require.NoError(t, svc.Enqueue(ctx, userID, dhikrID, "2024-03-01", 4))
		}).
		Return(nil).Once()

	result, err := svc.Drain(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Attempted)
	assert.Equal(t, 0, result.Applied)
	assert.Equal(t, 1, result.Remaining)

	status, err := svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Pending)

	pending, err := svc.PendingForDay(ctx, userID, "2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 4, pending[dhikrID])

	// The superseding value drains normally on the next pass.
	mockRemote.On("UpsertLog", mock.Anything, userID, dhikrID, "2024-03-01", 4).Return(nil).Once()

	result, err = svc.Drain(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Applied)

	status, err = svc.Status(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, status.Pending)
	mockRemote.AssertExpectations(t)
}

func TestSyncService_DrainAll_CoversEveryUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	mockRemote := new(repomocks.RemoteStore)
	svc := NewSyncService(db, repository.NewGormQueueRepository(), mockRemote)

	userA := uuid.New()
	userB := uuid.New()
	require.NoError(t, svc.Enqueue(ctx, userA, uuid.New(), "2024-03-01", 1))
	require.NoError(t, svc.Enqueue(ctx, userB, uuid.New(), "2024-03-01", 2))

	mockRemote.On("UpsertLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Twice()

	svc.DrainAll(ctx)

	for _, u := range []uuid.UUID{userA, userB} {
		status, err := svc.Status(ctx, u)
		require.NoError(t, err)
		assert.Equal(t, 0, status.Pending)
	}
	mockRemote.AssertExpectations(t)
}
