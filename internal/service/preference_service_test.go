// internal/service/preference_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceService_PutThenGet(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewPreferenceService(db, repository.NewGormPreferenceRepository())

	userID := uuid.New()

	_, err := svc.Put(ctx, userID, "last_group", `{"group_id":"abc"}`)
	require.NoError(t, err)

	pref, err := svc.Get(ctx, userID, "last_group")
	require.NoError(t, err)
	assert.Equal(t, `{"group_id":"abc"}`, pref.Value)

	// Overwrite.
	_, err = svc.Put(ctx, userID, "last_group", `{"group_id":"def"}`)
	require.NoError(t, err)
	pref, err = svc.Get(ctx, userID, "last_group")
	require.NoError(t, err)
	assert.Equal(t, `{"group_id":"def"}`, pref.Value)
}

func TestPreferenceService_Get_NotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPreferenceService(db, repository.NewGormPreferenceRepository())

	_, err := svc.Get(context.Background(), uuid.New(), "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestPreferenceService_EmptyKeyRejected(t *testing.T) {
	db := setupTestDB(t)
	svc := NewPreferenceService(db, repository.NewGormPreferenceRepository())

	_, err := svc.Get(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.Put(context.Background(), uuid.New(), "", "x")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestPreferenceService_IsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc := NewPreferenceService(db, repository.NewGormPreferenceRepository())

	userA := uuid.New()
	userB := uuid.New()

	_, err := svc.Put(ctx, userA, "theme", "dark")
	require.NoError(t, err)

	_, err = svc.Get(ctx, userB, "theme")
	assert.ErrorIs(t, err, model.ErrNotFound)
}
