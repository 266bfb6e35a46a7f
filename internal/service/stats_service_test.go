// internal/service/stats_service_test.go
package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/mbamerni/tzbi-vo/internal/model"
	repomocks "github.com/mbamerni/tzbi-vo/internal/repository/mocks"
	"github.com/mbamerni/tzbi-vo/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsService_Summary(t *testing.T) {
	ctx := context.Background()
	mockRemote := new(repomocks.RemoteStore)
	mockDefs := new(mocks.DefinitionService)
	svc := NewStatsService(mockRemote, mockDefs)

	userID := uuid.New()
	groupID := uuid.New()
	steady := uuid.New()  // hits its target every day
	partial := uuid.New() // half adherence
	deleted := uuid.New() // log rows without a surviving definition

	today := model.Today()
	yesterday, err := model.AddDays(today, -1)
	require.NoError(t, err)

	mockRemote.On("ReadLogs", mock.Anything, userID, "", "").Return([]model.DailyLogEntry{
		{DhikrID: steady, LogDate: yesterday, Count: 10},
		{DhikrID: steady, LogDate: today, Count: 10},
		{DhikrID: partial, LogDate: today, Count: 5},
		{DhikrID: deleted, LogDate: today, Count: 4},
	}, nil)
	mockDefs.On("Groups", mock.Anything, userID).Return([]model.DhikrGroup{
		{
			GroupID:  groupID,
			IsActive: true,
			Adhkar: []model.Dhikr{
				{DhikrID: steady, GroupID: groupID, Text: "steady", TargetCount: 10, IsActive: true},
				{DhikrID: partial, GroupID: groupID, Text: "partial", TargetCount: 10, IsActive: true},
			},
		},
	}, nil)

	summary, err := svc.Summary(ctx, userID)
	require.NoError(t, err)

	assert.Equal(t, 29, summary.TotalCount)
	assert.Equal(t, 19, summary.TodayCount)
	assert.Equal(t, 2, summary.Streaks.CurrentStreak)

	require.Len(t, summary.DailyActivity, 7)
	assert.Equal(t, today, summary.DailyActivity[6].Date)
	assert.Equal(t, 19, summary.DailyActivity[6].Count)
	assert.Equal(t, 10, summary.DailyActivity[5].Count)
	assert.Equal(t, 0, summary.DailyActivity[0].Count)

	// Ranked by adherence; the deleted dhikr's rows count toward totals
	// but are not ranked.
	require.Len(t, summary.TopAdhkar, 2)
	assert.Equal(t, steady, summary.TopAdhkar[0].DhikrID)
	assert.InDelta(t, 1.0, summary.TopAdhkar[0].Adherence, 1e-9)
	assert.Equal(t, 2, summary.TopAdhkar[0].DaysActive)
	assert.Equal(t, partial, summary.TopAdhkar[1].DhikrID)
	assert.InDelta(t, 0.5, summary.TopAdhkar[1].Adherence, 1e-9)
}

func TestStatsService_Summary_TopFiveOnly(t *testing.T) {
	ctx := context.Background()
	mockRemote := new(repomocks.RemoteStore)
	mockDefs := new(mocks.DefinitionService)
	svc := NewStatsService(mockRemote, mockDefs)

	userID := uuid.New()
	groupID := uuid.New()
	today := model.Today()

	var adhkar []model.Dhikr
	var logs []model.DailyLogEntry
	for i := 0; i < 8; i++ {
		id := uuid.New()
		adhkar = append(adhkar, model.Dhikr{
			DhikrID: id, GroupID: groupID,
			Text: fmt.Sprintf("dhikr-%d", i), TargetCount: 10, IsActive: true,
		})
		logs = append(logs, model.DailyLogEntry{DhikrID: id, LogDate: today, Count: i + 1})
	}
	mockRemote.On("ReadLogs", mock.Anything, userID, "", "").Return(logs, nil)
	mockDefs.On("Groups", mock.Anything, userID).Return([]model.DhikrGroup{
		{GroupID: groupID, IsActive: true, Adhkar: adhkar},
	}, nil)

	summary, err := svc.Summary(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, summary.TopAdhkar, 5)
	// Highest adherence first.
	assert.Equal(t, 8, summary.TopAdhkar[0].Count)
}

func TestStatsService_Heatmap_WindowBounds(t *testing.T) {
	ctx := context.Background()
	mockRemote := new(repomocks.RemoteStore)
	svc := NewStatsService(mockRemote, new(mocks.DefinitionService))

	userID := uuid.New()

	// Capture the range actually queried so the cells can be checked
	// against the same anchor the service used.
	var queriedFrom, queriedTo string
	mockRemote.On("ReadLogs", mock.Anything, userID, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			queriedFrom = args.String(2)
			queriedTo = args.String(3)
		}).
		Return([]model.DailyLogEntry{}, nil)

	cells, err := svc.Heatmap(ctx, userID, 90)
	require.NoError(t, err)
	require.Len(t, cells, 91)

	// The queried window and the built cells share one anchor day.
	expectedFrom, err := model.AddDays(queriedTo, -90)
	require.NoError(t, err)
	assert.Equal(t, expectedFrom, queriedFrom)
	assert.Equal(t, queriedFrom, cells[0].Date)
	assert.Equal(t, queriedTo, cells[90].Date)
}

func TestStatsService_Streaks_RemoteError(t *testing.T) {
	ctx := context.Background()
	mockRemote := new(repomocks.RemoteStore)
	svc := NewStatsService(mockRemote, new(mocks.DefinitionService))

	userID := uuid.New()
	mockRemote.On("ReadLogs", mock.Anything, userID, "", "").
		Return(nil, fmt.Errorf("%w: timeout", model.ErrRemoteUnavailable))

	_, err := svc.Streaks(ctx, userID)
	assert.ErrorIs(t, err, model.ErrRemoteUnavailable)
}
