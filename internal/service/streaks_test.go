// internal/service/streaks_test.go
package service

import (
	"testing"

	"github.com/mbamerni/tzbi-vo/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateStreaksAt(t *testing.T) {
	tests := []struct {
		name        string
		activeDates []string
		today       string
		want        model.StreakResult
	}{
		{
			name:        "three consecutive days ending today",
			activeDates: []string{"2024-01-01", "2024-01-02", "2024-01-03"},
			today:       "2024-01-03",
			want:        model.StreakResult{CurrentStreak: 3, LongestStreak: 3},
		},
		{
			name:        "stale history has no current streak",
			activeDates: []string{"2024-01-01", "2024-01-03"},
			today:       "2024-01-05",
			want:        model.StreakResult{CurrentStreak: 0, LongestStreak: 1},
		},
		{
			name:        "no activity",
			activeDates: []string{},
			today:       "2024-01-05",
			want:        model.StreakResult{},
		},
		{
			name:        "most recent day is yesterday",
			activeDates: []string{"2024-01-02", "2024-01-03", "2024-01-04"},
			today:       "2024-01-05",
			want:        model.StreakResult{CurrentStreak: 3, LongestStreak: 3},
		},
		{
			name:        "longest run sits in the past",
			activeDates: []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-10"},
			today:       "2024-01-10",
			want:        model.StreakResult{CurrentStreak: 1, LongestStreak: 4},
		},
		{
			name:        "duplicates and unordered input",
			activeDates: []string{"2024-01-03", "2024-01-01", "2024-01-02", "2024-01-02"},
			today:       "2024-01-03",
			want:        model.StreakResult{CurrentStreak: 3, LongestStreak: 3},
		},
		{
			name:        "unparseable dates are ignored",
			activeDates: []string{"not-a-date", "2024-01-03"},
			today:       "2024-01-03",
			want:        model.StreakResult{CurrentStreak: 1, LongestStreak: 1},
		},
		{
			name:        "gap breaks the current streak",
			activeDates: []string{"2024-01-01", "2024-01-02", "2024-01-04", "2024-01-05"},
			today:       "2024-01-05",
			want:        model.StreakResult{CurrentStreak: 2, LongestStreak: 2},
		},
		{
			name:        "future-dated row does not seed a current streak",
			activeDates: []string{"2024-01-06"},
			today:       "2024-01-05",
			want:        model.StreakResult{CurrentStreak: 0, LongestStreak: 1},
		},
		{
			name:        "future rows mixed with real history",
			activeDates: []string{"2024-01-04", "2024-01-05", "2024-01-09"},
			today:       "2024-01-05",
			want:        model.StreakResult{CurrentStreak: 0, LongestStreak: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateStreaksAt(tt.activeDates, tt.today)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildHeatmapEnding(t *testing.T) {
	dhikrID := uuid.New()
	logs := []model.DailyLogEntry{
		{DhikrID: dhikrID, LogDate: "2024-03-31", Count: 5},
		{DhikrID: uuid.New(), LogDate: "2024-03-31", Count: 6},
		{DhikrID: dhikrID, LogDate: "2024-03-25", Count: 120},
		{DhikrID: dhikrID, LogDate: "2023-12-01", Count: 999}, // outside window
	}

	cells := BuildHeatmapEnding(logs, 90, "2024-03-31")
	require.Len(t, cells, 91)

	// Chronological, dense, ending on the anchor day.
	assert.Equal(t, "2024-01-01", cells[0].Date)
	assert.Equal(t, "2024-03-31", cells[90].Date)
	for i := 1; i < len(cells); i++ {
		prev, err := model.ParseDate(cells[i-1].Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1).Format(model.DateLayout), cells[i].Date)
	}

	last := cells[90]
	assert.Equal(t, 11, last.Count)
	assert.Equal(t, 2, last.Level)

	var spike model.HeatmapCell
	for _, c := range cells {
		if c.Date == "2024-03-25" {
			spike = c
		}
	}
	assert.Equal(t, 120, spike.Count)
	assert.Equal(t, 4, spike.Level)

	// Days without logs still appear.
	assert.Equal(t, 0, cells[1].Count)
	assert.Equal(t, 0, cells[1].Level)
}

func TestHeatmapLevels(t *testing.T) {
	assert.Equal(t, 0, heatmapLevel(0))
	assert.Equal(t, 1, heatmapLevel(1))
	assert.Equal(t, 1, heatmapLevel(9))
	assert.Equal(t, 2, heatmapLevel(10))
	assert.Equal(t, 2, heatmapLevel(49))
	assert.Equal(t, 3, heatmapLevel(50))
	assert.Equal(t, 3, heatmapLevel(99))
	assert.Equal(t, 4, heatmapLevel(100))
}

func TestDailyCompletionPercentage(t *testing.T) {
	assert.Equal(t, 100, DailyCompletionPercentage(33, 33))
	assert.Equal(t, 100, DailyCompletionPercentage(40, 33))
	assert.Equal(t, 0, DailyCompletionPercentage(0, 33))
	assert.Equal(t, 0, DailyCompletionPercentage(10, 0))
	assert.Equal(t, 0, DailyCompletionPercentage(10, -5))
	assert.Equal(t, 50, DailyCompletionPercentage(1, 2))
	assert.Equal(t, 33, DailyCompletionPercentage(1, 3))
	assert.Equal(t, 0, DailyCompletionPercentage(-4, 10))
}
