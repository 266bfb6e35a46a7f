// internal/model/stats.go
package model

import "github.com/google/uuid"

// StreakResult holds consecutive-day metrics derived from log history.
type StreakResult struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
}

// HeatmapCell is one calendar day in the trailing activity window. Level is
// a fixed intensity bucket: 0 none, 1 any, 2 >=10, 3 >=50, 4 >=100.
type HeatmapCell struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// DailyActivity is one day of the recent-activity chart.
type DailyActivity struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// TopDhikr ranks a dhikr by adherence: total count over (target x active days).
type TopDhikr struct {
	DhikrID    uuid.UUID `json:"dhikr_id"`
	Text       string    `json:"text"`
	Count      int       `json:"count"`
	Target     int       `json:"target"`
	DaysActive int       `json:"days_active"`
	Adherence  float64   `json:"adherence"`
}

// StatsSummary is the aggregate view for the analytics screen.
type StatsSummary struct {
	TotalCount    int             `json:"total_count"`
	TodayCount    int             `json:"today_count"`
	Streaks       StreakResult    `json:"streaks"`
	DailyActivity []DailyActivity `json:"daily_activity"`
	TopAdhkar     []TopDhikr      `json:"top_adhkar"`
}
