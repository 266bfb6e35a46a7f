// internal/service/streaks.go
package service

import (
	"math"
	"sort"

	"github.com/mbamerni/tzbi-vo/internal/model"
)

// Pure derivations over dated log records. No clock access except the
// default "today" anchors, which delegate to the *At/*Ending variants so
// everything here is testable with a fixed date.

// CalculateStreaks computes current and longest streaks anchored on today.
func CalculateStreaks(activeDates []string) model.StreakResult {
	return CalculateStreaksAt(activeDates, model.Today())
}

// CalculateStreaksAt computes streaks as of the given day. Dates that do not
// parse are ignored. The current streak is zero unless the most recent active
// date is the anchor day or the day before it.
func CalculateStreaksAt(activeDates []string, today string) model.StreakResult {
	anchor, err := model.ParseDate(today)
	if err != nil {
		return model.StreakResult{}
	}

	seen := make(map[string]struct{}, len(activeDates))
	dates := make([]string, 0, len(activeDates))
	for _, d := range activeDates {
		if _, err := model.ParseDate(d); err != nil {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		dates = append(dates, d)
	}
	if len(dates) == 0 {
		return model.StreakResult{}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	parsed := make([]int, len(dates))
	for i, d := range dates {
		t, _ := model.ParseDate(d)
		parsed[i] = dayOrdinal(t.Unix())
	}
	todayOrd := dayOrdinal(anchor.Unix())

	result := model.StreakResult{}

	// Future-dated rows must not seed a streak; only today or yesterday do.
	if diff := todayOrd - parsed[0]; diff >= 0 && diff <= 1 {
		result.CurrentStreak = 1
		for i := 1; i < len(parsed); i++ {
			if parsed[i-1]-parsed[i] != 1 {
				break
			}
			result.CurrentStreak++
		}
	}

	run := 1
	result.LongestStreak = 1
	for i := 1; i < len(parsed); i++ {
		if parsed[i-1]-parsed[i] == 1 {
			run++
		} else {
			run = 1
		}
		if run > result.LongestStreak {
			result.LongestStreak = run
		}
	}
	return result
}

// dayOrdinal converts a unix timestamp to a day index so consecutive
// calendar days differ by exactly one regardless of DST.
func dayOrdinal(unix int64) int {
	return int(math.Round(float64(unix) / 86400.0))
}

// BuildHeatmapEnding returns the dense trailing activity window ending on
// endDate: windowDays+1 cells in chronological order, one per calendar day.
func BuildHeatmapEnding(logs []model.DailyLogEntry, windowDays int, endDate string) []model.HeatmapCell {
	if windowDays < 0 {
		windowDays = 0
	}

	totals := make(map[string]int, len(logs))
	for _, l := range logs {
		totals[l.LogDate] += l.Count
	}

	cells := make([]model.HeatmapCell, 0, windowDays+1)
	for offset := -windowDays; offset <= 0; offset++ {
		date, err := model.AddDays(endDate, offset)
		if err != nil {
			return nil
		}
		count := totals[date]
		cells = append(cells, model.HeatmapCell{
			Date:  date,
			Count: count,
			Level: heatmapLevel(count),
		})
	}
	return cells
}

func heatmapLevel(count int) int {
	switch {
	case count >= 100:
		return 4
	case count >= 50:
		return 3
	case count >= 10:
		return 2
	case count > 0:
		return 1
	default:
		return 0
	}
}

// DailyCompletionPercentage maps an actual/target pair to 0..100, clamped.
// A non-positive target reads as "nothing expected" and yields 0.
func DailyCompletionPercentage(actual, target int) int {
	if target <= 0 {
		return 0
	}
	ratio := float64(actual) / float64(target)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return int(math.Round(ratio * 100))
}
