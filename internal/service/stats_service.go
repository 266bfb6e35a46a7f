// internal/service/stats_service.go
package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/repository"

	"github.com/google/uuid"
)

// StatsService aggregates the remote log history into the derived views the
// analytics screen shows. Reads only; all math lives in streaks.go.
type StatsService interface {
	Streaks(ctx context.Context, userID uuid.UUID) (*model.StreakResult, error)
	Heatmap(ctx context.Context, userID uuid.UUID, windowDays int) ([]model.HeatmapCell, error)
	Summary(ctx context.Context, userID uuid.UUID) (*model.StatsSummary, error)
}

type statsService struct {
	remote repository.RemoteStore
	defs   DefinitionService
}

func NewStatsService(remote repository.RemoteStore, defs DefinitionService) StatsService {
	return &statsService{remote: remote, defs: defs}
}

func (s *statsService) Streaks(ctx context.Context, userID uuid.UUID) (*model.StreakResult, error) {
	logs, err := s.readAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := CalculateStreaks(activeDates(logs))
	return &result, nil
}

func (s *statsService) Heatmap(ctx context.Context, userID uuid.UUID, windowDays int) ([]model.HeatmapCell, error) {
	// Anchor the window once so the range queried and the cells built
	// agree even across a midnight rollover.
	today := model.Today()
	from, err := model.AddDays(today, -windowDays)
	if err != nil {
		return nil, err
	}
	logs, err := s.remote.ReadLogs(ctx, userID, from, today)
	if err != nil {
		return nil, fmt.Errorf("reading logs: %w", err)
	}
	return BuildHeatmapEnding(logs, windowDays, today), nil
}

func (s *statsService) Summary(ctx context.Context, userID uuid.UUID) (*model.StatsSummary, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	logs, err := s.readAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	groups, err := s.defs.Groups(ctx, userID)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]model.Dhikr)
	for _, g := range groups {
		for _, d := range g.Adhkar {
			byID[d.DhikrID] = d
		}
	}

	today := model.Today()
	summary := &model.StatsSummary{
		Streaks:       CalculateStreaks(activeDates(logs)),
		DailyActivity: make([]model.DailyActivity, 0, 7),
		TopAdhkar:     []model.TopDhikr{},
	}

	type acc struct {
		total int
		days  map[string]struct{}
	}
	perDhikr := make(map[uuid.UUID]*acc)
	perDay := make(map[string]int)

	for _, l := range logs {
		summary.TotalCount += l.Count
		if l.LogDate == today {
			summary.TodayCount += l.Count
		}
		perDay[l.LogDate] += l.Count

		// Logs whose dhikr has since been deleted still count toward
		// totals but cannot be ranked.
		if _, known := byID[l.DhikrID]; !known {
			continue
		}
		a, ok := perDhikr[l.DhikrID]
		if !ok {
			a = &acc{days: make(map[string]struct{})}
			perDhikr[l.DhikrID] = a
		}
		a.total += l.Count
		if l.Count > 0 {
			a.days[l.LogDate] = struct{}{}
		}
	}

	// Dense last-7-days series, oldest first.
	for offset := -6; offset <= 0; offset++ {
		date, err := model.AddDays(today, offset)
		if err != nil {
			return nil, err
		}
		summary.DailyActivity = append(summary.DailyActivity, model.DailyActivity{
			Date:  date,
			Count: perDay[date],
		})
	}

	for id, a := range perDhikr {
		d := byID[id]
		daysActive := len(a.days)
		if daysActive == 0 || d.TargetCount <= 0 {
			continue
		}
		adherence := float64(a.total) / float64(d.TargetCount*daysActive)
		if adherence > 1 {
			adherence = 1
		}
		summary.TopAdhkar = append(summary.TopAdhkar, model.TopDhikr{
			DhikrID:    id,
			Text:       d.Text,
			Count:      a.total,
			Target:     d.TargetCount,
			DaysActive: daysActive,
			Adherence:  adherence,
		})
	}
	sort.Slice(summary.TopAdhkar, func(i, j int) bool {
		a, b := summary.TopAdhkar[i], summary.TopAdhkar[j]
		if a.Adherence != b.Adherence {
			return a.Adherence > b.Adherence
		}
		return a.Count > b.Count
	})
	if len(summary.TopAdhkar) > 5 {
		summary.TopAdhkar = summary.TopAdhkar[:5]
	}

	logger.Debug("Stats summary built",
		"logs", len(logs), "total", summary.TotalCount, "top", len(summary.TopAdhkar))
	return summary, nil
}

func (s *statsService) readAll(ctx context.Context, userID uuid.UUID) ([]model.DailyLogEntry, error) {
	logs, err := s.remote.ReadLogs(ctx, userID, "", "")
	if err != nil {
		return nil, fmt.Errorf("reading logs: %w", err)
	}
	return logs, nil
}

// activeDates extracts the distinct days with at least one repetition.
func activeDates(logs []model.DailyLogEntry) []string {
	seen := make(map[string]struct{})
	dates := make([]string, 0)
	for _, l := range logs {
		if l.Count <= 0 {
			continue
		}
		if _, ok := seen[l.LogDate]; ok {
			continue
		}
		seen[l.LogDate] = struct{}{}
		dates = append(dates, l.LogDate)
	}
	return dates
}
