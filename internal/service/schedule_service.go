// internal/service/schedule_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleService answers "which groups and adhkar were active on day X"
// from the append-only snapshot history. Past days resolve to what was
// actually tracked then, not to the current settings.
type ScheduleService interface {
	Resolve(ctx context.Context, userID uuid.UUID, date string) (*model.ScheduleConfig, error)
	// DisplayedGroups filters the user's definitions down to the resolved
	// snapshot for the day, preserving display order.
	DisplayedGroups(ctx context.Context, userID uuid.UUID, date string) ([]model.DhikrGroup, error)
	// RecordOverride writes an explicit snapshot for the day. Overrides are
	// user decisions: the today-reconcile never touches them.
	RecordOverride(ctx context.Context, userID uuid.UUID, date string, groupIDs, dhikrIDs []uuid.UUID) (*model.ScheduleConfig, error)
	// SyncToday mirrors the live active flags into today's snapshot.
	// Idempotent; writes only when the set actually changed and no override
	// exists for today.
	SyncToday(ctx context.Context, userID uuid.UUID) error
}

type scheduleService struct {
	db        *gorm.DB
	schedRepo repository.ScheduleRepository
	defs      DefinitionService
}

func NewScheduleService(db *gorm.DB, schedRepo repository.ScheduleRepository, defs DefinitionService) ScheduleService {
	return &scheduleService{db: db, schedRepo: schedRepo, defs: defs}
}

func (s *scheduleService) Resolve(ctx context.Context, userID uuid.UUID, date string) (*model.ScheduleConfig, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "date", date)

	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}

	// Resolving today keeps its snapshot aligned with the live flags first.
	// Failure here is not fatal: resolution still works from history.
	if date == model.Today() {
		if err := s.SyncToday(ctx, userID); err != nil {
			logger.Warn("Could not reconcile today's schedule snapshot", "error", err)
		}
	}

	snap, err := s.schedRepo.FindLatestAtOrBefore(ctx, s.db, userID, date)
	if err == nil {
		return &model.ScheduleConfig{
			Date:           date,
			ActiveGroupIDs: snap.GroupIDs,
			ActiveDhikrIDs: snap.DhikrIDs,
		}, nil
	}
	if !errors.Is(err, model.ErrNotFound) {
		logger.Error("Failed to query schedule history", "error", err)
		return nil, err
	}

	// No history at or before this day: synthesize from current definitions,
	// excluding anything created after the day ended so new items never
	// appear retroactively.
	return s.synthesize(ctx, userID, date)
}

func (s *scheduleService) synthesize(ctx context.Context, userID uuid.UUID, date string) (*model.ScheduleConfig, error) {
	groups, err := s.defs.Groups(ctx, userID)
	if err != nil {
		return nil, err
	}
	limit, err := model.EndOfDay(date)
	if err != nil {
		return nil, err
	}

	cfg := &model.ScheduleConfig{
		Date:           date,
		ActiveGroupIDs: []uuid.UUID{},
		ActiveDhikrIDs: []uuid.UUID{},
	}
	for _, g := range groups {
		if g.IsActive && !g.CreatedAt.After(limit) {
			cfg.ActiveGroupIDs = append(cfg.ActiveGroupIDs, g.GroupID)
		}
		for _, d := range g.Adhkar {
			if d.IsActive && !d.CreatedAt.After(limit) {
				cfg.ActiveDhikrIDs = append(cfg.ActiveDhikrIDs, d.DhikrID)
			}
		}
	}
	return cfg, nil
}

func (s *scheduleService) DisplayedGroups(ctx context.Context, userID uuid.UUID, date string) ([]model.DhikrGroup, error) {
	cfg, err := s.Resolve(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	groups, err := s.defs.Groups(ctx, userID)
	if err != nil {
		return nil, err
	}

	activeGroups := model.UUIDList(cfg.ActiveGroupIDs)
	activeAdhkar := model.UUIDList(cfg.ActiveDhikrIDs)

	displayed := make([]model.DhikrGroup, 0, len(groups))
	for _, g := range groups {
		if !activeGroups.Contains(g.GroupID) {
			continue
		}
		filtered := g
		filtered.Adhkar = make([]model.Dhikr, 0, len(g.Adhkar))
		for _, d := range g.Adhkar {
			if activeAdhkar.Contains(d.DhikrID) {
				filtered.Adhkar = append(filtered.Adhkar, d)
			}
		}
		displayed = append(displayed, filtered)
	}
	return displayed, nil
}

func (s *scheduleService) RecordOverride(ctx context.Context, userID uuid.UUID, date string, groupIDs, dhikrIDs []uuid.UUID) (*model.ScheduleConfig, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "date", date)

	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}

	snap := &model.ScheduleSnapshot{
		UserID:     userID,
		ConfigDate: date,
		GroupIDs:   model.UUIDList(groupIDs),
		DhikrIDs:   model.UUIDList(dhikrIDs),
		Override:   true,
	}
	if err := s.schedRepo.Upsert(ctx, s.db, snap); err != nil {
		logger.Error("Failed to record schedule override", "error", err)
		return nil, fmt.Errorf("recording override: %w", err)
	}

	logger.Info("Schedule override recorded",
		"groups", len(groupIDs), "adhkar", len(dhikrIDs))
	return &model.ScheduleConfig{
		Date:           date,
		ActiveGroupIDs: groupIDs,
		ActiveDhikrIDs: dhikrIDs,
	}, nil
}

func (s *scheduleService) SyncToday(ctx context.Context, userID uuid.UUID) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	groupIDs, dhikrIDs, err := s.defs.ActiveSets(ctx, userID)
	if err != nil {
		return err
	}

	today := model.Today()
	existing, err := s.schedRepo.Find(ctx, s.db, userID, today)
	switch {
	case err == nil:
		if existing.Override {
			return nil
		}
		if sameIDSet(existing.GroupIDs, groupIDs) && sameIDSet(existing.DhikrIDs, dhikrIDs) {
			// Write suppression: nothing changed, keep the history quiet.
			return nil
		}
	case !errors.Is(err, model.ErrNotFound):
		return err
	}

	snap := &model.ScheduleSnapshot{
		UserID:     userID,
		ConfigDate: today,
		GroupIDs:   model.UUIDList(groupIDs),
		DhikrIDs:   model.UUIDList(dhikrIDs),
		Override:   false,
	}
	if err := s.schedRepo.Upsert(ctx, s.db, snap); err != nil {
		return fmt.Errorf("syncing today's snapshot: %w", err)
	}
	logger.Debug("Today's schedule snapshot updated",
		"groups", len(groupIDs), "adhkar", len(dhikrIDs))
	return nil
}

// sameIDSet compares two id collections as sets, ignoring order and
// duplicates.
func sameIDSet(a model.UUIDList, b []uuid.UUID) bool {
	setA := make(map[uuid.UUID]struct{}, len(a))
	for _, id := range a {
		setA[id] = struct{}{}
	}
	setB := make(map[uuid.UUID]struct{}, len(b))
	for _, id := range b {
		setB[id] = struct{}{}
	}
	if len(setA) != len(setB) {
		return false
	}
	for id := range setB {
		if _, ok := setA[id]; !ok {
			return false
		}
	}
	return true
}
