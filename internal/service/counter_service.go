// internal/service/counter_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mbamerni/tzbi-vo/internal/config"
	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/repository"

	"github.com/google/uuid"
)

// CounterService is the tap path. Counts live in an in-memory day cache and
// are written through to the remote store: ordinary taps on a trailing
// debounce, completions and manual edits immediately. Any write that cannot
// reach the remote store lands in the offline queue instead of being lost.
type CounterService interface {
	// LoadDay returns the counts for one day, remote values overlaid with
	// anything still sitting in the offline queue.
	LoadDay(ctx context.Context, userID uuid.UUID, date string) (*model.DayCounts, error)

	Increment(ctx context.Context, userID, dhikrID uuid.UUID, date string) (*model.IncrementResult, error)

	// Reset zeroes a counter and flushes immediately.
	Reset(ctx context.Context, userID, dhikrID uuid.UUID, date string) (*model.IncrementResult, error)

	// SetCount writes an exact value, clamped to [0, declared_max], and
	// flushes immediately.
	SetCount(ctx context.Context, userID, dhikrID uuid.UUID, date string, req *model.ManualSetRequest) (*model.IncrementResult, error)

	// Flush fires every pending debounce now. Called on shutdown.
	Flush(ctx context.Context)
}

type dayKey struct {
	userID uuid.UUID
	date   string
}

type flushKey struct {
	userID  uuid.UUID
	dhikrID uuid.UUID
	date    string
}

type counterService struct {
	remote   repository.RemoteStore
	syncq    SyncService
	schedule ScheduleService
	defs     DefinitionService
	syncCfg  config.SyncConfig
	logger   *slog.Logger

	mu     sync.Mutex
	days   map[dayKey]map[uuid.UUID]int
	timers map[flushKey]*time.Timer
}

func NewCounterService(
	remote repository.RemoteStore,
	syncq SyncService,
	schedule ScheduleService,
	defs DefinitionService,
	syncCfg config.SyncConfig,
	logger *slog.Logger,
) CounterService {
	return &counterService{
		remote:   remote,
		syncq:    syncq,
		schedule: schedule,
		defs:     defs,
		syncCfg:  syncCfg,
		logger:   logger,
		days:     make(map[dayKey]map[uuid.UUID]int),
		timers:   make(map[flushKey]*time.Timer),
	}
}

func (s *counterService) LoadDay(ctx context.Context, userID uuid.UUID, date string) (*model.DayCounts, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}

	// Switching days must not leave debounced writes for the previous day
	// hanging until their timers fire.
	s.flushOtherDays(ctx, userID, date)

	counts, err := s.ensureDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	out := make(map[uuid.UUID]int, len(counts))
	for id, c := range counts {
		out[id] = c
	}
	s.mu.Unlock()

	return &model.DayCounts{Date: date, Counts: out}, nil
}

// ensureDay loads the day into the cache if absent. The remote read happens
// without holding the lock; queued values win over remote values because the
// queue always holds the newer absolute count.
func (s *counterService) ensureDay(ctx context.Context, userID uuid.UUID, date string) (map[uuid.UUID]int, error) {
	key := dayKey{userID, date}

	s.mu.Lock()
	if counts, ok := s.days[key]; ok {
		s.mu.Unlock()
		return counts, nil
	}
	s.mu.Unlock()

	logger := middleware.GetLogger(ctx).With("user_id", userID, "date", date)

	entries, err := s.remote.ReadLogs(ctx, userID, date, date)
	if err != nil {
		if !queueable(err) {
			logger.Error("Failed to load day from remote store", "error", err)
			return nil, fmt.Errorf("loading day: %w", err)
		}
		// Offline: start from whatever the queue knows about this day.
		logger.Warn("Remote store unreachable, loading day from offline queue", "error", err)
		entries = nil
	}

	counts := make(map[uuid.UUID]int)
	for _, e := range entries {
		counts[e.DhikrID] = e.Count
	}
	pending, err := s.syncq.PendingForDay(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	for id, c := range pending {
		counts[id] = c
	}

	s.mu.Lock()
	// Another request may have loaded it meanwhile; keep the first copy so
	// taps applied during our read are not discarded.
	if existing, ok := s.days[key]; ok {
		counts = existing
	} else {
		s.days[key] = counts
	}
	s.mu.Unlock()
	return counts, nil
}

func (s *counterService) Increment(ctx context.Context, userID, dhikrID uuid.UUID, date string) (*model.IncrementResult, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}
	dhikr, err := s.defs.Dhikr(ctx, userID, dhikrID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ensureDay(ctx, userID, date); err != nil {
		return nil, err
	}

	fk := flushKey{userID, dhikrID, date}

	s.mu.Lock()
	counts := s.days[dayKey{userID, date}]
	prev := counts[dhikrID]
	newCount := prev + 1
	counts[dhikrID] = newCount

	cue := model.CueNone
	remainder := dhikr.TargetCount - prev
	completed := dhikr.TargetCount > 0 && newCount == dhikr.TargetCount
	switch {
	case completed:
		cue = model.CueCompleted
	case dhikr.TargetCount > 0 && (remainder == 1 || remainder == 2):
		cue = model.CueApproaching
	}

	if completed {
		// Reaching target flushes right away so the completion is durable
		// even if the app dies during the celebration.
		if t, ok := s.timers[fk]; ok {
			t.Stop()
			delete(s.timers, fk)
		}
		s.mu.Unlock()
	} else {
		s.scheduleFlushLocked(fk)
		s.mu.Unlock()
	}

	result := &model.IncrementResult{
		DhikrID:   dhikrID,
		Date:      date,
		Count:     newCount,
		Target:    dhikr.TargetCount,
		Completed: completed,
		Cue:       cue,
	}

	if completed {
		result.Queued, result.Rejected = s.flushNow(ctx, fk)
		s.fillAdvanceHint(ctx, userID, dhikrID, date, result)
	}
	return result, nil
}

// scheduleFlushLocked arms or re-arms the trailing debounce for one counter.
// Caller holds s.mu.
func (s *counterService) scheduleFlushLocked(fk flushKey) {
	if t, ok := s.timers[fk]; ok {
		t.Stop()
	}
	delay := time.Duration(s.syncCfg.DebounceMS) * time.Millisecond
	s.timers[fk] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, fk)
		s.mu.Unlock()
		// Detached from the tap's request; the count read at fire time is
		// the latest one, so coalesced taps flush as a single write.
		s.flushNow(context.Background(), fk)
	})
}

// flushNow writes the current count for one counter through to the remote
// store, falling back to the offline queue. Reports whether the write was
// queued, and whether the remote store rejected it permanently.
func (s *counterService) flushNow(ctx context.Context, fk flushKey) (queued, rejected bool) {
	s.mu.Lock()
	counts, ok := s.days[dayKey{fk.userID, fk.date}]
	if !ok {
		s.mu.Unlock()
		return false, false
	}
	count := counts[fk.dhikrID]
	s.mu.Unlock()

	logger := s.flushLogger(ctx).With("user_id", fk.userID, "dhikr_id", fk.dhikrID, "date", fk.date)

	err := s.remote.UpsertLog(ctx, fk.userID, fk.dhikrID, fk.date, count)
	if err == nil {
		return false, false
	}
	if !queueable(err) {
		logger.Error("Remote store rejected counter write", "count", count, "error", err)
		return false, true
	}
	if qErr := s.syncq.Enqueue(ctx, fk.userID, fk.dhikrID, fk.date, count); qErr != nil {
		logger.Error("Counter write failed and could not be queued", "count", count, "error", qErr)
		return false, false
	}
	return true, false
}

// fillAdvanceHint finds the next incomplete dhikr in display order after the
// completed one and attaches it with the configured delay.
func (s *counterService) fillAdvanceHint(ctx context.Context, userID, dhikrID uuid.UUID, date string, result *model.IncrementResult) {
	groups, err := s.schedule.DisplayedGroups(ctx, userID, date)
	if err != nil {
		middleware.GetLogger(ctx).Warn("Could not compute auto-advance target", "error", err)
		return
	}

	var ordered []model.Dhikr
	for _, g := range groups {
		ordered = append(ordered, g.Adhkar...)
	}

	current := -1
	for i := range ordered {
		if ordered[i].DhikrID == dhikrID {
			current = i
			break
		}
	}
	if current < 0 {
		return
	}

	s.mu.Lock()
	counts := s.days[dayKey{userID, date}]
	for i := current + 1; i < len(ordered); i++ {
		d := ordered[i]
		if d.TargetCount > 0 && counts[d.DhikrID] >= d.TargetCount {
			continue
		}
		next := d.DhikrID
		result.NextDhikrID = &next
		result.AdvanceAfterMS = s.syncCfg.AdvanceDelayMS
		break
	}
	s.mu.Unlock()
}

func (s *counterService) Reset(ctx context.Context, userID, dhikrID uuid.UUID, date string) (*model.IncrementResult, error) {
	return s.setAbsolute(ctx, userID, dhikrID, date, 0)
}

func (s *counterService) SetCount(ctx context.Context, userID, dhikrID uuid.UUID, date string, req *model.ManualSetRequest) (*model.IncrementResult, error) {
	value := req.Value
	if value > req.DeclaredMax {
		value = req.DeclaredMax
	}
	if value < 0 {
		value = 0
	}
	return s.setAbsolute(ctx, userID, dhikrID, date, value)
}

func (s *counterService) setAbsolute(ctx context.Context, userID, dhikrID uuid.UUID, date string, value int) (*model.IncrementResult, error) {
	if _, err := model.ParseDate(date); err != nil {
		return nil, err
	}
	dhikr, err := s.defs.Dhikr(ctx, userID, dhikrID)
	if err != nil {
		return nil, err
	}
	if _, err := s.ensureDay(ctx, userID, date); err != nil {
		return nil, err
	}

	fk := flushKey{userID, dhikrID, date}

	s.mu.Lock()
	if t, ok := s.timers[fk]; ok {
		t.Stop()
		delete(s.timers, fk)
	}
	s.days[dayKey{userID, date}][dhikrID] = value
	s.mu.Unlock()

	queued, rejected := s.flushNow(ctx, fk)

	return &model.IncrementResult{
		DhikrID:   dhikrID,
		Date:      date,
		Count:     value,
		Target:    dhikr.TargetCount,
		Completed: dhikr.TargetCount > 0 && value >= dhikr.TargetCount,
		Queued:    queued,
		Rejected:  rejected,
	}, nil
}

// flushOtherDays fires pending debounces whose date differs from the one
// being loaded.
func (s *counterService) flushOtherDays(ctx context.Context, userID uuid.UUID, date string) {
	s.mu.Lock()
	var stale []flushKey
	for fk, t := range s.timers {
		if fk.userID == userID && fk.date != date {
			t.Stop()
			delete(s.timers, fk)
			stale = append(stale, fk)
		}
	}
	s.mu.Unlock()

	for _, fk := range stale {
		s.flushNow(ctx, fk)
	}
}

func (s *counterService) Flush(ctx context.Context) {
	s.mu.Lock()
	pending := make([]flushKey, 0, len(s.timers))
	for fk, t := range s.timers {
		t.Stop()
		pending = append(pending, fk)
	}
	s.timers = make(map[flushKey]*time.Timer)
	s.mu.Unlock()

	for _, fk := range pending {
		s.flushNow(ctx, fk)
	}
	if len(pending) > 0 {
		s.flushLogger(ctx).Info("Flushed pending counter writes", "count", len(pending))
	}
}

func (s *counterService) flushLogger(ctx context.Context) *slog.Logger {
	if logger := middleware.GetLogger(ctx); logger != slog.Default() {
		return logger
	}
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}

// queueable reports whether a remote failure should be retried via the
// offline queue rather than surfaced as a hard error.
func queueable(err error) bool {
	return errors.Is(err, model.ErrRemoteUnavailable) || errors.Is(err, model.ErrNoSession)
}
