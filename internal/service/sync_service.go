// internal/service/sync_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SyncService owns the offline outbox. Mutations carry absolute counts, so
// draining is idempotent and re-entrant: a drain triggered by a reconnect
// racing one triggered by app foreground cannot double-apply anything.
type SyncService interface {
	// Enqueue records the absolute count to persist for (dhikr, date). A
	// later enqueue for the same key supersedes the earlier value.
	Enqueue(ctx context.Context, userID, dhikrID uuid.UUID, logDate string, count int) error

	// Drain pushes every queued mutation to the remote store. Applied rows
	// leave the queue; transient failures stay for the next pass; permanent
	// rejections leave the queue and are reported.
	Drain(ctx context.Context, userID uuid.UUID) (*model.DrainResult, error)

	// DrainAll drains the queues of every user with pending rows. Used by
	// the periodic retry ticker.
	DrainAll(ctx context.Context)

	Status(ctx context.Context, userID uuid.UUID) (*model.QueueStatus, error)

	// PendingForDay returns queued counts for one day, keyed by dhikr id.
	// Lets the counter layer see not-yet-synced values when loading a day.
	PendingForDay(ctx context.Context, userID uuid.UUID, logDate string) (map[uuid.UUID]int, error)
}

type syncService struct {
	db        *gorm.DB
	queueRepo repository.QueueRepository
	remote    repository.RemoteStore
}

func NewSyncService(db *gorm.DB, queueRepo repository.QueueRepository, remote repository.RemoteStore) SyncService {
	return &syncService{db: db, queueRepo: queueRepo, remote: remote}
}

func (s *syncService) Enqueue(ctx context.Context, userID, dhikrID uuid.UUID, logDate string, count int) error {
	logger := middleware.GetLogger(ctx).With("user_id", userID, "dhikr_id", dhikrID, "date", logDate)

	if _, err := model.ParseDate(logDate); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("%w: negative count", model.ErrInvalidInput)
	}

	m := &model.QueuedMutation{
		UserID:   userID,
		DhikrID:  dhikrID,
		LogDate:  logDate,
		Count:    count,
		QueuedAt: time.Now(),
	}
	if err := s.queueRepo.Upsert(ctx, s.db, m); err != nil {
		logger.Error("Failed to enqueue mutation", "error", err)
		return fmt.Errorf("enqueueing mutation: %w", err)
	}
	logger.Info("Mutation queued for sync", "count", count)
	return nil
}

func (s *syncService) Drain(ctx context.Context, userID uuid.UUID) (*model.DrainResult, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	mutations, err := s.queueRepo.List(ctx, s.db, userID)
	if err != nil {
		logger.Error("Failed to list queued mutations", "error", err)
		return nil, fmt.Errorf("listing queue: %w", err)
	}

	result := &model.DrainResult{Attempted: len(mutations)}
	for i := range mutations {
		m := mutations[i]
		err := s.remote.UpsertLog(ctx, m.UserID, m.DhikrID, m.LogDate, m.Count)
		switch {
		case err == nil:
			// Delete only the exact snapshot that was pushed. An enqueue
			// racing the in-flight write leaves its newer row for the next
			// pass instead of being wiped by this delete.
			removed, delErr := s.queueRepo.Delete(ctx, s.db, &m)
			if delErr != nil {
				logger.Error("Applied mutation could not be removed from queue", "error", delErr)
				result.Remaining++
				continue
			}
			if removed == 0 {
				logger.Info("Queued mutation superseded during drain, keeping newer value",
					"dhikr_id", m.DhikrID, "date", m.LogDate)
				result.Remaining++
				continue
			}
			result.Applied++

		case errors.Is(err, model.ErrRemoteUnavailable) || errors.Is(err, model.ErrNoSession):
			result.Remaining++

		default:
			// Permanent rejection: retrying forever would never succeed.
			// Remove the row and report it instead of looping.
			logger.Error("Remote store rejected queued mutation",
				"dhikr_id", m.DhikrID, "date", m.LogDate, "error", err)
			removed, delErr := s.queueRepo.Delete(ctx, s.db, &m)
			if delErr != nil {
				logger.Error("Rejected mutation could not be removed from queue", "error", delErr)
			}
			if removed == 0 {
				// A newer value arrived meanwhile; it may well be valid, so
				// it stays queued and only the pushed snapshot is reported.
				result.Remaining++
			}
			result.Rejected = append(result.Rejected, model.RejectedMutation{
				DhikrID: m.DhikrID,
				LogDate: m.LogDate,
				Reason:  err.Error(),
			})
		}
	}

	if result.Attempted > 0 {
		logger.Info("Queue drained",
			"attempted", result.Attempted,
			"applied", result.Applied,
			"remaining", result.Remaining,
			"rejected", len(result.Rejected))
	}
	return result, nil
}

func (s *syncService) DrainAll(ctx context.Context) {
	logger := middleware.GetLogger(ctx)

	users, err := s.queueRepo.Users(ctx, s.db)
	if err != nil {
		logger.Error("Failed to list users with pending mutations", "error", err)
		return
	}
	for _, userID := range users {
		if _, err := s.Drain(ctx, userID); err != nil {
			logger.Error("Drain failed", "user_id", userID, "error", err)
		}
	}
}

func (s *syncService) Status(ctx context.Context, userID uuid.UUID) (*model.QueueStatus, error) {
	status, err := s.queueRepo.Status(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("reading queue status: %w", err)
	}
	return status, nil
}

func (s *syncService) PendingForDay(ctx context.Context, userID uuid.UUID, logDate string) (map[uuid.UUID]int, error) {
	mutations, err := s.queueRepo.List(ctx, s.db, userID)
	if err != nil {
		return nil, fmt.Errorf("listing queue: %w", err)
	}
	pending := make(map[uuid.UUID]int)
	for _, m := range mutations {
		if m.LogDate == logDate {
			pending[m.DhikrID] = m.Count
		}
	}
	return pending, nil
}
