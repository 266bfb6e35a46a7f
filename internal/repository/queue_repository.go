// internal/repository/queue_repository.go
package repository

import (
	"context"
	"time"

	"github.com/mbamerni/tzbi-vo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QueueRepository persists the offline outbox. One row per
// (user, dhikr, log_date); Upsert keeps only the latest absolute count.
type QueueRepository interface {
	Upsert(ctx context.Context, db *gorm.DB, m *model.QueuedMutation) error
	List(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.QueuedMutation, error)
	// Delete removes the row only if it still matches the snapshot m exactly
	// (count and queued_at included). Returns the number of rows removed:
	// zero means a newer enqueue superseded the snapshot while it was being
	// processed, and that newer row must stay queued.
	Delete(ctx context.Context, db *gorm.DB, m *model.QueuedMutation) (int64, error)
	Status(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.QueueStatus, error)
	Users(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error)
}

type gormQueueRepository struct{}

func NewGormQueueRepository() QueueRepository {
	return &gormQueueRepository{}
}

func (r *gormQueueRepository) Upsert(ctx context.Context, db *gorm.DB, m *model.QueuedMutation) error {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "dhikr_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"count", "queued_at"}),
	}).Create(m)
	return result.Error
}

func (r *gormQueueRepository) List(ctx context.Context, db *gorm.DB, userID uuid.UUID) ([]model.QueuedMutation, error) {
	var mutations []model.QueuedMutation
	result := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("queued_at ASC").
		Find(&mutations)
	if result.Error != nil {
		return nil, result.Error
	}
	return mutations, nil
}

func (r *gormQueueRepository) Delete(ctx context.Context, db *gorm.DB, m *model.QueuedMutation) (int64, error) {
	result := db.WithContext(ctx).
		Where("user_id = ? AND dhikr_id = ? AND log_date = ? AND count = ? AND queued_at = ?",
			m.UserID, m.DhikrID, m.LogDate, m.Count, m.QueuedAt).
		Delete(&model.QueuedMutation{})
	return result.RowsAffected, result.Error
}

func (r *gormQueueRepository) Status(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*model.QueueStatus, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.QueuedMutation{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, err
	}

	status := &model.QueueStatus{Pending: int(count)}
	if count > 0 {
		var oldest time.Time
		err := db.WithContext(ctx).Model(&model.QueuedMutation{}).
			Where("user_id = ?", userID).
			Select("MIN(queued_at)").
			Scan(&oldest).Error
		if err != nil {
			return nil, err
		}
		status.OldestQueuedAt = &oldest
	}
	return status, nil
}

func (r *gormQueueRepository) Users(ctx context.Context, db *gorm.DB) ([]uuid.UUID, error) {
	var users []uuid.UUID
	result := db.WithContext(ctx).Model(&model.QueuedMutation{}).
		Distinct("user_id").
		Pluck("user_id", &users)
	if result.Error != nil {
		return nil, result.Error
	}
	return users, nil
}
