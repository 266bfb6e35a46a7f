// internal/repository/schedule_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/mbamerni/tzbi-vo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScheduleRepository persists the append-only schedule snapshot history.
type ScheduleRepository interface {
	Find(ctx context.Context, db *gorm.DB, userID uuid.UUID, date string) (*model.ScheduleSnapshot, error)
	// FindLatestAtOrBefore returns the chronologically newest snapshot with
	// config_date <= date, which covers both the exact-date case and the
	// carry-forward case of schedule resolution.
	FindLatestAtOrBefore(ctx context.Context, db *gorm.DB, userID uuid.UUID, date string) (*model.ScheduleSnapshot, error)
	Upsert(ctx context.Context, db *gorm.DB, snap *model.ScheduleSnapshot) error
}

type gormScheduleRepository struct{}

func NewGormScheduleRepository() ScheduleRepository {
	return &gormScheduleRepository{}
}

func (r *gormScheduleRepository) Find(ctx context.Context, db *gorm.DB, userID uuid.UUID, date string) (*model.ScheduleSnapshot, error) {
	var snap model.ScheduleSnapshot
	result := db.WithContext(ctx).
		Where("user_id = ? AND config_date = ?", userID, date).
		First(&snap)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &snap, nil
}

func (r *gormScheduleRepository) FindLatestAtOrBefore(ctx context.Context, db *gorm.DB, userID uuid.UUID, date string) (*model.ScheduleSnapshot, error) {
	var snap model.ScheduleSnapshot
	result := db.WithContext(ctx).
		Where("user_id = ? AND config_date <= ?", userID, date).
		Order("config_date DESC").
		First(&snap)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &snap, nil
}

func (r *gormScheduleRepository) Upsert(ctx context.Context, db *gorm.DB, snap *model.ScheduleSnapshot) error {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "config_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"group_ids", "dhikr_ids", "override", "updated_at"}),
	}).Create(snap)
	return result.Error
}
