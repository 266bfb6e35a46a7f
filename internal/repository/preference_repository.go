// internal/repository/preference_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/mbamerni/tzbi-vo/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceRepository stores per-user UI preference blobs.
type PreferenceRepository interface {
	Get(ctx context.Context, db *gorm.DB, userID uuid.UUID, key string) (*model.Preference, error)
	Put(ctx context.Context, db *gorm.DB, pref *model.Preference) error
}

type gormPreferenceRepository struct{}

func NewGormPreferenceRepository() PreferenceRepository {
	return &gormPreferenceRepository{}
}

func (r *gormPreferenceRepository) Get(ctx context.Context, db *gorm.DB, userID uuid.UUID, key string) (*model.Preference, error) {
	var pref model.Preference
	result := db.WithContext(ctx).
		Where("user_id = ? AND pref_key = ?", userID, key).
		First(&pref)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, result.Error
	}
	return &pref, nil
}

func (r *gormPreferenceRepository) Put(ctx context.Context, db *gorm.DB, pref *model.Preference) error {
	result := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "pref_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref)
	return result.Error
}
