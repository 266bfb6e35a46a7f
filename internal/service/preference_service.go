// internal/service/preference_service.go
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreferenceService persists small UI preference blobs (last-selected group,
// focused dhikr, theme) keyed per user. Values are opaque JSON strings.
type PreferenceService interface {
	Get(ctx context.Context, userID uuid.UUID, key string) (*model.Preference, error)
	Put(ctx context.Context, userID uuid.UUID, key, value string) (*model.Preference, error)
}

type preferenceService struct {
	db       *gorm.DB
	prefRepo repository.PreferenceRepository
}

func NewPreferenceService(db *gorm.DB, prefRepo repository.PreferenceRepository) PreferenceService {
	return &preferenceService{db: db, prefRepo: prefRepo}
}

func (s *preferenceService) Get(ctx context.Context, userID uuid.UUID, key string) (*model.Preference, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty preference key", model.ErrInvalidInput)
	}
	return s.prefRepo.Get(ctx, s.db, userID, key)
}

func (s *preferenceService) Put(ctx context.Context, userID uuid.UUID, key, value string) (*model.Preference, error) {
	if key == "" {
		return nil, fmt.Errorf("%w: empty preference key", model.ErrInvalidInput)
	}
	pref := &model.Preference{
		UserID:    userID,
		PrefKey:   key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	if err := s.prefRepo.Put(ctx, s.db, pref); err != nil {
		return nil, fmt.Errorf("storing preference: %w", err)
	}
	return pref, nil
}
