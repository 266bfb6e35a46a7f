// internal/service/definition_service.go
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/mbamerni/tzbi-vo/internal/middleware"
	"github.com/mbamerni/tzbi-vo/internal/model"
	"github.com/mbamerni/tzbi-vo/internal/repository"

	"github.com/google/uuid"
)

// DefinitionService serves group/dhikr definitions from the remote store
// with a per-user in-session cache. Definition CRUD happens elsewhere; this
// engine only needs to know what exists, what is active and when it was
// created.
type DefinitionService interface {
	Groups(ctx context.Context, userID uuid.UUID) ([]model.DhikrGroup, error)
	Refresh(ctx context.Context, userID uuid.UUID) ([]model.DhikrGroup, error)
	Dhikr(ctx context.Context, userID, dhikrID uuid.UUID) (*model.Dhikr, error)
	// ActiveSets returns the ids of currently active groups and adhkar.
	// Adhkar are filtered by their own flag only, so a dhikr keeps its state
	// when its group is toggled off and back on.
	ActiveSets(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error)
}

type definitionService struct {
	remote repository.RemoteStore

	mu    sync.Mutex
	cache map[uuid.UUID][]model.DhikrGroup
}

func NewDefinitionService(remote repository.RemoteStore) DefinitionService {
	return &definitionService{
		remote: remote,
		cache:  make(map[uuid.UUID][]model.DhikrGroup),
	}
}

func (s *definitionService) Groups(ctx context.Context, userID uuid.UUID) ([]model.DhikrGroup, error) {
	s.mu.Lock()
	groups, ok := s.cache[userID]
	s.mu.Unlock()
	if ok {
		return groups, nil
	}
	return s.Refresh(ctx, userID)
}

func (s *definitionService) Refresh(ctx context.Context, userID uuid.UUID) ([]model.DhikrGroup, error) {
	logger := middleware.GetLogger(ctx).With("user_id", userID)

	groups, err := s.remote.ReadDefinitions(ctx, userID)
	if err != nil {
		logger.Error("Failed to read definitions from remote store", "error", err)
		return nil, fmt.Errorf("reading definitions: %w", err)
	}

	s.mu.Lock()
	s.cache[userID] = groups
	s.mu.Unlock()

	logger.Debug("Definitions refreshed", "groups", len(groups))
	return groups, nil
}

func (s *definitionService) Dhikr(ctx context.Context, userID, dhikrID uuid.UUID) (*model.Dhikr, error) {
	groups, err := s.Groups(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		for i := range g.Adhkar {
			if g.Adhkar[i].DhikrID == dhikrID {
				d := g.Adhkar[i]
				return &d, nil
			}
		}
	}
	return nil, model.ErrNotFound
}

func (s *definitionService) ActiveSets(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, []uuid.UUID, error) {
	groups, err := s.Groups(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	groupIDs := make([]uuid.UUID, 0, len(groups))
	dhikrIDs := make([]uuid.UUID, 0)
	for _, g := range groups {
		if g.IsActive {
			groupIDs = append(groupIDs, g.GroupID)
		}
		for _, d := range g.Adhkar {
			if d.IsActive {
				dhikrIDs = append(dhikrIDs, d.DhikrID)
			}
		}
	}
	return groupIDs, dhikrIDs, nil
}
