package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/events"
	"github.com/veleda/studyflow/internal/platform/logger"
	"github.com/veleda/studyflow/internal/store"
)

// GroupService owns group CRUD with per-user ownership checks.
type GroupService struct {
	groups store.GroupStore
	events events.Publisher
	logger *slog.Logger
}

// NewGroupService creates a GroupService.
// If logger is nil, a default logger will be used.
func NewGroupService(groups store.GroupStore, publisher events.Publisher, logger *slog.Logger) *GroupService {
	if groups == nil {
		panic("group store cannot be nil")
	}
	if publisher == nil {
		panic("event publisher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GroupService{
		groups: groups,
		events: publisher,
		logger: logger.With(slog.String("component", "group_service")),
	}
}

// Create validates and saves a new group.
func (s *GroupService) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		return err
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	log.Debug("group created", "group_id", group.ID)
	s.events.Publish(events.NewEvent(group.UserID, events.EntityGroup, events.ChangeCreated, group.ID))
	return nil
}

// Get returns one of the user's groups.
func (s *GroupService) Get(ctx context.Context, userID, groupID uuid.UUID) (*domain.Group, error) {
	return s.owned(ctx, userID, groupID)
}

// List returns the user's groups in sort order.
func (s *GroupService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	return s.groups.GetByUser(ctx, userID)
}

// Update validates and persists changes to one of the user's groups.
func (s *GroupService) Update(ctx context.Context, userID uuid.UUID, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.owned(ctx, userID, group.ID)
	if err != nil {
		return err
	}
	group.UserID = existing.UserID
	group.CreatedAt = existing.CreatedAt

	if err := group.Validate(); err != nil {
		return err
	}
	if err := s.groups.Update(ctx, group); err != nil {
		if store.IsNotFoundError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update group: %w", err)
	}

	log.Debug("group updated", "group_id", group.ID)
	s.events.Publish(events.NewEvent(userID, events.EntityGroup, events.ChangeUpdated, group.ID))
	return nil
}

// Delete removes one of the user's groups and, through database
// cascades, every task under it.
func (s *GroupService) Delete(ctx context.Context, userID, groupID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.owned(ctx, userID, groupID); err != nil {
		return err
	}
	if err := s.groups.Delete(ctx, groupID); err != nil {
		if store.IsNotFoundError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete group: %w", err)
	}

	log.Debug("group deleted", "group_id", groupID)
	s.events.Publish(events.NewEvent(userID, events.EntityGroup, events.ChangeDeleted, groupID))
	return nil
}

func (s *GroupService) owned(ctx context.Context, userID, groupID uuid.UUID) (*domain.Group, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group.UserID != userID {
		return nil, ErrNotOwned
	}
	return group, nil
}
