package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
)

// GroupStore defines the interface for task group persistence.
type GroupStore interface {
	// Create saves a new group to the store.
	Create(ctx context.Context, group *domain.Group) error

	// GetByID retrieves a group by its unique ID.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// GetByUser retrieves all groups of a user ordered by sort order.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)

	// Update modifies an existing group's name and sort order.
	// Returns ErrGroupNotFound if the group does not exist.
	Update(ctx context.Context, group *domain.Group) error

	// Delete removes a group. Tasks owned by the group cascade-delete,
	// and their sessions and review reminders with them.
	// Returns ErrGroupNotFound if the group does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
