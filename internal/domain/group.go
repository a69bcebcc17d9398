package domain

import (
	"time"

	"github.com/google/uuid"
)

// Group-specific validation errors
var (
	// ErrGroupIDEmpty is returned when a group ID is empty or nil.
	ErrGroupIDEmpty = NewFieldError("id", "group ID cannot be empty")

	// ErrGroupNameEmpty is returned when a group's name is empty.
	ErrGroupNameEmpty = NewFieldError("name", "group name cannot be empty")
)

// Group is a user-defined category that owns tasks, e.g. a school subject.
// The group name is what the per-subject stats breakdown aggregates on.
type Group struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sort_order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGroup creates a new Group owned by the given user.
func NewGroup(userID uuid.UUID, name string, sortOrder int) (*Group, error) {
	group := &Group{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		SortOrder: sortOrder,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := group.Validate(); err != nil {
		return nil, err
	}

	return group, nil
}

// Validate checks if the Group has valid data.
func (g *Group) Validate() error {
	if g.ID == uuid.Nil {
		return ErrGroupIDEmpty
	}

	if g.UserID == uuid.Nil {
		return NewFieldError("user_id", "group user ID cannot be empty")
	}

	if g.Name == "" {
		return ErrGroupNameEmpty
	}

	return nil
}
