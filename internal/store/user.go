package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
)

// UserStore defines the interface for user account persistence.
type UserStore interface {
	// Create saves a new user to the store.
	// Returns ErrEmailExists if the email address is already in use.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpdatePremium sets the subscription and trial state of a user.
	// Returns ErrUserNotFound if the user does not exist.
	UpdatePremium(ctx context.Context, user *domain.User) error
}
