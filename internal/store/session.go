package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
)

// SessionStore defines the interface for study session persistence.
type SessionStore interface {
	// Create saves a new running session to the store.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// GetByTask retrieves all sessions recorded against a task, most
	// recent first.
	GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.StudySession, error)

	// GetByDateRange retrieves the sessions of a user started inside
	// [start, end], most recent first.
	GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.StudySession, error)

	// Update persists the finished state of a session.
	// Returns ErrSessionNotFound if the session does not exist.
	Update(ctx context.Context, session *domain.StudySession) error

	// Delete removes a session. Its generated review reminders
	// cascade-delete at the database level.
	// Returns ErrSessionNotFound if the session does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a SessionStore bound to the given transaction.
	WithTx(tx *sql.Tx) SessionStore
}
