package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
)

// TaskStore defines the interface for study task persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors wrapped in ErrInvalidEntity if the task
	// violates a domain invariant.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// GetAllActive retrieves every active task of a user.
	GetAllActive(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// GetByGroup retrieves all tasks owned by a group.
	GetByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error)

	// GetScheduledForDate retrieves the active tasks due on the given
	// date: one-off tasks scheduled exactly on it plus repeating tasks
	// whose weekday set contains the date's weekday.
	GetScheduledForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error)

	// GetUpcomingDeadlines retrieves active deadline tasks whose date
	// falls inside [start, end], ordered by date.
	GetUpcomingDeadlines(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error)

	// GetOneOffInRange retrieves active deadline and specific-date tasks
	// whose date falls inside [start, end].
	GetOneOffInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error)

	// GetRepeating retrieves every active repeating task of a user.
	GetRepeating(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)

	// Update replaces the stored task with the given one.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateLastStudiedAt sets only the last-studied timestamp.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateLastStudiedAt(ctx context.Context, id uuid.UUID, studiedAt time.Time) error

	// Delete removes a task. Sessions and review reminders referencing
	// it cascade-delete at the database level.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a TaskStore bound to the given transaction so task
	// mutations can be composed with other stores atomically.
	WithTx(tx *sql.Tx) TaskStore
}
