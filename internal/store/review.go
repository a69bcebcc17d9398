package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
)

// ReviewTaskStore defines the interface for review reminder persistence.
type ReviewTaskStore interface {
	// InsertBatch saves the reminders generated from one session finish.
	// Run it inside a transaction via WithTx so the batch is atomic with
	// the session update that produced it.
	InsertBatch(ctx context.Context, reviews []*domain.ReviewTask) error

	// GetByID retrieves a reminder by its unique ID.
	// Returns ErrReviewNotFound if the reminder does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewTask, error)

	// GetBySession retrieves the reminders created from one session,
	// ordered by review number.
	GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.ReviewTask, error)

	// GetByTask retrieves all reminders of a task, ordered by scheduled
	// date, then review number.
	GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.ReviewTask, error)

	// GetByUser retrieves every reminder of a user. Classification into
	// pending/overdue/completed happens on the fetched set, not in
	// separate queries, so derived counts always sum to the total.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewTask, error)

	// GetPendingForDate retrieves incomplete reminders scheduled exactly
	// on the given date.
	GetPendingForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error)

	// GetAllForDate retrieves every reminder scheduled on the given date
	// regardless of completion.
	GetAllForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error)

	// GetOverdueAndToday retrieves the daily work feed: incomplete
	// reminders scheduled before today plus all reminders scheduled
	// exactly today regardless of completion.
	GetOverdueAndToday(ctx context.Context, userID uuid.UUID, today time.Time) ([]*domain.ReviewTask, error)

	// CountByDateRange returns scheduled-reminder counts per date inside
	// [start, end]. Dates with no reminders are absent from the map.
	CountByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]int, error)

	// ListWithTaskInfo retrieves the denormalized list view: every
	// reminder of a user joined with its task and group names, ordered
	// by scheduled date.
	ListWithTaskInfo(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewListItem, error)

	// MarkCompleted sets is_completed and stamps completed_at with now.
	// Completing an already-completed reminder is a no-op: completed_at
	// keeps the first completion time.
	// Returns ErrReviewNotFound if the reminder does not exist.
	MarkCompleted(ctx context.Context, id uuid.UUID, now time.Time) error

	// MarkIncomplete clears both is_completed and completed_at.
	// Returns ErrReviewNotFound if the reminder does not exist.
	MarkIncomplete(ctx context.Context, id uuid.UUID) error

	// Reschedule changes only the scheduled date; review number and
	// completion state are untouched.
	// Returns ErrReviewNotFound if the reminder does not exist.
	Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time) error

	// WithTx returns a ReviewTaskStore bound to the given transaction.
	WithTx(tx *sql.Tx) ReviewTaskStore
}
