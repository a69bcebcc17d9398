package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewTask-specific validation errors
var (
	// ErrReviewIDEmpty is returned when a review ID is empty or nil.
	ErrReviewIDEmpty = NewFieldError("id", "review ID cannot be empty")

	// ErrReviewNumberInvalid is returned when a review number is below 1.
	ErrReviewNumberInvalid = NewFieldError("review_number", "review number must be at least 1")

	// ErrReviewCompletionMismatch is returned when IsCompleted and
	// CompletedAt disagree. The two always change together.
	ErrReviewCompletionMismatch = NewFieldError("completed_at", "completed_at must be set exactly when is_completed is true")
)

// ReviewTask is a spaced-repetition reminder generated from a completed
// study session. ReviewNumber values for one session form a contiguous
// 1..N sequence matching the interval list used at generation time.
// Rows cascade-delete with their originating session or task.
type ReviewTask struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	SessionID     uuid.UUID  `json:"session_id"`
	TaskID        uuid.UUID  `json:"task_id"`
	ScheduledDate time.Time  `json:"scheduled_date"`
	ReviewNumber  int        `json:"review_number"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Validate checks the ReviewTask invariants, in particular that
// IsCompleted and CompletedAt agree.
func (r *ReviewTask) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.UserID == uuid.Nil {
		return NewFieldError("user_id", "review user ID cannot be empty")
	}

	if r.SessionID == uuid.Nil {
		return NewFieldError("session_id", "review session ID cannot be empty")
	}

	if r.TaskID == uuid.Nil {
		return NewFieldError("task_id", "review task ID cannot be empty")
	}

	if r.ReviewNumber < 1 {
		return ErrReviewNumberInvalid
	}

	if r.IsCompleted != (r.CompletedAt != nil) {
		return ErrReviewCompletionMismatch
	}

	return nil
}

// ReviewListItem is the denormalized row served to list screens: the
// reminder plus the task and group names it belongs to.
type ReviewListItem struct {
	ReviewTask
	TaskName  string `json:"task_name"`
	GroupName string `json:"group_name"`
}
