package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestReviewTaskValidateCompletionInvariant(t *testing.T) {
	now := time.Now().UTC()

	base := func() *ReviewTask {
		return &ReviewTask{
			ID:            uuid.New(),
			UserID:        uuid.New(),
			SessionID:     uuid.New(),
			TaskID:        uuid.New(),
			ScheduledDate: DateOf(now),
			ReviewNumber:  1,
		}
	}

	review := base()
	if err := review.Validate(); err != nil {
		t.Errorf("Expected valid review, got %v", err)
	}

	// IsCompleted without CompletedAt
	review = base()
	review.IsCompleted = true
	if err := review.Validate(); err != ErrReviewCompletionMismatch {
		t.Errorf("Expected ErrReviewCompletionMismatch, got %v", err)
	}

	// CompletedAt without IsCompleted
	review = base()
	review.CompletedAt = &now
	if err := review.Validate(); err != ErrReviewCompletionMismatch {
		t.Errorf("Expected ErrReviewCompletionMismatch, got %v", err)
	}

	// Both set agree
	review = base()
	review.IsCompleted = true
	review.CompletedAt = &now
	if err := review.Validate(); err != nil {
		t.Errorf("Expected valid completed review, got %v", err)
	}

	// Review number below 1
	review = base()
	review.ReviewNumber = 0
	if err := review.Validate(); err != ErrReviewNumberInvalid {
		t.Errorf("Expected ErrReviewNumberInvalid, got %v", err)
	}
}
