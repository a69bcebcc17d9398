package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/store"
)

// ReviewTaskStore implements store.ReviewTaskStore for testing.
type ReviewTaskStore struct {
	InsertBatchFn        func(ctx context.Context, reviews []*domain.ReviewTask) error
	GetByIDFn            func(ctx context.Context, id uuid.UUID) (*domain.ReviewTask, error)
	GetBySessionFn       func(ctx context.Context, sessionID uuid.UUID) ([]*domain.ReviewTask, error)
	GetByTaskFn          func(ctx context.Context, taskID uuid.UUID) ([]*domain.ReviewTask, error)
	GetByUserFn          func(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewTask, error)
	GetPendingForDateFn  func(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error)
	GetAllForDateFn      func(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error)
	GetOverdueAndTodayFn func(ctx context.Context, userID uuid.UUID, today time.Time) ([]*domain.ReviewTask, error)
	CountByDateRangeFn   func(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]int, error)
	ListWithTaskInfoFn   func(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewListItem, error)
	MarkCompletedFn      func(ctx context.Context, id uuid.UUID, now time.Time) error
	MarkIncompleteFn     func(ctx context.Context, id uuid.UUID) error
	RescheduleFn         func(ctx context.Context, id uuid.UUID, newDate time.Time) error
}

var _ store.ReviewTaskStore = (*ReviewTaskStore)(nil)

func (m *ReviewTaskStore) InsertBatch(ctx context.Context, reviews []*domain.ReviewTask) error {
	if m.InsertBatchFn != nil {
		return m.InsertBatchFn(ctx, reviews)
	}
	return nil
}

func (m *ReviewTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewTask, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrReviewNotFound
}

func (m *ReviewTaskStore) GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.ReviewTask, error) {
	if m.GetBySessionFn != nil {
		return m.GetBySessionFn(ctx, sessionID)
	}
	return nil, nil
}

func (m *ReviewTaskStore) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.ReviewTask, error) {
	if m.GetByTaskFn != nil {
		return m.GetByTaskFn(ctx, taskID)
	}
	return nil, nil
}

func (m *ReviewTaskStore) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewTask, error) {
	if m.GetByUserFn != nil {
		return m.GetByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *ReviewTaskStore) GetPendingForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error) {
	if m.GetPendingForDateFn != nil {
		return m.GetPendingForDateFn(ctx, userID, date)
	}
	return nil, nil
}

func (m *ReviewTaskStore) GetAllForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error) {
	if m.GetAllForDateFn != nil {
		return m.GetAllForDateFn(ctx, userID, date)
	}
	return nil, nil
}

func (m *ReviewTaskStore) GetOverdueAndToday(ctx context.Context, userID uuid.UUID, today time.Time) ([]*domain.ReviewTask, error) {
	if m.GetOverdueAndTodayFn != nil {
		return m.GetOverdueAndTodayFn(ctx, userID, today)
	}
	return nil, nil
}

func (m *ReviewTaskStore) CountByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]int, error) {
	if m.CountByDateRangeFn != nil {
		return m.CountByDateRangeFn(ctx, userID, start, end)
	}
	return map[time.Time]int{}, nil
}

func (m *ReviewTaskStore) ListWithTaskInfo(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewListItem, error) {
	if m.ListWithTaskInfoFn != nil {
		return m.ListWithTaskInfoFn(ctx, userID)
	}
	return nil, nil
}

func (m *ReviewTaskStore) MarkCompleted(ctx context.Context, id uuid.UUID, now time.Time) error {
	if m.MarkCompletedFn != nil {
		return m.MarkCompletedFn(ctx, id, now)
	}
	return nil
}

func (m *ReviewTaskStore) MarkIncomplete(ctx context.Context, id uuid.UUID) error {
	if m.MarkIncompleteFn != nil {
		return m.MarkIncompleteFn(ctx, id)
	}
	return nil
}

func (m *ReviewTaskStore) Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time) error {
	if m.RescheduleFn != nil {
		return m.RescheduleFn(ctx, id, newDate)
	}
	return nil
}

func (m *ReviewTaskStore) WithTx(tx *sql.Tx) store.ReviewTaskStore {
	return m
}
