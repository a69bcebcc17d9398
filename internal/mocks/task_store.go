package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/store"
)

// TaskStore implements store.TaskStore for testing.
type TaskStore struct {
	CreateFn               func(ctx context.Context, task *domain.Task) error
	GetByIDFn              func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	GetAllActiveFn         func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	GetByGroupFn           func(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error)
	GetScheduledForDateFn  func(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error)
	GetUpcomingDeadlinesFn func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error)
	GetOneOffInRangeFn     func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error)
	GetRepeatingFn         func(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error)
	UpdateFn               func(ctx context.Context, task *domain.Task) error
	UpdateLastStudiedAtFn  func(ctx context.Context, id uuid.UUID, studiedAt time.Time) error
	DeleteFn               func(ctx context.Context, id uuid.UUID) error
}

var _ store.TaskStore = (*TaskStore)(nil)

func (m *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

func (m *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *TaskStore) GetAllActive(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.GetAllActiveFn != nil {
		return m.GetAllActiveFn(ctx, userID)
	}
	return nil, nil
}

func (m *TaskStore) GetByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error) {
	if m.GetByGroupFn != nil {
		return m.GetByGroupFn(ctx, groupID)
	}
	return nil, nil
}

func (m *TaskStore) GetScheduledForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error) {
	if m.GetScheduledForDateFn != nil {
		return m.GetScheduledForDateFn(ctx, userID, date)
	}
	return nil, nil
}

func (m *TaskStore) GetUpcomingDeadlines(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error) {
	if m.GetUpcomingDeadlinesFn != nil {
		return m.GetUpcomingDeadlinesFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *TaskStore) GetOneOffInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error) {
	if m.GetOneOffInRangeFn != nil {
		return m.GetOneOffInRangeFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *TaskStore) GetRepeating(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	if m.GetRepeatingFn != nil {
		return m.GetRepeatingFn(ctx, userID)
	}
	return nil, nil
}

func (m *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

func (m *TaskStore) UpdateLastStudiedAt(ctx context.Context, id uuid.UUID, studiedAt time.Time) error {
	if m.UpdateLastStudiedAtFn != nil {
		return m.UpdateLastStudiedAtFn(ctx, id, studiedAt)
	}
	return nil
}

func (m *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// WithTx returns the mock itself; transactional composition is not
// simulated.
func (m *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
