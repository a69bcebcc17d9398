package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/store"
)

// SessionStore implements store.SessionStore for testing.
type SessionStore struct {
	CreateFn         func(ctx context.Context, session *domain.StudySession) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)
	GetByTaskFn      func(ctx context.Context, taskID uuid.UUID) ([]*domain.StudySession, error)
	GetByDateRangeFn func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.StudySession, error)
	UpdateFn         func(ctx context.Context, session *domain.StudySession) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
}

var _ store.SessionStore = (*SessionStore)(nil)

func (m *SessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, session)
	}
	return nil
}

func (m *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrSessionNotFound
}

func (m *SessionStore) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.StudySession, error) {
	if m.GetByTaskFn != nil {
		return m.GetByTaskFn(ctx, taskID)
	}
	return nil, nil
}

func (m *SessionStore) GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.StudySession, error) {
	if m.GetByDateRangeFn != nil {
		return m.GetByDateRangeFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *SessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, session)
	}
	return nil
}

func (m *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *SessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return m
}
