package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/store"
)

// GroupStore implements store.GroupStore for testing.
type GroupStore struct {
	CreateFn    func(ctx context.Context, group *domain.Group) error
	GetByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	GetByUserFn func(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error)
	UpdateFn    func(ctx context.Context, group *domain.Group) error
	DeleteFn    func(ctx context.Context, id uuid.UUID) error
}

var _ store.GroupStore = (*GroupStore)(nil)

func (m *GroupStore) Create(ctx context.Context, group *domain.Group) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, group)
	}
	return nil
}

func (m *GroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrGroupNotFound
}

func (m *GroupStore) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	if m.GetByUserFn != nil {
		return m.GetByUserFn(ctx, userID)
	}
	return nil, nil
}

func (m *GroupStore) Update(ctx context.Context, group *domain.Group) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, group)
	}
	return nil
}

func (m *GroupStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}
