package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/events"
	"github.com/veleda/studyflow/internal/mocks"
)

func TestGroupCreateValidates(t *testing.T) {
	t.Parallel()

	svc := NewGroupService(&mocks.GroupStore{}, &mocks.Publisher{}, nil)

	err := svc.Create(context.Background(), &domain.Group{ID: uuid.New(), UserID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGroupDeletePublishesEvent(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	group, err := domain.NewGroup(userID, "Languages", 0)
	require.NoError(t, err)

	groups := &mocks.GroupStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
			return group, nil
		},
	}
	pub := &mocks.Publisher{}
	svc := NewGroupService(groups, pub, nil)

	require.NoError(t, svc.Delete(context.Background(), userID, group.ID))

	published := pub.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EntityGroup, published[0].Entity)
	assert.Equal(t, events.ChangeDeleted, published[0].Change)
}

func TestGroupGetForeignRejected(t *testing.T) {
	t.Parallel()

	group, err := domain.NewGroup(uuid.New(), "Private", 0)
	require.NoError(t, err)

	groups := &mocks.GroupStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
			return group, nil
		},
	}
	svc := NewGroupService(groups, &mocks.Publisher{}, nil)

	_, err = svc.Get(context.Background(), uuid.New(), group.ID)
	assert.ErrorIs(t, err, ErrNotOwned)
}
