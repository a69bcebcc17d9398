package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/mocks"
	"github.com/veleda/studyflow/internal/service"
)

func newTaskHandler(tasks *mocks.TaskStore, groups *mocks.GroupStore) *TaskHandler {
	return NewTaskHandler(service.NewTaskService(tasks, groups, &mocks.UserStore{}, &mocks.Publisher{}, nil))
}

func TestTaskHandler_Create(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	groupID := uuid.New()
	override := 50

	var created *domain.Task
	handler := newTaskHandler(
		&mocks.TaskStore{
			CreateFn: func(ctx context.Context, task *domain.Task) error {
				created = task
				return nil
			},
		},
		&mocks.GroupStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
				return &domain.Group{ID: groupID, UserID: userID, Name: "Math"}, nil
			},
		},
	)

	req := authedRequest(t, http.MethodPost, "/api/tasks", TaskPayload{
		GroupID:             groupID,
		Name:                "Integrals",
		WorkMinutesOverride: &override,
		ScheduleType:        string(domain.ScheduleRepeat),
		RepeatDays:          []int{1, 3},
	}, userID)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, created)
	assert.Equal(t, "Integrals", created.Name)
	assert.Equal(t, domain.ScheduleRepeat, created.ScheduleType)
	assert.Equal(t, []int{1, 3}, created.RepeatDays)
	require.NotNil(t, created.WorkMinutesOverride)
	assert.Equal(t, 50, *created.WorkMinutesOverride)
}

func TestTaskHandler_Create_ForeignGroup(t *testing.T) {
	t.Parallel()

	groupID := uuid.New()
	handler := newTaskHandler(
		&mocks.TaskStore{},
		&mocks.GroupStore{
			GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
				return &domain.Group{ID: groupID, UserID: uuid.New(), Name: "Theirs"}, nil
			},
		},
	)

	req := authedRequest(t, http.MethodPost, "/api/tasks", TaskPayload{
		GroupID:      groupID,
		Name:         "Sneaky",
		ScheduleType: string(domain.ScheduleNone),
	}, uuid.New())
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTaskHandler_Create_ReviewCountNeedsPremium(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	groupID := uuid.New()

	users := &mocks.UserStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			return &domain.User{ID: userID}, nil
		},
	}
	groups := &mocks.GroupStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
			return &domain.Group{ID: groupID, UserID: userID, Name: "Math"}, nil
		},
	}
	handler := NewTaskHandler(service.NewTaskService(&mocks.TaskStore{}, groups, users, &mocks.Publisher{}, nil))

	count := 5
	req := authedRequest(t, http.MethodPost, "/api/tasks", TaskPayload{
		GroupID:             groupID,
		Name:                "Flashcards",
		ReviewCountOverride: &count,
		ScheduleType:        string(domain.ScheduleNone),
	}, userID)
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTaskHandler_Create_BadScheduleType(t *testing.T) {
	t.Parallel()

	handler := newTaskHandler(&mocks.TaskStore{}, &mocks.GroupStore{})

	req := authedRequest(t, http.MethodPost, "/api/tasks", TaskPayload{
		GroupID:      uuid.New(),
		Name:         "Bad",
		ScheduleType: "weekly",
	}, uuid.New())
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTaskHandler_List_ByDate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	want := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	handler := newTaskHandler(
		&mocks.TaskStore{
			GetScheduledForDateFn: func(ctx context.Context, uid uuid.UUID, date time.Time) ([]*domain.Task, error) {
				assert.Equal(t, userID, uid)
				assert.True(t, domain.SameDate(want, date))
				return []*domain.Task{{ID: uuid.New(), UserID: uid, Name: "Due"}}, nil
			},
		},
		&mocks.GroupStore{},
	)

	req := authedRequest(t, http.MethodGet, "/api/tasks?date=2025-03-05", nil, userID)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var tasks []*domain.Task
	decodeBody(t, rec, &tasks)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Due", tasks[0].Name)
}

func TestTaskHandler_List_EmptyIsArray(t *testing.T) {
	t.Parallel()

	handler := newTaskHandler(&mocks.TaskStore{}, &mocks.GroupStore{})

	req := authedRequest(t, http.MethodGet, "/api/tasks", nil, uuid.New())
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestTaskHandler_Update_NotFound(t *testing.T) {
	t.Parallel()

	taskID := uuid.New()
	handler := newTaskHandler(&mocks.TaskStore{}, &mocks.GroupStore{})

	req := authedRequest(t, http.MethodPut, "/api/tasks/"+taskID.String(), TaskPayload{
		GroupID:      uuid.New(),
		Name:         "Renamed",
		ScheduleType: string(domain.ScheduleNone),
	}, uuid.New())
	req = withPathParam(req, "id", taskID.String())
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
