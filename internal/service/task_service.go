package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/events"
	"github.com/veleda/studyflow/internal/platform/logger"
	"github.com/veleda/studyflow/internal/domain/schedule"
	"github.com/veleda/studyflow/internal/store"
)

// TaskService owns task CRUD and the schedule queries built on top of
// it. Every operation checks that the task belongs to the calling user
// before touching it.
type TaskService struct {
	tasks  store.TaskStore
	groups store.GroupStore
	users  store.UserStore
	events events.Publisher
	logger *slog.Logger
	now    func() time.Time
}

// NewTaskService creates a TaskService.
// If logger is nil, a default logger will be used.
func NewTaskService(tasks store.TaskStore, groups store.GroupStore, users store.UserStore, publisher events.Publisher, logger *slog.Logger) *TaskService {
	if tasks == nil {
		panic("task store cannot be nil")
	}
	if groups == nil {
		panic("group store cannot be nil")
	}
	if users == nil {
		panic("user store cannot be nil")
	}
	if publisher == nil {
		panic("event publisher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		tasks:  tasks,
		groups: groups,
		users:  users,
		events: publisher,
		logger: logger.With(slog.String("component", "task_service")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// checkReviewCountAllowed gates per-task review counts above the free
// interval prefix behind premium access.
func (s *TaskService) checkReviewCountAllowed(ctx context.Context, task *domain.Task) error {
	if task.ReviewCountOverride == nil || *task.ReviewCountOverride <= schedule.FreeIntervalCount {
		return nil
	}

	user, err := s.users.GetByID(ctx, task.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if !user.HasPremiumAccess(s.now()) {
		return domain.NewPremiumError("extended review schedule")
	}
	return nil
}

// Create validates and saves a new task inside one of the user's
// groups.
func (s *TaskService) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	group, err := s.groups.GetByID(ctx, task.GroupID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to get group: %w", err)
	}
	if group.UserID != task.UserID {
		return ErrNotOwned
	}

	if err := task.Validate(); err != nil {
		return err
	}
	if err := s.checkReviewCountAllowed(ctx, task); err != nil {
		return err
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	log.Debug("task created", "task_id", task.ID, "group_id", task.GroupID)
	s.events.Publish(events.NewEvent(task.UserID, events.EntityTask, events.ChangeCreated, task.ID))
	return nil
}

// Get returns one of the user's tasks.
func (s *TaskService) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	return s.owned(ctx, userID, taskID)
}

// ListActive returns every active task of the user.
func (s *TaskService) ListActive(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	return s.tasks.GetAllActive(ctx, userID)
}

// ListByGroup returns the tasks inside one of the user's groups.
func (s *TaskService) ListByGroup(ctx context.Context, userID, groupID uuid.UUID) ([]*domain.Task, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group.UserID != userID {
		return nil, ErrNotOwned
	}
	return s.tasks.GetByGroup(ctx, groupID)
}

// ScheduledFor returns the active tasks due on the given date: the
// repeating tasks matching its weekday plus the one-off tasks falling
// exactly on it.
func (s *TaskService) ScheduledFor(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error) {
	return s.tasks.GetScheduledForDate(ctx, userID, domain.DateOf(date))
}

// UpcomingDeadlines returns the active deadline tasks due inside
// [start, end].
func (s *TaskService) UpcomingDeadlines(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	return s.tasks.GetUpcomingDeadlines(ctx, userID, domain.DateOf(start), domain.DateOf(end))
}

// Update validates and persists changes to one of the user's tasks.
// The task's owner and ID are taken from the stored row, not the input.
func (s *TaskService) Update(ctx context.Context, userID uuid.UUID, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	existing, err := s.owned(ctx, userID, task.ID)
	if err != nil {
		return err
	}
	task.UserID = existing.UserID
	task.CreatedAt = existing.CreatedAt

	if err := task.Validate(); err != nil {
		return err
	}
	if err := s.checkReviewCountAllowed(ctx, task); err != nil {
		return err
	}
	if err := s.tasks.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to update task: %w", err)
	}

	log.Debug("task updated", "task_id", task.ID)
	s.events.Publish(events.NewEvent(userID, events.EntityTask, events.ChangeUpdated, task.ID))
	return nil
}

// Delete removes one of the user's tasks. Its sessions and review
// reminders cascade-delete with it.
func (s *TaskService) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.owned(ctx, userID, taskID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if store.IsNotFoundError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete task: %w", err)
	}

	log.Debug("task deleted", "task_id", taskID)
	s.events.Publish(events.NewEvent(userID, events.EntityTask, events.ChangeDeleted, taskID))
	return nil
}

func (s *TaskService) owned(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.UserID != userID {
		return nil, ErrNotOwned
	}
	return task, nil
}
