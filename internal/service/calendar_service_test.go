package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/mocks"
)

func calendarTask(t *testing.T, userID uuid.UUID, mutate func(*domain.Task)) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(userID, uuid.New(), "task")
	require.NoError(t, err)
	mutate(task)
	require.NoError(t, task.Validate())
	return task
}

func TestCalendarCountsMergeAllSources(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	// Monday March 3 through Sunday March 9, 2025.
	start := day(2025, 3, 3)
	end := day(2025, 3, 9)

	deadline := day(2025, 3, 5)
	oneOff := calendarTask(t, userID, func(task *domain.Task) {
		task.ScheduleType = domain.ScheduleDeadline
		task.DeadlineDate = &deadline
	})

	// Repeats Mondays and Wednesdays.
	repeating := calendarTask(t, userID, func(task *domain.Task) {
		task.ScheduleType = domain.ScheduleRepeat
		task.RepeatDays = []int{1, 3}
	})

	tasks := &mocks.TaskStore{
		GetOneOffInRangeFn: func(ctx context.Context, id uuid.UUID, s, e time.Time) ([]*domain.Task, error) {
			return []*domain.Task{oneOff}, nil
		},
		GetRepeatingFn: func(ctx context.Context, id uuid.UUID) ([]*domain.Task, error) {
			return []*domain.Task{repeating}, nil
		},
	}
	reviews := &mocks.ReviewTaskStore{
		CountByDateRangeFn: func(ctx context.Context, id uuid.UUID, s, e time.Time) (map[time.Time]int, error) {
			return map[time.Time]int{
				day(2025, 3, 5): 2,
				day(2025, 3, 7): 1,
			}, nil
		},
	}

	svc := NewCalendarService(tasks, reviews, nil)
	counts, err := svc.Counts(context.Background(), userID, start, end)
	require.NoError(t, err)

	assert.Equal(t, map[time.Time]int{
		day(2025, 3, 3): 1, // Monday repeat
		day(2025, 3, 5): 4, // Wednesday repeat + deadline + 2 reviews
		day(2025, 3, 7): 1, // review
	}, counts)
}

func TestCalendarCountsEmptyWindow(t *testing.T) {
	t.Parallel()

	svc := NewCalendarService(&mocks.TaskStore{}, &mocks.ReviewTaskStore{}, nil)

	counts, err := svc.Counts(context.Background(), uuid.New(), day(2025, 3, 3), day(2025, 3, 9))
	require.NoError(t, err)
	assert.Empty(t, counts)
}

func TestCalendarCountsRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	svc := NewCalendarService(&mocks.TaskStore{}, &mocks.ReviewTaskStore{}, nil)

	_, err := svc.Counts(context.Background(), uuid.New(), day(2025, 3, 9), day(2025, 3, 3))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestCalendarCountsNonUTCRangeMergesOnOneKey(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	est := time.FixedZone("EST", -5*60*60)

	daily := calendarTask(t, userID, func(task *domain.Task) {
		task.ScheduleType = domain.ScheduleRepeat
		task.RepeatDays = []int{1, 2, 3, 4, 5, 6, 7}
	})
	tasks := &mocks.TaskStore{
		GetRepeatingFn: func(ctx context.Context, id uuid.UUID) ([]*domain.Task, error) {
			return []*domain.Task{daily}, nil
		},
	}
	// The store scans dates at UTC midnight regardless of the caller's zone.
	reviews := &mocks.ReviewTaskStore{
		CountByDateRangeFn: func(ctx context.Context, id uuid.UUID, s, e time.Time) (map[time.Time]int, error) {
			return map[time.Time]int{day(2025, 3, 11): 1}, nil
		},
	}

	svc := NewCalendarService(tasks, reviews, nil)
	counts, err := svc.Counts(context.Background(), userID,
		time.Date(2025, 3, 10, 0, 0, 0, 0, est),
		time.Date(2025, 3, 12, 0, 0, 0, 0, est))
	require.NoError(t, err)

	// One entry per calendar date; the review and the repeat on March 11
	// sum on a single key instead of splitting by location.
	assert.Equal(t, map[time.Time]int{
		day(2025, 3, 10): 1,
		day(2025, 3, 11): 2,
		day(2025, 3, 12): 1,
	}, counts)
}

func TestCalendarCountsMultipleRepeatingTasksStack(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	a := calendarTask(t, userID, func(task *domain.Task) {
		task.ScheduleType = domain.ScheduleRepeat
		task.RepeatDays = []int{6, 7}
	})
	b := calendarTask(t, userID, func(task *domain.Task) {
		task.ScheduleType = domain.ScheduleRepeat
		task.RepeatDays = []int{7}
	})

	tasks := &mocks.TaskStore{
		GetRepeatingFn: func(ctx context.Context, id uuid.UUID) ([]*domain.Task, error) {
			return []*domain.Task{a, b}, nil
		},
	}

	svc := NewCalendarService(tasks, &mocks.ReviewTaskStore{}, nil)
	counts, err := svc.Counts(context.Background(), userID, day(2025, 3, 3), day(2025, 3, 9))
	require.NoError(t, err)

	assert.Equal(t, map[time.Time]int{
		day(2025, 3, 8): 1, // Saturday
		day(2025, 3, 9): 2, // Sunday, both tasks
	}, counts)
}
