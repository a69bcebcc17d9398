package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/store"
)

// CalendarService builds the per-date item counts shown as calendar
// badges. Three sources contribute to a date's count: one-off tasks
// (deadline and specific-date) falling on it, repeating tasks whose
// weekday matches it, and review reminders scheduled on it. The counts
// are summed per date; dates with nothing land in no map entry at all.
type CalendarService struct {
	tasks   store.TaskStore
	reviews store.ReviewTaskStore
	logger  *slog.Logger
}

// NewCalendarService creates a CalendarService.
// If logger is nil, a default logger will be used.
func NewCalendarService(tasks store.TaskStore, reviews store.ReviewTaskStore, logger *slog.Logger) *CalendarService {
	if tasks == nil {
		panic("task store cannot be nil")
	}
	if reviews == nil {
		panic("review store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CalendarService{
		tasks:   tasks,
		reviews: reviews,
		logger:  logger.With(slog.String("component", "calendar_service")),
	}
}

// utcDate re-keys t's calendar date to UTC midnight. Dates reaching the
// counts map come from mixed origins (DB scans, caller-supplied ranges);
// time.Time map keys compare by instant and location, so every key must
// share one canonical representation or the same date splits into
// separate entries.
func utcDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Counts returns the per-date item counts inside [start, end]. Map keys
// are UTC-midnight dates; a date absent from the map has zero items.
func (s *CalendarService) Counts(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]int, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	start = utcDate(start)
	end = utcDate(end)

	reviewCounts, err := s.reviews.CountByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	counts := make(map[time.Time]int, len(reviewCounts))
	for date, n := range reviewCounts {
		counts[utcDate(date)] += n
	}

	oneOff, err := s.tasks.GetOneOffInRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get one-off tasks: %w", err)
	}
	for _, task := range oneOff {
		if date := task.OneOffDate(); date != nil {
			counts[utcDate(*date)]++
		}
	}

	repeating, err := s.tasks.GetRepeating(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get repeating tasks: %w", err)
	}
	if len(repeating) > 0 {
		// Count matching weekdays per task once, then walk the window a
		// single time.
		perWeekday := [8]int{}
		for _, task := range repeating {
			for _, day := range task.RepeatDays {
				if day >= 1 && day <= 7 {
					perWeekday[day]++
				}
			}
		}
		for date := start; !date.After(end); date = domain.AddDays(date, 1) {
			if n := perWeekday[domain.ISOWeekday(date)]; n > 0 {
				counts[date] += n
			}
		}
	}

	return counts, nil
}
