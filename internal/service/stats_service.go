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

// StreakSummary carries both streak figures computed from one study
// date set.
type StreakSummary struct {
	// Current is the length of the unbroken run of consecutive study
	// days ending at the most recent study day. It is anchored at the
	// data, not at the clock: a streak whose last day was yesterday is
	// still reported until a day is skipped.
	Current int `json:"current"`

	// Max is the longest consecutive run anywhere in the history.
	Max int `json:"max"`
}

// DayTotal is one calendar day's minute total, including zero days in
// fixed-width windows like the weekly view.
type DayTotal struct {
	Date    time.Time `json:"date"`
	Minutes int       `json:"minutes"`
}

// StatsService derives aggregate views from the per-day statistics
// records: single days, date ranges, seven-day weekly windows, and
// study streaks.
type StatsService struct {
	stats  store.StatsStore
	logger *slog.Logger
	now    func() time.Time
}

// NewStatsService creates a StatsService.
// If logger is nil, a default logger will be used.
func NewStatsService(stats store.StatsStore, logger *slog.Logger) *StatsService {
	if stats == nil {
		panic("stats store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsService{
		stats:  stats,
		logger: logger.With(slog.String("component", "stats_service")),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Daily returns the stats record for one date, or an empty record when
// no session was finished on it.
func (s *StatsService) Daily(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStats, error) {
	stats, err := s.stats.GetByDate(ctx, userID, domain.DateOf(date))
	if err != nil {
		if store.IsNotFoundError(err) {
			return &domain.DailyStats{
				UserID:           userID,
				Date:             domain.DateOf(date),
				SubjectBreakdown: map[string]int{},
			}, nil
		}
		return nil, fmt.Errorf("failed to get daily stats: %w", err)
	}
	return stats, nil
}

// Range returns the recorded stats inside [start, end], dates without
// sessions omitted, ordered ascending.
func (s *StatsService) Range(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.DailyStats, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	return s.stats.GetByDateRange(ctx, userID, domain.DateOf(start), domain.DateOf(end))
}

// Weekly returns exactly seven entries covering the week starting at
// weekStart, zero-filled for days without study time. A zero weekStart
// selects the window ending today.
func (s *StatsService) Weekly(ctx context.Context, userID uuid.UUID, weekStart time.Time) ([]DayTotal, error) {
	var start time.Time
	if weekStart.IsZero() {
		start = domain.AddDays(domain.DateOf(s.now()), -6)
	} else {
		start = domain.DateOf(weekStart)
	}
	end := domain.AddDays(start, 6)

	records, err := s.stats.GetByDateRange(ctx, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly stats: %w", err)
	}

	minutesByDate := make(map[time.Time]int, len(records))
	for _, record := range records {
		minutesByDate[domain.DateOf(record.Date)] = record.TotalMinutes
	}

	week := make([]DayTotal, 7)
	for i := range week {
		date := domain.AddDays(start, i)
		week[i] = DayTotal{Date: date, Minutes: minutesByDate[date]}
	}
	return week, nil
}

// Streaks computes the current and maximum study streaks from the full
// study date history.
func (s *StatsService) Streaks(ctx context.Context, userID uuid.UUID) (StreakSummary, error) {
	dates, err := s.stats.GetStudyDates(ctx, userID)
	if err != nil {
		return StreakSummary{}, fmt.Errorf("failed to get study dates: %w", err)
	}
	return computeStreaks(dates), nil
}

// computeStreaks walks the study dates, which arrive most recent
// first, counting consecutive-day runs. The current streak is the
// first run; the max streak is the longest run overall.
func computeStreaks(dates []time.Time) StreakSummary {
	if len(dates) == 0 {
		return StreakSummary{}
	}

	var summary StreakSummary
	run := 1
	for i := 1; i < len(dates); i++ {
		if domain.SameDate(domain.AddDays(dates[i], 1), dates[i-1]) {
			run++
			continue
		}
		if summary.Current == 0 {
			summary.Current = run
		}
		if run > summary.Max {
			summary.Max = run
		}
		run = 1
	}
	if summary.Current == 0 {
		summary.Current = run
	}
	if run > summary.Max {
		summary.Max = run
	}
	return summary
}
