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

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStreaksEmptyHistory(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(&mocks.StatsStore{}, nil)

	summary, err := svc.Streaks(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, StreakSummary{}, summary)
}

func TestStreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		dates []time.Time // most recent first, as the store returns them
		want  StreakSummary
	}{
		{
			name:  "single day",
			dates: []time.Time{day(2025, 3, 10)},
			want:  StreakSummary{Current: 1, Max: 1},
		},
		{
			name: "unbroken run",
			dates: []time.Time{
				day(2025, 3, 10), day(2025, 3, 9), day(2025, 3, 8),
			},
			want: StreakSummary{Current: 3, Max: 3},
		},
		{
			name: "current shorter than max",
			dates: []time.Time{
				day(2025, 3, 10), day(2025, 3, 9),
				day(2025, 3, 5), day(2025, 3, 4), day(2025, 3, 3), day(2025, 3, 2),
			},
			want: StreakSummary{Current: 2, Max: 4},
		},
		{
			name: "gap right after most recent day",
			dates: []time.Time{
				day(2025, 3, 10),
				day(2025, 3, 7), day(2025, 3, 6),
			},
			want: StreakSummary{Current: 1, Max: 2},
		},
		{
			name: "month boundary",
			dates: []time.Time{
				day(2025, 3, 1), day(2025, 2, 28), day(2025, 2, 27),
			},
			want: StreakSummary{Current: 3, Max: 3},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			store := &mocks.StatsStore{
				GetStudyDatesFn: func(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
					return tc.dates, nil
				},
			}
			svc := NewStatsService(store, nil)

			summary, err := svc.Streaks(context.Background(), uuid.New())
			require.NoError(t, err)
			assert.Equal(t, tc.want, summary)
		})
	}
}

func TestWeeklyZeroFillsSevenDays(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	today := day(2025, 3, 10)

	store := &mocks.StatsStore{
		GetByDateRangeFn: func(ctx context.Context, id uuid.UUID, start, end time.Time) ([]*domain.DailyStats, error) {
			return []*domain.DailyStats{
				{UserID: id, Date: day(2025, 3, 5), TotalMinutes: 50},
				{UserID: id, Date: day(2025, 3, 10), TotalMinutes: 25},
			}, nil
		},
	}
	svc := NewStatsService(store, nil)
	svc.now = func() time.Time { return today }

	week, err := svc.Weekly(context.Background(), userID, time.Time{})
	require.NoError(t, err)
	require.Len(t, week, 7)

	assert.Equal(t, day(2025, 3, 4), week[0].Date)
	assert.Equal(t, 0, week[0].Minutes)
	assert.Equal(t, 50, week[1].Minutes)
	assert.Equal(t, today, week[6].Date)
	assert.Equal(t, 25, week[6].Minutes)
}

func TestWeeklyExplicitStartSelectsThatWeek(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotStart, gotEnd time.Time

	store := &mocks.StatsStore{
		GetByDateRangeFn: func(ctx context.Context, id uuid.UUID, start, end time.Time) ([]*domain.DailyStats, error) {
			gotStart, gotEnd = start, end
			return []*domain.DailyStats{
				{UserID: id, Date: day(2025, 2, 3), TotalMinutes: 40},
			}, nil
		},
	}
	svc := NewStatsService(store, nil)

	week, err := svc.Weekly(context.Background(), userID, day(2025, 2, 3))
	require.NoError(t, err)
	require.Len(t, week, 7)

	assert.Equal(t, day(2025, 2, 3), gotStart)
	assert.Equal(t, day(2025, 2, 9), gotEnd)
	assert.Equal(t, day(2025, 2, 3), week[0].Date)
	assert.Equal(t, 40, week[0].Minutes)
	assert.Equal(t, day(2025, 2, 9), week[6].Date)
	assert.Equal(t, 0, week[6].Minutes)
}

func TestDailyMissingDateYieldsEmptyRecord(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := NewStatsService(&mocks.StatsStore{}, nil)

	stats, err := svc.Daily(context.Background(), userID, day(2025, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalMinutes)
	assert.Equal(t, 0, stats.SessionCount)
	assert.Empty(t, stats.SubjectBreakdown)
	assert.Equal(t, day(2025, 3, 10), stats.Date)
}

func TestRangeRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	svc := NewStatsService(&mocks.StatsStore{}, nil)

	_, err := svc.Range(context.Background(), uuid.New(), day(2025, 3, 10), day(2025, 3, 1))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
