package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/store"
)

// StatsStore implements store.StatsStore for testing.
type StatsStore struct {
	UpsertFn         func(ctx context.Context, userID uuid.UUID, date time.Time, minutes int, subject string) error
	GetByDateFn      func(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStats, error)
	GetByDateRangeFn func(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.DailyStats, error)
	GetStudyDatesFn  func(ctx context.Context, userID uuid.UUID) ([]time.Time, error)
}

var _ store.StatsStore = (*StatsStore)(nil)

func (m *StatsStore) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, minutes int, subject string) error {
	if m.UpsertFn != nil {
		return m.UpsertFn(ctx, userID, date, minutes, subject)
	}
	return nil
}

func (m *StatsStore) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStats, error) {
	if m.GetByDateFn != nil {
		return m.GetByDateFn(ctx, userID, date)
	}
	return nil, store.ErrStatsNotFound
}

func (m *StatsStore) GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.DailyStats, error) {
	if m.GetByDateRangeFn != nil {
		return m.GetByDateRangeFn(ctx, userID, start, end)
	}
	return nil, nil
}

func (m *StatsStore) GetStudyDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	if m.GetStudyDatesFn != nil {
		return m.GetStudyDatesFn(ctx, userID)
	}
	return nil, nil
}

func (m *StatsStore) WithTx(tx *sql.Tx) store.StatsStore {
	return m
}
