package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
)

// StatsStore defines the interface for daily statistics persistence.
type StatsStore interface {
	// Upsert accumulates one finished session into the record for the
	// date: lazily creates the row on the first session, otherwise adds
	// the minutes, increments the session count, and adds to the subject
	// entry in the breakdown. The read-modify-write is atomic per date
	// row at the storage layer, so concurrent session finishes on the
	// same day never lose updates.
	Upsert(ctx context.Context, userID uuid.UUID, date time.Time, minutes int, subject string) error

	// GetByDate retrieves the stats record for one date.
	// Returns ErrStatsNotFound if no session was recorded on it.
	GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStats, error)

	// GetByDateRange retrieves the stats records inside [start, end]
	// ordered by date ascending. Dates without sessions have no record.
	GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.DailyStats, error)

	// GetStudyDates returns every date with nonzero study time, ordered
	// descending. Streak walks consume this.
	GetStudyDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error)

	// WithTx returns a StatsStore bound to the given transaction.
	WithTx(tx *sql.Tx) StatsStore
}
