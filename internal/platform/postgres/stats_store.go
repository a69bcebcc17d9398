package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/platform/logger"
	"github.com/veleda/studyflow/internal/store"
)

// StatsStore implements the store.StatsStore interface using a PostgreSQL
// database as the storage backend. The per-date accumulation is a single
// INSERT .. ON CONFLICT DO UPDATE statement, so concurrent session
// finishes on the same date can never lose updates.
type StatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewStatsStore creates a new PostgreSQL implementation of the StatsStore
// interface. If logger is nil, a default logger will be used.
func NewStatsStore(db store.DBTX, logger *slog.Logger) *StatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &StatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure StatsStore implements store.StatsStore interface
var _ store.StatsStore = (*StatsStore)(nil)

// WithTx implements store.StatsStore.WithTx
func (s *StatsStore) WithTx(tx *sql.Tx) store.StatsStore {
	return &StatsStore{db: tx, logger: s.logger}
}

// Upsert implements store.StatsStore.Upsert
// The first session of a date creates the row with session_count 1 and a
// single-entry breakdown; later sessions add minutes, bump the count, and
// fold the subject into the JSONB breakdown, all inside one atomic
// statement against the (user_id, stat_date) unique row.
func (s *StatsStore) Upsert(ctx context.Context, userID uuid.UUID, date time.Time, minutes int, subject string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if minutes < 0 {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, domain.ErrStatsNegative)
	}

	query := `
		INSERT INTO daily_stats (id, user_id, stat_date, total_minutes, session_count,
			subject_breakdown, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 1, jsonb_build_object($5::text, $4::int), now(), now())
		ON CONFLICT (user_id, stat_date) DO UPDATE SET
			total_minutes = daily_stats.total_minutes + EXCLUDED.total_minutes,
			session_count = daily_stats.session_count + 1,
			subject_breakdown = jsonb_set(
				daily_stats.subject_breakdown,
				ARRAY[$5::text],
				to_jsonb(COALESCE((daily_stats.subject_breakdown ->> $5::text)::int, 0) + $4::int),
				true
			),
			updated_at = now()
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		userID,
		domain.DateOf(date),
		minutes,
		subject,
	)
	if err != nil {
		log.Error("failed to upsert daily stats",
			"error", err,
			"user_id", userID,
			"date", domain.DateOf(date).Format("2006-01-02"))
		return MapError(err)
	}

	return nil
}

// GetByDate implements store.StatsStore.GetByDate
func (s *StatsStore) GetByDate(ctx context.Context, userID uuid.UUID, date time.Time) (*domain.DailyStats, error) {
	query := `
		SELECT id, user_id, stat_date, total_minutes, session_count, subject_breakdown,
			created_at, updated_at
		FROM daily_stats
		WHERE user_id = $1 AND stat_date = $2
	`
	stats, err := scanStats(s.db.QueryRowContext(ctx, query, userID, domain.DateOf(date)))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrStatsNotFound
		}
		return nil, MapError(err)
	}
	return stats, nil
}

// GetByDateRange implements store.StatsStore.GetByDateRange
func (s *StatsStore) GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.DailyStats, error) {
	query := `
		SELECT id, user_id, stat_date, total_minutes, session_count, subject_breakdown,
			created_at, updated_at
		FROM daily_stats
		WHERE user_id = $1 AND stat_date BETWEEN $2 AND $3
		ORDER BY stat_date
	`
	rows, err := s.db.QueryContext(ctx, query, userID, domain.DateOf(start), domain.DateOf(end))
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.DailyStats
	for rows.Next() {
		stats, err := scanStats(rows)
		if err != nil {
			return nil, MapError(err)
		}
		records = append(records, stats)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// GetStudyDates implements store.StatsStore.GetStudyDates
func (s *StatsStore) GetStudyDates(ctx context.Context, userID uuid.UUID) ([]time.Time, error) {
	query := `
		SELECT stat_date
		FROM daily_stats
		WHERE user_id = $1 AND total_minutes > 0
		ORDER BY stat_date DESC
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, MapError(err)
		}
		dates = append(dates, domain.DateOf(date))
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return dates, nil
}

// scanStats maps one stats row into a domain.DailyStats, decoding the
// JSONB subject breakdown.
func scanStats(row rowScanner) (*domain.DailyStats, error) {
	var (
		stats     domain.DailyStats
		breakdown []byte
	)

	err := row.Scan(
		&stats.ID,
		&stats.UserID,
		&stats.Date,
		&stats.TotalMinutes,
		&stats.SessionCount,
		&breakdown,
		&stats.CreatedAt,
		&stats.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	stats.Date = domain.DateOf(stats.Date)
	stats.SubjectBreakdown = make(map[string]int)
	if len(breakdown) > 0 {
		if err := json.Unmarshal(breakdown, &stats.SubjectBreakdown); err != nil {
			return nil, fmt.Errorf("failed to decode subject breakdown: %w", err)
		}
	}

	return &stats, nil
}
