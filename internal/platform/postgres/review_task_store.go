package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/platform/logger"
	"github.com/veleda/studyflow/internal/store"
)

// reviewColumns is the column list shared by every review query.
const reviewColumns = `id, user_id, session_id, task_id, scheduled_date,
	review_number, is_completed, completed_at, created_at`

// ReviewTaskStore implements the store.ReviewTaskStore interface using a
// PostgreSQL database as the storage backend.
type ReviewTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewTaskStore creates a new PostgreSQL implementation of the
// ReviewTaskStore interface. If logger is nil, a default logger will be used.
func NewReviewTaskStore(db store.DBTX, logger *slog.Logger) *ReviewTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_task_store")),
	}
}

// Ensure ReviewTaskStore implements store.ReviewTaskStore interface
var _ store.ReviewTaskStore = (*ReviewTaskStore)(nil)

// WithTx implements store.ReviewTaskStore.WithTx
func (s *ReviewTaskStore) WithTx(tx *sql.Tx) store.ReviewTaskStore {
	return &ReviewTaskStore{db: tx, logger: s.logger}
}

// InsertBatch implements store.ReviewTaskStore.InsertBatch
// Run it through WithTx so the batch commits atomically with the session
// finish that generated it.
func (s *ReviewTaskStore) InsertBatch(ctx context.Context, reviews []*domain.ReviewTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(reviews) == 0 {
		return nil
	}

	query := `
		INSERT INTO review_tasks (id, user_id, session_id, task_id, scheduled_date,
			review_number, is_completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = stmt.Close() }()

	for _, review := range reviews {
		if err := review.Validate(); err != nil {
			return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
		}

		_, err := stmt.ExecContext(ctx,
			review.ID,
			review.UserID,
			review.SessionID,
			review.TaskID,
			domain.DateOf(review.ScheduledDate),
			review.ReviewNumber,
			review.IsCompleted,
			review.CompletedAt,
			review.CreatedAt,
		)
		if err != nil {
			log.Error("failed to insert review reminder",
				"error", err,
				"review_id", review.ID,
				"session_id", review.SessionID)
			return MapError(err)
		}
	}

	return nil
}

// GetByID implements store.ReviewTaskStore.GetByID
func (s *ReviewTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ReviewTask, error) {
	query := `SELECT ` + reviewColumns + ` FROM review_tasks WHERE id = $1`

	review, err := scanReview(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrReviewNotFound
		}
		return nil, MapError(err)
	}
	return review, nil
}

// GetBySession implements store.ReviewTaskStore.GetBySession
func (s *ReviewTaskStore) GetBySession(ctx context.Context, sessionID uuid.UUID) ([]*domain.ReviewTask, error) {
	query := `SELECT ` + reviewColumns + `
		FROM review_tasks
		WHERE session_id = $1
		ORDER BY review_number`
	return s.queryReviews(ctx, query, sessionID)
}

// GetByTask implements store.ReviewTaskStore.GetByTask
func (s *ReviewTaskStore) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.ReviewTask, error) {
	query := `SELECT ` + reviewColumns + `
		FROM review_tasks
		WHERE task_id = $1
		ORDER BY scheduled_date, review_number`
	return s.queryReviews(ctx, query, taskID)
}

// GetByUser implements store.ReviewTaskStore.GetByUser
func (s *ReviewTaskStore) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewTask, error) {
	query := `SELECT ` + reviewColumns + `
		FROM review_tasks
		WHERE user_id = $1
		ORDER BY scheduled_date, review_number`
	return s.queryReviews(ctx, query, userID)
}

// GetPendingForDate implements store.ReviewTaskStore.GetPendingForDate
func (s *ReviewTaskStore) GetPendingForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error) {
	query := `SELECT ` + reviewColumns + `
		FROM review_tasks
		WHERE user_id = $1 AND scheduled_date = $2 AND NOT is_completed
		ORDER BY review_number`
	return s.queryReviews(ctx, query, userID, domain.DateOf(date))
}

// GetAllForDate implements store.ReviewTaskStore.GetAllForDate
func (s *ReviewTaskStore) GetAllForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error) {
	query := `SELECT ` + reviewColumns + `
		FROM review_tasks
		WHERE user_id = $1 AND scheduled_date = $2
		ORDER BY review_number`
	return s.queryReviews(ctx, query, userID, domain.DateOf(date))
}

// GetOverdueAndToday implements store.ReviewTaskStore.GetOverdueAndToday
// The feed is the union of incomplete reminders scheduled before today
// and all of today's reminders regardless of completion.
func (s *ReviewTaskStore) GetOverdueAndToday(ctx context.Context, userID uuid.UUID, today time.Time) ([]*domain.ReviewTask, error) {
	query := `SELECT ` + reviewColumns + `
		FROM review_tasks
		WHERE user_id = $1
		  AND (
			(scheduled_date < $2 AND NOT is_completed)
			OR scheduled_date = $2
		  )
		ORDER BY scheduled_date, review_number`
	return s.queryReviews(ctx, query, userID, domain.DateOf(today))
}

// CountByDateRange implements store.ReviewTaskStore.CountByDateRange
func (s *ReviewTaskStore) CountByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]int, error) {
	query := `
		SELECT scheduled_date, COUNT(*)
		FROM review_tasks
		WHERE user_id = $1 AND scheduled_date BETWEEN $2 AND $3
		GROUP BY scheduled_date
	`
	rows, err := s.db.QueryContext(ctx, query, userID, domain.DateOf(start), domain.DateOf(end))
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[time.Time]int)
	for rows.Next() {
		var (
			date  time.Time
			count int
		)
		if err := rows.Scan(&date, &count); err != nil {
			return nil, MapError(err)
		}
		counts[domain.DateOf(date)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return counts, nil
}

// ListWithTaskInfo implements store.ReviewTaskStore.ListWithTaskInfo
func (s *ReviewTaskStore) ListWithTaskInfo(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewListItem, error) {
	query := `
		SELECT r.id, r.user_id, r.session_id, r.task_id, r.scheduled_date,
			r.review_number, r.is_completed, r.completed_at, r.created_at,
			t.name, g.name
		FROM review_tasks r
		JOIN tasks t ON t.id = r.task_id
		JOIN groups g ON g.id = t.group_id
		WHERE r.user_id = $1
		ORDER BY r.scheduled_date, r.review_number
	`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var items []*domain.ReviewListItem
	for rows.Next() {
		var (
			item        domain.ReviewListItem
			completedAt sql.NullTime
		)
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.SessionID,
			&item.TaskID,
			&item.ScheduledDate,
			&item.ReviewNumber,
			&item.IsCompleted,
			&completedAt,
			&item.CreatedAt,
			&item.TaskName,
			&item.GroupName,
		)
		if err != nil {
			return nil, MapError(err)
		}
		if completedAt.Valid {
			t := completedAt.Time
			item.CompletedAt = &t
		}
		item.ScheduledDate = domain.DateOf(item.ScheduledDate)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return items, nil
}

// MarkCompleted implements store.ReviewTaskStore.MarkCompleted
// Completing an already-completed reminder keeps the original
// completed_at; the WHERE clause makes the second call a no-op.
func (s *ReviewTaskStore) MarkCompleted(ctx context.Context, id uuid.UUID, now time.Time) error {
	query := `
		UPDATE review_tasks
		SET is_completed = TRUE, completed_at = $1
		WHERE id = $2 AND NOT is_completed
	`
	result, err := s.db.ExecContext(ctx, query, now, id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		// Either missing or already completed; only the former is an error.
		return s.ensureExists(ctx, id)
	}

	return nil
}

// MarkIncomplete implements store.ReviewTaskStore.MarkIncomplete
func (s *ReviewTaskStore) MarkIncomplete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE review_tasks
		SET is_completed = FALSE, completed_at = NULL
		WHERE id = $1
	`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrReviewNotFound
	}

	return nil
}

// Reschedule implements store.ReviewTaskStore.Reschedule
// Only the scheduled date changes; review number and completion state
// stay untouched.
func (s *ReviewTaskStore) Reschedule(ctx context.Context, id uuid.UUID, newDate time.Time) error {
	query := `
		UPDATE review_tasks
		SET scheduled_date = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, domain.DateOf(newDate), id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrReviewNotFound
	}

	return nil
}

// ensureExists resolves a zero-row update into either "not found" or the
// benign already-in-target-state case.
func (s *ReviewTaskStore) ensureExists(ctx context.Context, id uuid.UUID) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM review_tasks WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return MapError(err)
	}
	if !exists {
		return store.ErrReviewNotFound
	}
	return nil
}

// queryReviews runs a multi-row review query and scans the results.
func (s *ReviewTaskStore) queryReviews(ctx context.Context, query string, args ...any) ([]*domain.ReviewTask, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var reviews []*domain.ReviewTask
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, MapError(err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return reviews, nil
}

// scanReview maps one review row into a domain.ReviewTask.
func scanReview(row rowScanner) (*domain.ReviewTask, error) {
	var (
		review      domain.ReviewTask
		completedAt sql.NullTime
	)

	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.SessionID,
		&review.TaskID,
		&review.ScheduledDate,
		&review.ReviewNumber,
		&review.IsCompleted,
		&completedAt,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		review.CompletedAt = &t
	}
	review.ScheduledDate = domain.DateOf(review.ScheduledDate)

	return &review, nil
}
