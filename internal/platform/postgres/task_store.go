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

// taskColumns is the column list shared by every task query.
const taskColumns = `id, user_id, group_id, name, work_minutes_override, is_active,
	schedule_type, repeat_days, deadline_date, specific_date, last_studied_at,
	review_count_override, review_enabled, created_at, updated_at`

// TaskStore implements the store.TaskStore interface using a PostgreSQL
// database as the storage backend. Repeat weekdays are stored as a JSONB
// array so weekday membership can be checked with containment operators.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{db: tx, logger: s.logger}
}

// Create implements store.TaskStore.Create
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	repeatDays, err := json.Marshal(task.RepeatDays)
	if err != nil {
		return store.NewStoreError("task", "create", "failed to encode repeat days", err)
	}

	query := `
		INSERT INTO tasks (id, user_id, group_id, name, work_minutes_override, is_active,
			schedule_type, repeat_days, deadline_date, specific_date, last_studied_at,
			review_count_override, review_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`
	_, err = s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.GroupID,
		task.Name,
		task.WorkMinutesOverride,
		task.IsActive,
		task.ScheduleType,
		repeatDays,
		task.DeadlineDate,
		task.SpecificDate,
		task.LastStudiedAt,
		task.ReviewCountOverride,
		task.ReviewEnabled,
		task.CreatedAt,
		task.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create task", "error", err, "task_id", task.ID)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.TaskStore.GetByID
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}
	return task, nil
}

// GetAllActive implements store.TaskStore.GetAllActive
func (s *TaskStore) GetAllActive(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND is_active
		ORDER BY created_at`
	return s.queryTasks(ctx, query, userID)
}

// GetByGroup implements store.TaskStore.GetByGroup
func (s *TaskStore) GetByGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE group_id = $1
		ORDER BY created_at`
	return s.queryTasks(ctx, query, groupID)
}

// GetScheduledForDate implements store.TaskStore.GetScheduledForDate
// One-off tasks match on their exact date; repeating tasks match when the
// JSONB weekday array contains the date's ISO weekday number.
func (s *TaskStore) GetScheduledForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.Task, error) {
	day := domain.DateOf(date)
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND is_active
		  AND (
			(schedule_type = 'deadline' AND deadline_date = $2)
			OR (schedule_type = 'specific' AND specific_date = $2)
			OR (schedule_type = 'repeat' AND repeat_days @> to_jsonb($3::int))
		  )
		ORDER BY created_at`
	return s.queryTasks(ctx, query, userID, day, domain.ISOWeekday(day))
}

// GetUpcomingDeadlines implements store.TaskStore.GetUpcomingDeadlines
func (s *TaskStore) GetUpcomingDeadlines(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND is_active
		  AND schedule_type = 'deadline'
		  AND deadline_date BETWEEN $2 AND $3
		ORDER BY deadline_date`
	return s.queryTasks(ctx, query, userID, domain.DateOf(start), domain.DateOf(end))
}

// GetOneOffInRange implements store.TaskStore.GetOneOffInRange
func (s *TaskStore) GetOneOffInRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND is_active
		  AND (
			(schedule_type = 'deadline' AND deadline_date BETWEEN $2 AND $3)
			OR (schedule_type = 'specific' AND specific_date BETWEEN $2 AND $3)
		  )
		ORDER BY created_at`
	return s.queryTasks(ctx, query, userID, domain.DateOf(start), domain.DateOf(end))
}

// GetRepeating implements store.TaskStore.GetRepeating
func (s *TaskStore) GetRepeating(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	query := `SELECT ` + taskColumns + `
		FROM tasks
		WHERE user_id = $1 AND is_active AND schedule_type = 'repeat'
		ORDER BY created_at`
	return s.queryTasks(ctx, query, userID)
}

// Update implements store.TaskStore.Update
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	repeatDays, err := json.Marshal(task.RepeatDays)
	if err != nil {
		return store.NewStoreError("task", "update", "failed to encode repeat days", err)
	}

	query := `
		UPDATE tasks
		SET group_id = $1, name = $2, work_minutes_override = $3, is_active = $4,
			schedule_type = $5, repeat_days = $6, deadline_date = $7, specific_date = $8,
			review_count_override = $9, review_enabled = $10, updated_at = now()
		WHERE id = $11
	`
	result, err := s.db.ExecContext(ctx, query,
		task.GroupID,
		task.Name,
		task.WorkMinutesOverride,
		task.IsActive,
		task.ScheduleType,
		repeatDays,
		task.DeadlineDate,
		task.SpecificDate,
		task.ReviewCountOverride,
		task.ReviewEnabled,
		task.ID,
	)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// UpdateLastStudiedAt implements store.TaskStore.UpdateLastStudiedAt
func (s *TaskStore) UpdateLastStudiedAt(ctx context.Context, id uuid.UUID, studiedAt time.Time) error {
	query := `
		UPDATE tasks
		SET last_studied_at = $1, updated_at = now()
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, studiedAt, id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// Delete implements store.TaskStore.Delete
// Sessions and review reminders referencing the task cascade-delete via
// ON DELETE CASCADE foreign keys.
func (s *TaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// queryTasks runs a multi-row task query and scans the results.
func (s *TaskStore) queryTasks(ctx context.Context, query string, args ...any) ([]*domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return tasks, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for shared scan logic.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask maps one task row into a domain.Task, decoding the JSONB
// weekday array and normalizing nullable dates.
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task          domain.Task
		repeatDays    []byte
		deadlineDate  sql.NullTime
		specificDate  sql.NullTime
		lastStudiedAt sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.GroupID,
		&task.Name,
		&task.WorkMinutesOverride,
		&task.IsActive,
		&task.ScheduleType,
		&repeatDays,
		&deadlineDate,
		&specificDate,
		&lastStudiedAt,
		&task.ReviewCountOverride,
		&task.ReviewEnabled,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(repeatDays) > 0 {
		if err := json.Unmarshal(repeatDays, &task.RepeatDays); err != nil {
			return nil, fmt.Errorf("failed to decode repeat days: %w", err)
		}
	}
	if deadlineDate.Valid {
		d := domain.DateOf(deadlineDate.Time)
		task.DeadlineDate = &d
	}
	if specificDate.Valid {
		d := domain.DateOf(specificDate.Time)
		task.SpecificDate = &d
	}
	if lastStudiedAt.Valid {
		t := lastStudiedAt.Time
		task.LastStudiedAt = &t
	}

	return &task, nil
}
