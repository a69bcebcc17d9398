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

// sessionColumns is the column list shared by every session query.
const sessionColumns = `id, user_id, task_id, started_at, ended_at, work_minutes,
	planned_minutes, cycles_completed, was_interrupted, notes, created_at`

// SessionStore implements the store.SessionStore interface using a
// PostgreSQL database as the storage backend.
type SessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSessionStore creates a new PostgreSQL implementation of the
// SessionStore interface. If logger is nil, a default logger will be used.
func NewSessionStore(db store.DBTX, logger *slog.Logger) *SessionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure SessionStore implements store.SessionStore interface
var _ store.SessionStore = (*SessionStore)(nil)

// WithTx implements store.SessionStore.WithTx
func (s *SessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &SessionStore{db: tx, logger: s.logger}
}

// Create implements store.SessionStore.Create
func (s *SessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO study_sessions (id, user_id, task_id, started_at, ended_at, work_minutes,
			planned_minutes, cycles_completed, was_interrupted, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.UserID,
		session.TaskID,
		session.StartedAt,
		session.EndedAt,
		session.WorkMinutes,
		session.PlannedMinutes,
		session.CyclesCompleted,
		session.WasInterrupted,
		session.Notes,
		session.CreatedAt,
	)
	if err != nil {
		log.Error("failed to create study session",
			"error", err,
			"session_id", session.ID,
			"task_id", session.TaskID)
		return MapError(err)
	}

	return nil
}

// GetByID implements store.SessionStore.GetByID
func (s *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = $1`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if store.IsNotFoundError(MapError(err)) {
			return nil, store.ErrSessionNotFound
		}
		return nil, MapError(err)
	}
	return session, nil
}

// GetByTask implements store.SessionStore.GetByTask
func (s *SessionStore) GetByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE task_id = $1
		ORDER BY started_at DESC`
	return s.querySessions(ctx, query, taskID)
}

// GetByDateRange implements store.SessionStore.GetByDateRange
func (s *SessionStore) GetByDateRange(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.StudySession, error) {
	query := `SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE user_id = $1 AND started_at >= $2 AND started_at < $3
		ORDER BY started_at DESC`
	return s.querySessions(ctx, query, userID, start, end)
}

// Update implements store.SessionStore.Update
func (s *SessionStore) Update(ctx context.Context, session *domain.StudySession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE study_sessions
		SET ended_at = $1, work_minutes = $2, cycles_completed = $3,
			was_interrupted = $4, notes = $5
		WHERE id = $6
	`
	result, err := s.db.ExecContext(ctx, query,
		session.EndedAt,
		session.WorkMinutes,
		session.CyclesCompleted,
		session.WasInterrupted,
		session.Notes,
		session.ID,
	)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrSessionNotFound
	}

	return nil
}

// Delete implements store.SessionStore.Delete
// Review reminders generated from the session cascade-delete via
// ON DELETE CASCADE foreign keys.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = $1`, id)
	if err != nil {
		return MapError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if affected == 0 {
		return store.ErrSessionNotFound
	}

	return nil
}

// querySessions runs a multi-row session query and scans the results.
func (s *SessionStore) querySessions(ctx context.Context, query string, args ...any) ([]*domain.StudySession, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*domain.StudySession
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, MapError(err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return sessions, nil
}

// scanSession maps one session row into a domain.StudySession.
func scanSession(row rowScanner) (*domain.StudySession, error) {
	var (
		session domain.StudySession
		endedAt sql.NullTime
	)

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.TaskID,
		&session.StartedAt,
		&endedAt,
		&session.WorkMinutes,
		&session.PlannedMinutes,
		&session.CyclesCompleted,
		&session.WasInterrupted,
		&session.Notes,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endedAt.Valid {
		t := endedAt.Time
		session.EndedAt = &t
	}

	return &session, nil
}
