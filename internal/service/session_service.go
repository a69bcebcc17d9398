package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/domain/schedule"
	"github.com/veleda/studyflow/internal/events"
	"github.com/veleda/studyflow/internal/platform/logger"
	"github.com/veleda/studyflow/internal/store"
)

// FinishInput carries the caller-reported outcome of a session.
type FinishInput struct {
	// WorkMinutes is the actual focused time, which can differ from the
	// planned time when the user stops early or runs over.
	WorkMinutes int

	// TotalCycles is the number of work cycles the session was started
	// with; CurrentCycle is how far the user got.
	TotalCycles  int
	CurrentCycle int

	// Completed reports whether every planned cycle ran to the end.
	Completed bool

	// Interrupted marks a session the user abandoned. Interrupted
	// sessions still count toward statistics but never generate
	// review reminders.
	Interrupted bool

	Notes string
}

// SessionService owns the study session lifecycle. Start records a
// running session; Finish closes it and, in a single transaction,
// bumps the task's last-studied timestamp, accumulates the day's
// statistics, and schedules the spaced review reminders.
type SessionService struct {
	sessions store.SessionStore
	tasks    store.TaskStore
	groups   store.GroupStore
	users    store.UserStore
	stats    store.StatsStore
	reviews  store.ReviewTaskStore
	settings *SettingsService
	events   events.Publisher
	logger   *slog.Logger
	now      func() time.Time
	runTx    func(ctx context.Context, fn store.TxFn) error
}

// NewSessionService creates a SessionService wired to the given stores.
// If logger is nil, a default logger will be used.
func NewSessionService(
	db *sql.DB,
	sessions store.SessionStore,
	tasks store.TaskStore,
	groups store.GroupStore,
	users store.UserStore,
	stats store.StatsStore,
	reviews store.ReviewTaskStore,
	settings *SettingsService,
	publisher events.Publisher,
	logger *slog.Logger,
) *SessionService {
	if sessions == nil {
		panic("session store cannot be nil")
	}
	if tasks == nil {
		panic("task store cannot be nil")
	}
	if groups == nil {
		panic("group store cannot be nil")
	}
	if users == nil {
		panic("user store cannot be nil")
	}
	if stats == nil {
		panic("stats store cannot be nil")
	}
	if reviews == nil {
		panic("review store cannot be nil")
	}
	if settings == nil {
		panic("settings service cannot be nil")
	}
	if publisher == nil {
		panic("event publisher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionService{
		sessions: sessions,
		tasks:    tasks,
		groups:   groups,
		users:    users,
		stats:    stats,
		reviews:  reviews,
		settings: settings,
		events:   publisher,
		logger:   logger.With(slog.String("component", "session_service")),
		now:      func() time.Time { return time.Now().UTC() },
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// Start begins a session against one of the user's tasks. The planned
// duration is the task's work-minutes override (or the user's default)
// multiplied by the requested cycle count.
func (s *SessionService) Start(ctx context.Context, userID, taskID uuid.UUID, cycles int) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if cycles < 1 {
		return nil, ErrInvalidCycles
	}

	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings: %w", err)
	}

	workMinutes := domain.ResolveInt(task.WorkMinutesOverride, settings.WorkMinutes)
	session, err := domain.NewStudySession(userID, taskID, s.now(), workMinutes*cycles)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	log.Debug("session started",
		"session_id", session.ID,
		"task_id", taskID,
		"planned_minutes", session.PlannedMinutes)
	s.events.Publish(events.NewEvent(userID, events.EntitySession, events.ChangeCreated, session.ID))

	return session, nil
}

// Finish closes a running session and applies every side effect of the
// finish in one transaction: the session row, the task's last-studied
// timestamp, the day's statistics, and the generated review reminders.
// A second Finish on the same session fails with
// domain.ErrSessionAlreadyFinished.
func (s *SessionService) Finish(ctx context.Context, userID, sessionID uuid.UUID, input FinishInput) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.now()

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session.UserID != userID {
		return nil, ErrNotOwned
	}

	task, err := s.ownedTask(ctx, userID, session.TaskID)
	if err != nil {
		return nil, err
	}

	cyclesCompleted := input.CurrentCycle
	if input.Completed {
		cyclesCompleted = input.TotalCycles
	}
	if err := session.Finish(now, input.WorkMinutes, cyclesCompleted, input.Interrupted, input.Notes); err != nil {
		return nil, err
	}

	reviews, err := s.planReviews(ctx, userID, session, task, now)
	if err != nil {
		return nil, err
	}

	subject, err := s.subjectName(ctx, task)
	if err != nil {
		return nil, err
	}

	err = s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.sessions.WithTx(tx).Update(ctx, session); err != nil {
			return fmt.Errorf("failed to update session: %w", err)
		}
		if err := s.tasks.WithTx(tx).UpdateLastStudiedAt(ctx, task.ID, now); err != nil {
			return fmt.Errorf("failed to update task last studied: %w", err)
		}
		if err := s.stats.WithTx(tx).Upsert(ctx, userID, domain.DateOf(now), input.WorkMinutes, subject); err != nil {
			return fmt.Errorf("failed to update daily stats: %w", err)
		}
		if len(reviews) > 0 {
			if err := s.reviews.WithTx(tx).InsertBatch(ctx, reviews); err != nil {
				return fmt.Errorf("failed to insert review reminders: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("session finished",
		"session_id", session.ID,
		"task_id", task.ID,
		"work_minutes", input.WorkMinutes,
		"reviews_scheduled", len(reviews),
		"interrupted", input.Interrupted)

	s.events.Publish(events.NewEvent(userID, events.EntitySession, events.ChangeUpdated, session.ID))
	s.events.Publish(events.NewEvent(userID, events.EntityStats, events.ChangeUpdated, uuid.Nil))
	if len(reviews) > 0 {
		s.events.Publish(events.NewEvent(userID, events.EntityReview, events.ChangeCreated, session.ID))
	}

	return session, nil
}

// GetByID returns one of the user's sessions.
func (s *SessionService) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*domain.StudySession, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrNotOwned
	}
	return session, nil
}

// History returns the user's sessions started inside [start, end],
// most recent first.
func (s *SessionService) History(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]*domain.StudySession, error) {
	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	return s.sessions.GetByDateRange(ctx, userID, start, end)
}

// planReviews generates the reminder drafts for a finished session, or
// nil when review scheduling is off for any reason: the user disabled
// reviews globally, the task opted out, the session was interrupted, or
// the effective interval list is empty.
func (s *SessionService) planReviews(ctx context.Context, userID uuid.UUID, session *domain.StudySession, task *domain.Task, now time.Time) ([]*domain.ReviewTask, error) {
	if session.WasInterrupted || !task.ReviewEnabled {
		return nil, nil
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings: %w", err)
	}
	if !settings.ReviewsEnabled {
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	intervals := schedule.EffectiveIntervals(user.HasPremiumAccess(now), settings.ReviewIntervals)
	intervals = schedule.TruncateToCount(intervals, domain.ResolveInt(task.ReviewCountOverride, settings.DefaultReviewCount))

	return schedule.Generate(userID, session.ID, task.ID, now, intervals), nil
}

// subjectName resolves the group name a session's minutes are
// attributed to in the daily breakdown.
func (s *SessionService) subjectName(ctx context.Context, task *domain.Task) (string, error) {
	group, err := s.groups.GetByID(ctx, task.GroupID)
	if err != nil {
		if store.IsNotFoundError(err) {
			// The group was deleted between start and finish; keep the
			// minutes rather than fail the whole finish.
			return "", nil
		}
		return "", fmt.Errorf("failed to get group: %w", err)
	}
	return group.Name, nil
}

func (s *SessionService) ownedTask(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	if task.UserID != userID {
		return nil, ErrNotOwned
	}
	return task, nil
}
