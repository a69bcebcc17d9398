package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/events"
	"github.com/veleda/studyflow/internal/mocks"
	"github.com/veleda/studyflow/internal/store"
)

type sessionFixture struct {
	svc      *SessionService
	sessions *mocks.SessionStore
	tasks    *mocks.TaskStore
	groups   *mocks.GroupStore
	users    *mocks.UserStore
	stats    *mocks.StatsStore
	reviews  *mocks.ReviewTaskStore
	settings *mocks.SettingsStore
	events   *mocks.Publisher

	userID  uuid.UUID
	groupID uuid.UUID
	task    *domain.Task
	now     time.Time
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		sessions: &mocks.SessionStore{},
		tasks:    &mocks.TaskStore{},
		groups:   &mocks.GroupStore{},
		users:    &mocks.UserStore{},
		stats:    &mocks.StatsStore{},
		reviews:  &mocks.ReviewTaskStore{},
		settings: &mocks.SettingsStore{},
		events:   &mocks.Publisher{},
		userID:   uuid.New(),
		groupID:  uuid.New(),
		now:      time.Date(2025, time.March, 10, 14, 0, 0, 0, time.UTC),
	}

	task, err := domain.NewTask(f.userID, f.groupID, "calculus problem set")
	require.NoError(t, err)
	f.task = task

	f.tasks.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
		if id == f.task.ID {
			return f.task, nil
		}
		return nil, store.ErrTaskNotFound
	}
	f.groups.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
		return &domain.Group{ID: f.groupID, UserID: f.userID, Name: "Math"}, nil
	}
	f.users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: f.userID, IsPremium: true}, nil
	}

	settingsSvc := NewSettingsService(f.settings, nil)
	f.svc = NewSessionService(nil, f.sessions, f.tasks, f.groups, f.users, f.stats, f.reviews, settingsSvc, f.events, nil)
	f.svc.now = func() time.Time { return f.now }
	f.svc.runTx = func(ctx context.Context, fn store.TxFn) error {
		return fn(ctx, (*sql.Tx)(nil))
	}

	return f
}

func TestSessionStart(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	var created *domain.StudySession
	f.sessions.CreateFn = func(ctx context.Context, session *domain.StudySession) error {
		created = session
		return nil
	}

	session, err := f.svc.Start(context.Background(), f.userID, f.task.ID, 4)
	require.NoError(t, err)
	require.NotNil(t, created)

	// Default work minutes (25) times four cycles.
	assert.Equal(t, 100, session.PlannedMinutes)
	assert.Equal(t, f.now, session.StartedAt)
	assert.Nil(t, session.EndedAt)

	published := f.events.Published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EntitySession, published[0].Entity)
	assert.Equal(t, events.ChangeCreated, published[0].Change)
}

func TestSessionStartUsesTaskOverride(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	override := 50
	f.task.WorkMinutesOverride = &override

	session, err := f.svc.Start(context.Background(), f.userID, f.task.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 100, session.PlannedMinutes)
}

func TestSessionStartRejectsZeroCycles(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	_, err := f.svc.Start(context.Background(), f.userID, f.task.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidCycles)
}

func TestSessionStartRejectsForeignTask(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	f.task.UserID = uuid.New()

	_, err := f.svc.Start(context.Background(), f.userID, f.task.ID, 1)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func (f *sessionFixture) storedSession() *domain.StudySession {
	session := &domain.StudySession{
		ID:             uuid.New(),
		UserID:         f.userID,
		TaskID:         f.task.ID,
		StartedAt:      f.now.Add(-50 * time.Minute),
		PlannedMinutes: 50,
		CreatedAt:      f.now.Add(-50 * time.Minute),
	}
	f.sessions.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
		if id == session.ID {
			return session, nil
		}
		return nil, store.ErrSessionNotFound
	}
	return session
}

func TestSessionFinishAppliesAllEffects(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	stored := f.storedSession()

	var updated *domain.StudySession
	f.sessions.UpdateFn = func(ctx context.Context, session *domain.StudySession) error {
		updated = session
		return nil
	}

	var lastStudied time.Time
	f.tasks.UpdateLastStudiedAtFn = func(ctx context.Context, id uuid.UUID, studiedAt time.Time) error {
		lastStudied = studiedAt
		return nil
	}

	var statSubject string
	var statMinutes int
	var statDate time.Time
	f.stats.UpsertFn = func(ctx context.Context, userID uuid.UUID, date time.Time, minutes int, subject string) error {
		statDate, statMinutes, statSubject = date, minutes, subject
		return nil
	}

	var inserted []*domain.ReviewTask
	f.reviews.InsertBatchFn = func(ctx context.Context, reviews []*domain.ReviewTask) error {
		inserted = reviews
		return nil
	}

	session, err := f.svc.Finish(context.Background(), f.userID, stored.ID, FinishInput{
		WorkMinutes:  45,
		TotalCycles:  2,
		CurrentCycle: 2,
		Completed:    true,
	})
	require.NoError(t, err)

	require.NotNil(t, updated)
	require.NotNil(t, session.EndedAt)
	assert.Equal(t, f.now, *session.EndedAt)
	assert.Equal(t, 2, session.CyclesCompleted)

	assert.Equal(t, f.now, lastStudied)
	assert.Equal(t, domain.DateOf(f.now), statDate)
	assert.Equal(t, 45, statMinutes)
	assert.Equal(t, "Math", statSubject)

	// Premium user, full default interval ladder of six.
	require.Len(t, inserted, 6)
	assert.Equal(t, domain.AddDays(domain.DateOf(f.now), 1), inserted[0].ScheduledDate)
	assert.Equal(t, 1, inserted[0].ReviewNumber)
	assert.Equal(t, stored.ID, inserted[0].SessionID)

	entities := make(map[events.Entity]bool)
	for _, e := range f.events.Published() {
		entities[e.Entity] = true
	}
	assert.True(t, entities[events.EntitySession])
	assert.True(t, entities[events.EntityStats])
	assert.True(t, entities[events.EntityReview])
}

func TestSessionFinishFreeTierTruncatesIntervals(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	stored := f.storedSession()
	f.users.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
		return &domain.User{ID: f.userID}, nil
	}

	var inserted []*domain.ReviewTask
	f.reviews.InsertBatchFn = func(ctx context.Context, reviews []*domain.ReviewTask) error {
		inserted = reviews
		return nil
	}

	_, err := f.svc.Finish(context.Background(), f.userID, stored.ID, FinishInput{
		WorkMinutes: 25, TotalCycles: 1, CurrentCycle: 1, Completed: true,
	})
	require.NoError(t, err)
	require.Len(t, inserted, 2)
	assert.Equal(t, domain.AddDays(domain.DateOf(f.now), 1), inserted[0].ScheduledDate)
	assert.Equal(t, domain.AddDays(domain.DateOf(f.now), 3), inserted[1].ScheduledDate)
}

func TestSessionFinishRespectsReviewCountOverride(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	stored := f.storedSession()
	count := 3
	f.task.ReviewCountOverride = &count

	var inserted []*domain.ReviewTask
	f.reviews.InsertBatchFn = func(ctx context.Context, reviews []*domain.ReviewTask) error {
		inserted = reviews
		return nil
	}

	_, err := f.svc.Finish(context.Background(), f.userID, stored.ID, FinishInput{
		WorkMinutes: 25, TotalCycles: 1, CurrentCycle: 1, Completed: true,
	})
	require.NoError(t, err)
	assert.Len(t, inserted, 3)
}

func TestSessionFinishInterruptedSkipsReviews(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	stored := f.storedSession()

	f.reviews.InsertBatchFn = func(ctx context.Context, reviews []*domain.ReviewTask) error {
		t.Fatal("no reviews expected for an interrupted session")
		return nil
	}

	session, err := f.svc.Finish(context.Background(), f.userID, stored.ID, FinishInput{
		WorkMinutes: 10, TotalCycles: 2, CurrentCycle: 1, Interrupted: true,
	})
	require.NoError(t, err)
	// Partial run keeps the cycle the user reached.
	assert.Equal(t, 1, session.CyclesCompleted)
	assert.True(t, session.WasInterrupted)
}

func TestSessionFinishDisabledReviewsSkipsGeneration(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	stored := f.storedSession()
	f.settings.Values = map[uuid.UUID]map[string]string{
		f.userID: {"reviews_enabled": "false"},
	}

	f.reviews.InsertBatchFn = func(ctx context.Context, reviews []*domain.ReviewTask) error {
		t.Fatal("no reviews expected when reviews are disabled")
		return nil
	}

	_, err := f.svc.Finish(context.Background(), f.userID, stored.ID, FinishInput{
		WorkMinutes: 25, TotalCycles: 1, CurrentCycle: 1, Completed: true,
	})
	require.NoError(t, err)
}

func TestSessionFinishTwiceRejected(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	stored := f.storedSession()
	ended := f.now.Add(-10 * time.Minute)
	stored.EndedAt = &ended

	_, err := f.svc.Finish(context.Background(), f.userID, stored.ID, FinishInput{
		WorkMinutes: 25, TotalCycles: 1, CurrentCycle: 1, Completed: true,
	})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyFinished)
}

func TestSessionFinishCustomIntervalsFromSettings(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)
	stored := f.storedSession()

	intervals, err := json.Marshal([]int{2, 5})
	require.NoError(t, err)
	f.settings.Values = map[uuid.UUID]map[string]string{
		f.userID: {"review_intervals": string(intervals)},
	}

	var inserted []*domain.ReviewTask
	f.reviews.InsertBatchFn = func(ctx context.Context, reviews []*domain.ReviewTask) error {
		inserted = reviews
		return nil
	}

	_, err = f.svc.Finish(context.Background(), f.userID, stored.ID, FinishInput{
		WorkMinutes: 25, TotalCycles: 1, CurrentCycle: 1, Completed: true,
	})
	require.NoError(t, err)
	require.Len(t, inserted, 2)
	assert.Equal(t, domain.AddDays(domain.DateOf(f.now), 2), inserted[0].ScheduledDate)
	assert.Equal(t, domain.AddDays(domain.DateOf(f.now), 5), inserted[1].ScheduledDate)
}

func TestSessionFinishSameDayDifferentSubjectsAccumulate(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	// Second task in another group so the two sessions carry different
	// subjects.
	historyGroupID := uuid.New()
	historyTask, err := domain.NewTask(f.userID, historyGroupID, "french revolution notes")
	require.NoError(t, err)

	mathTask := f.task
	f.tasks.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
		switch id {
		case mathTask.ID:
			return mathTask, nil
		case historyTask.ID:
			return historyTask, nil
		}
		return nil, store.ErrTaskNotFound
	}
	f.groups.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
		if id == historyGroupID {
			return &domain.Group{ID: historyGroupID, UserID: f.userID, Name: "History"}, nil
		}
		return &domain.Group{ID: f.groupID, UserID: f.userID, Name: "Math"}, nil
	}

	first := f.storedSession()
	second := &domain.StudySession{
		ID:             uuid.New(),
		UserID:         f.userID,
		TaskID:         historyTask.ID,
		StartedAt:      f.now.Add(-25 * time.Minute),
		PlannedMinutes: 25,
		CreatedAt:      f.now.Add(-25 * time.Minute),
	}
	f.sessions.GetByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.StudySession, error) {
		switch id {
		case first.ID:
			return first, nil
		case second.ID:
			return second, nil
		}
		return nil, store.ErrSessionNotFound
	}

	// Reimplements the store's additive upsert: per-date totals,
	// session count, and subject breakdown all accumulate.
	byDate := make(map[time.Time]*domain.DailyStats)
	f.stats.UpsertFn = func(ctx context.Context, userID uuid.UUID, date time.Time, minutes int, subject string) error {
		date = domain.DateOf(date)
		record, ok := byDate[date]
		if !ok {
			record = &domain.DailyStats{
				UserID:           userID,
				Date:             date,
				SubjectBreakdown: map[string]int{},
			}
			byDate[date] = record
		}
		record.TotalMinutes += minutes
		record.SessionCount++
		record.SubjectBreakdown[subject] += minutes
		return nil
	}

	_, err = f.svc.Finish(context.Background(), f.userID, first.ID, FinishInput{
		WorkMinutes: 45, TotalCycles: 2, CurrentCycle: 2, Completed: true,
	})
	require.NoError(t, err)
	_, err = f.svc.Finish(context.Background(), f.userID, second.ID, FinishInput{
		WorkMinutes: 25, TotalCycles: 1, CurrentCycle: 1, Completed: true,
	})
	require.NoError(t, err)

	record := byDate[domain.DateOf(f.now)]
	require.NotNil(t, record)
	assert.Equal(t, 2, record.SessionCount)
	assert.Equal(t, 70, record.TotalMinutes)
	assert.Equal(t, map[string]int{"Math": 45, "History": 25}, record.SubjectBreakdown)
}

func TestSessionHistoryRejectsInvertedRange(t *testing.T) {
	t.Parallel()

	f := newSessionFixture(t)

	_, err := f.svc.History(context.Background(), f.userID, f.now, f.now.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}
