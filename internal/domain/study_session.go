package domain

import (
	"time"

	"github.com/google/uuid"
)

// StudySession-specific validation errors
var (
	// ErrSessionIDEmpty is returned when a session ID is empty or nil.
	ErrSessionIDEmpty = NewFieldError("id", "session ID cannot be empty")

	// ErrSessionTaskEmpty is returned when a session has no task reference.
	ErrSessionTaskEmpty = NewFieldError("task_id", "session task ID cannot be empty")

	// ErrSessionAlreadyFinished is returned when Finish is called on a
	// session whose EndedAt is already set. Sessions are terminal once
	// finished and are never reopened.
	ErrSessionAlreadyFinished = NewFieldError("ended_at", "session is already finished")

	// ErrSessionNegativeMinutes is returned for negative duration input.
	ErrSessionNegativeMinutes = NewFieldError("work_minutes", "work minutes cannot be negative")
)

// StudySession records one run of the work/break timer against a task.
// It is created when the timer starts and mutated exactly once when it
// finishes; EndedAt is nil until then.
type StudySession struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	TaskID          uuid.UUID  `json:"task_id"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	WorkMinutes     int        `json:"work_minutes"`
	PlannedMinutes  int        `json:"planned_minutes"`
	CyclesCompleted int        `json:"cycles_completed"`
	WasInterrupted  bool       `json:"was_interrupted"`
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewStudySession creates a running session for the given task with the
// planned duration already computed by the caller.
func NewStudySession(userID, taskID uuid.UUID, startedAt time.Time, plannedMinutes int) (*StudySession, error) {
	session := &StudySession{
		ID:             uuid.New(),
		UserID:         userID,
		TaskID:         taskID,
		StartedAt:      startedAt,
		PlannedMinutes: plannedMinutes,
		CreatedAt:      time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the StudySession has valid data.
func (s *StudySession) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.UserID == uuid.Nil {
		return NewFieldError("user_id", "session user ID cannot be empty")
	}

	if s.TaskID == uuid.Nil {
		return ErrSessionTaskEmpty
	}

	if s.WorkMinutes < 0 || s.PlannedMinutes < 0 {
		return ErrSessionNegativeMinutes
	}

	return nil
}

// IsFinished reports whether the session has ended.
func (s *StudySession) IsFinished() bool {
	return s.EndedAt != nil
}

// Finish marks the session as ended with the actual work done. A finished
// session is terminal; a second call returns ErrSessionAlreadyFinished.
func (s *StudySession) Finish(endedAt time.Time, workMinutes, cyclesCompleted int, interrupted bool, notes string) error {
	if s.IsFinished() {
		return ErrSessionAlreadyFinished
	}

	if workMinutes < 0 {
		return ErrSessionNegativeMinutes
	}

	s.EndedAt = &endedAt
	s.WorkMinutes = workMinutes
	s.CyclesCompleted = cyclesCompleted
	s.WasInterrupted = interrupted
	s.Notes = notes
	return nil
}
