package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleType determines which scheduling fields of a Task are consulted.
type ScheduleType string

// Recognized schedule types.
const (
	// ScheduleNone means the task has no schedule; all scheduling fields
	// are ignored.
	ScheduleNone ScheduleType = "none"

	// ScheduleRepeat means the task recurs on the weekdays in RepeatDays.
	ScheduleRepeat ScheduleType = "repeat"

	// ScheduleDeadline means the task is due once, on DeadlineDate.
	ScheduleDeadline ScheduleType = "deadline"

	// ScheduleSpecific means the task happens once, on SpecificDate.
	ScheduleSpecific ScheduleType = "specific"
)

// Task-specific validation errors
var (
	// ErrTaskIDEmpty is returned when a task ID is empty or nil.
	ErrTaskIDEmpty = NewFieldError("id", "task ID cannot be empty")

	// ErrTaskNameEmpty is returned when a task's name is empty.
	ErrTaskNameEmpty = NewFieldError("name", "task name cannot be empty")

	// ErrRepeatDaysEmpty is returned when a repeating task has no weekdays.
	ErrRepeatDaysEmpty = NewFieldError("repeat_days", "repeating task needs at least one weekday")

	// ErrRepeatDayOutOfRange is returned when a weekday number is outside 1..7.
	ErrRepeatDayOutOfRange = NewFieldError("repeat_days", "weekday numbers must be between 1 (Monday) and 7 (Sunday)")

	// ErrRepeatDayDuplicate is returned when a weekday appears more than once.
	ErrRepeatDayDuplicate = NewFieldError("repeat_days", "weekday numbers must not repeat")

	// ErrDeadlineDateMissing is returned when a deadline task has no date.
	ErrDeadlineDateMissing = NewFieldError("deadline_date", "deadline task needs a deadline date")

	// ErrSpecificDateMissing is returned when a specific-date task has no date.
	ErrSpecificDateMissing = NewFieldError("specific_date", "specific task needs a date")
)

// Task represents a study item owned by a group. Exactly one scheduling
// dimension is meaningful per ScheduleType: RepeatDays for repeat,
// DeadlineDate for deadline, SpecificDate for specific; none for none.
//
// WorkMinutesOverride and ReviewCountOverride are nullable per-task
// overrides that fall back to the global settings when nil.
type Task struct {
	ID                  uuid.UUID    `json:"id"`
	UserID              uuid.UUID    `json:"user_id"`
	GroupID             uuid.UUID    `json:"group_id"`
	Name                string       `json:"name"`
	WorkMinutesOverride *int         `json:"work_minutes_override,omitempty"`
	IsActive            bool         `json:"is_active"`
	ScheduleType        ScheduleType `json:"schedule_type"`
	RepeatDays          []int        `json:"repeat_days,omitempty"`
	DeadlineDate        *time.Time   `json:"deadline_date,omitempty"`
	SpecificDate        *time.Time   `json:"specific_date,omitempty"`
	LastStudiedAt       *time.Time   `json:"last_studied_at,omitempty"`
	ReviewCountOverride *int         `json:"review_count_override,omitempty"`
	ReviewEnabled       bool         `json:"review_enabled"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

// NewTask creates an active Task with reviews enabled and no schedule.
// Scheduling fields are set by the caller before Validate/insert.
func NewTask(userID, groupID uuid.UUID, name string) (*Task, error) {
	task := &Task{
		ID:            uuid.New(),
		UserID:        userID,
		GroupID:       groupID,
		Name:          name,
		IsActive:      true,
		ScheduleType:  ScheduleNone,
		ReviewEnabled: true,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks the Task invariants, including the schedule-type rules.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTaskIDEmpty
	}

	if t.UserID == uuid.Nil {
		return NewFieldError("user_id", "task user ID cannot be empty")
	}

	if t.GroupID == uuid.Nil {
		return NewFieldError("group_id", "task group ID cannot be empty")
	}

	if t.Name == "" {
		return ErrTaskNameEmpty
	}

	switch t.ScheduleType {
	case ScheduleNone:
		// No scheduling fields are consulted.
	case ScheduleRepeat:
		if len(t.RepeatDays) == 0 {
			return ErrRepeatDaysEmpty
		}
		var seen [8]bool
		for _, d := range t.RepeatDays {
			if d < 1 || d > 7 {
				return ErrRepeatDayOutOfRange
			}
			if seen[d] {
				return ErrRepeatDayDuplicate
			}
			seen[d] = true
		}
	case ScheduleDeadline:
		if t.DeadlineDate == nil {
			return ErrDeadlineDateMissing
		}
	case ScheduleSpecific:
		if t.SpecificDate == nil {
			return ErrSpecificDateMissing
		}
	default:
		return ErrInvalidScheduleType
	}

	return nil
}

// RepeatsOn reports whether a repeating task recurs on the given date's
// weekday. Non-repeating tasks never match.
func (t *Task) RepeatsOn(date time.Time) bool {
	if t.ScheduleType != ScheduleRepeat {
		return false
	}
	wd := ISOWeekday(date)
	for _, d := range t.RepeatDays {
		if d == wd {
			return true
		}
	}
	return false
}

// OneOffDate returns the single scheduled date of a deadline or specific
// task, or nil for other schedule types.
func (t *Task) OneOffDate() *time.Time {
	switch t.ScheduleType {
	case ScheduleDeadline:
		return t.DeadlineDate
	case ScheduleSpecific:
		return t.SpecificDate
	default:
		return nil
	}
}

// ResolveInt returns the override value if present, otherwise the fallback.
// It is the single override-resolution rule applied for work-duration and
// review-count overrides.
func ResolveInt(override *int, fallback int) int {
	if override != nil {
		return *override
	}
	return fallback
}
