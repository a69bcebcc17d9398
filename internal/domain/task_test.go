package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func mondayDate() time.Time {
	// 2025-03-10 is a Monday.
	return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
}

func TestTaskValidateScheduleInvariants(t *testing.T) {
	deadline := mondayDate()

	base := func() *Task {
		return &Task{
			ID:            uuid.New(),
			UserID:        uuid.New(),
			GroupID:       uuid.New(),
			Name:          "linear algebra",
			IsActive:      true,
			ScheduleType:  ScheduleNone,
			ReviewEnabled: true,
		}
	}

	testCases := []struct {
		name    string
		mutate  func(*Task)
		wantErr error
	}{
		{
			name:   "no schedule is valid",
			mutate: func(task *Task) {},
		},
		{
			name: "repeat with weekdays is valid",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleRepeat
				task.RepeatDays = []int{1, 3, 5}
			},
		},
		{
			name: "repeat without weekdays is invalid",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleRepeat
			},
			wantErr: ErrRepeatDaysEmpty,
		},
		{
			name: "weekday out of range is invalid",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleRepeat
				task.RepeatDays = []int{0, 3}
			},
			wantErr: ErrRepeatDayOutOfRange,
		},
		{
			name: "weekday above sunday is invalid",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleRepeat
				task.RepeatDays = []int{8}
			},
			wantErr: ErrRepeatDayOutOfRange,
		},
		{
			name: "duplicate weekday is invalid",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleRepeat
				task.RepeatDays = []int{3, 1, 3}
			},
			wantErr: ErrRepeatDayDuplicate,
		},
		{
			name: "deadline needs a date",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleDeadline
			},
			wantErr: ErrDeadlineDateMissing,
		},
		{
			name: "deadline with date is valid",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleDeadline
				task.DeadlineDate = &deadline
			},
		},
		{
			name: "specific needs a date",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleSpecific
			},
			wantErr: ErrSpecificDateMissing,
		},
		{
			name: "unknown schedule type is invalid",
			mutate: func(task *Task) {
				task.ScheduleType = ScheduleType("weekly")
			},
			wantErr: ErrInvalidScheduleType,
		},
		{
			name: "empty name is invalid",
			mutate: func(task *Task) {
				task.Name = ""
			},
			wantErr: ErrTaskNameEmpty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task := base()
			tc.mutate(task)
			err := task.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
			} else if !errors.Is(err, tc.wantErr) && err != tc.wantErr {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestTaskRepeatsOn(t *testing.T) {
	monday := mondayDate()
	task := &Task{
		ScheduleType: ScheduleRepeat,
		RepeatDays:   []int{1, 3, 5}, // Mon, Wed, Fri
	}

	matches := []bool{true, false, true, false, true, false, false}
	for i, want := range matches {
		day := AddDays(monday, i)
		if got := task.RepeatsOn(day); got != want {
			t.Errorf("Day %s: expected %v, got %v", day.Weekday(), want, got)
		}
	}

	oneOff := &Task{ScheduleType: ScheduleDeadline, DeadlineDate: &monday}
	if oneOff.RepeatsOn(monday) {
		t.Error("Non-repeating task must never match a weekday")
	}
}

func TestTaskOneOffDate(t *testing.T) {
	day := mondayDate()

	deadline := &Task{ScheduleType: ScheduleDeadline, DeadlineDate: &day}
	if got := deadline.OneOffDate(); got == nil || !got.Equal(day) {
		t.Errorf("Expected deadline date, got %v", got)
	}

	specific := &Task{ScheduleType: ScheduleSpecific, SpecificDate: &day}
	if got := specific.OneOffDate(); got == nil || !got.Equal(day) {
		t.Errorf("Expected specific date, got %v", got)
	}

	repeating := &Task{ScheduleType: ScheduleRepeat, RepeatDays: []int{1}}
	if repeating.OneOffDate() != nil {
		t.Error("Repeating task has no one-off date")
	}
}

func TestResolveInt(t *testing.T) {
	override := 50
	if got := ResolveInt(&override, 25); got != 50 {
		t.Errorf("Expected override 50, got %d", got)
	}
	if got := ResolveInt(nil, 25); got != 25 {
		t.Errorf("Expected fallback 25, got %d", got)
	}
}
