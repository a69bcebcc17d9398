package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/veleda/studyflow/internal/domain"
)

// Request and response payloads for the HTTP surface. Validation tags
// are enforced before any service call.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateGroupRequest defines the payload for creating a task group.
type CreateGroupRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// UpdateGroupRequest defines the payload for renaming or reordering a group.
type UpdateGroupRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
}

// TaskPayload carries the client-settable task fields, shared between
// create and update.
type TaskPayload struct {
	GroupID             uuid.UUID  `json:"group_id" validate:"required"`
	Name                string     `json:"name" validate:"required,max=200"`
	WorkMinutesOverride *int       `json:"work_minutes_override,omitempty" validate:"omitempty,gt=0"`
	IsActive            *bool      `json:"is_active,omitempty"`
	ScheduleType        string     `json:"schedule_type" validate:"required,oneof=none repeat deadline specific"`
	RepeatDays          []int      `json:"repeat_days,omitempty" validate:"omitempty,dive,gte=1,lte=7"`
	DeadlineDate        *time.Time `json:"deadline_date,omitempty"`
	SpecificDate        *time.Time `json:"specific_date,omitempty"`
	ReviewCountOverride *int       `json:"review_count_override,omitempty" validate:"omitempty,gte=0"`
	ReviewEnabled       *bool      `json:"review_enabled,omitempty"`
}

// StartSessionRequest defines the payload for starting a study session.
type StartSessionRequest struct {
	TaskID uuid.UUID `json:"task_id" validate:"required"`
	Cycles int       `json:"cycles" validate:"required,gte=1"`
}

// FinishSessionRequest defines the payload for finishing a session.
type FinishSessionRequest struct {
	WorkMinutes  int    `json:"work_minutes" validate:"gte=0"`
	TotalCycles  int    `json:"total_cycles" validate:"gte=1"`
	CurrentCycle int    `json:"current_cycle" validate:"gte=0"`
	Completed    bool   `json:"completed"`
	Interrupted  bool   `json:"interrupted"`
	Notes        string `json:"notes" validate:"max=2000"`
}

// RescheduleReviewRequest defines the payload for moving a review
// reminder to a new date.
type RescheduleReviewRequest struct {
	NewDate time.Time `json:"new_date" validate:"required"`
}

// ReviewCountsResponse carries the per-status reminder totals.
type ReviewCountsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Completed int `json:"completed"`
}

// CalendarCountsResponse maps ISO dates (YYYY-MM-DD) to item counts.
type CalendarCountsResponse struct {
	Counts map[string]int `json:"counts"`
}

// StreaksResponse carries the current and maximum study streaks.
type StreaksResponse struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// WeeklyStatsResponse carries exactly seven day totals ending today.
type WeeklyStatsResponse struct {
	Days []DayTotalPayload `json:"days"`
}

// DayTotalPayload is one day of the weekly window.
type DayTotalPayload struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}

// SettingsPayload mirrors domain.Settings on the wire.
type SettingsPayload struct {
	WorkMinutes           int      `json:"work_minutes" validate:"gte=1"`
	ShortBreakMinutes     int      `json:"short_break_minutes" validate:"gte=0"`
	LongBreakMinutes      int      `json:"long_break_minutes" validate:"gte=0"`
	CyclesBeforeLongBreak int      `json:"cycles_before_long_break" validate:"gte=1"`
	FocusModeEnabled      bool     `json:"focus_mode_enabled"`
	AllowedApps           []string `json:"allowed_apps"`
	ReviewsEnabled        bool     `json:"reviews_enabled"`
	ReviewIntervals       []int    `json:"review_intervals" validate:"required,min=1,dive,gte=1"`
	DefaultReviewCount    int      `json:"default_review_count" validate:"gte=0"`
	NotificationsEnabled  bool     `json:"notifications_enabled"`
}

// ToDomain converts the payload into domain settings.
func (p SettingsPayload) ToDomain() domain.Settings {
	return domain.Settings{
		WorkMinutes:           p.WorkMinutes,
		ShortBreakMinutes:     p.ShortBreakMinutes,
		LongBreakMinutes:      p.LongBreakMinutes,
		CyclesBeforeLongBreak: p.CyclesBeforeLongBreak,
		FocusModeEnabled:      p.FocusModeEnabled,
		AllowedApps:           p.AllowedApps,
		ReviewsEnabled:        p.ReviewsEnabled,
		ReviewIntervals:       p.ReviewIntervals,
		DefaultReviewCount:    p.DefaultReviewCount,
		NotificationsEnabled:  p.NotificationsEnabled,
	}
}

// SettingsFromDomain converts domain settings into the wire payload.
func SettingsFromDomain(s domain.Settings) SettingsPayload {
	return SettingsPayload{
		WorkMinutes:           s.WorkMinutes,
		ShortBreakMinutes:     s.ShortBreakMinutes,
		LongBreakMinutes:      s.LongBreakMinutes,
		CyclesBeforeLongBreak: s.CyclesBeforeLongBreak,
		FocusModeEnabled:      s.FocusModeEnabled,
		AllowedApps:           s.AllowedApps,
		ReviewsEnabled:        s.ReviewsEnabled,
		ReviewIntervals:       s.ReviewIntervals,
		DefaultReviewCount:    s.DefaultReviewCount,
		NotificationsEnabled:  s.NotificationsEnabled,
	}
}
