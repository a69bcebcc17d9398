package domain

import (
	"time"

	"github.com/google/uuid"
)

// DailyStats-specific validation errors
var (
	// ErrStatsIDEmpty is returned when a stats ID is empty or nil.
	ErrStatsIDEmpty = NewFieldError("id", "stats ID cannot be empty")

	// ErrStatsNegative is returned when a stats counter would go negative.
	ErrStatsNegative = NewFieldError("total_minutes", "stats counters cannot be negative")
)

// DailyStats is the single aggregate record per user per calendar date.
// It is created lazily on the first finished session of a date and from
// then on only updated additively, never replaced wholesale.
type DailyStats struct {
	ID               uuid.UUID      `json:"id"`
	UserID           uuid.UUID      `json:"user_id"`
	Date             time.Time      `json:"date"`
	TotalMinutes     int            `json:"total_minutes"`
	SessionCount     int            `json:"session_count"`
	SubjectBreakdown map[string]int `json:"subject_breakdown"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewDailyStats creates the first stats record for a date from one
// finished session.
func NewDailyStats(userID uuid.UUID, date time.Time, minutes int, subject string) (*DailyStats, error) {
	stats := &DailyStats{
		ID:               uuid.New(),
		UserID:           userID,
		Date:             DateOf(date),
		TotalMinutes:     minutes,
		SessionCount:     1,
		SubjectBreakdown: map[string]int{subject: minutes},
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}

	if err := stats.Validate(); err != nil {
		return nil, err
	}

	return stats, nil
}

// Validate checks if the DailyStats has valid data.
func (s *DailyStats) Validate() error {
	if s.ID == uuid.Nil {
		return ErrStatsIDEmpty
	}

	if s.UserID == uuid.Nil {
		return NewFieldError("user_id", "stats user ID cannot be empty")
	}

	if s.TotalMinutes < 0 || s.SessionCount < 0 {
		return ErrStatsNegative
	}

	return nil
}

// Add accumulates one more finished session into the record.
func (s *DailyStats) Add(minutes int, subject string) {
	s.TotalMinutes += minutes
	s.SessionCount++
	if s.SubjectBreakdown == nil {
		s.SubjectBreakdown = make(map[string]int)
	}
	s.SubjectBreakdown[subject] += minutes
	s.UpdatedAt = time.Now().UTC()
}

// DayMinutes is one entry of a weekly report: a date and the minutes
// studied on it, zero for days without a stats row.
type DayMinutes struct {
	Date    time.Time `json:"date"`
	Minutes int       `json:"minutes"`
}
