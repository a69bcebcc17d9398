package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/veleda/studyflow/internal/domain"
)

// Generate produces the ordered list of review reminders for a session
// completed on completionDate. Reminder i (0-based) is scheduled
// intervals[i] days after the completion date and carries review number
// i+1, so review numbers form a contiguous 1..len(intervals) sequence.
// An empty interval list produces no reminders.
//
// The function is deterministic apart from the generated row IDs and
// never fails; gating (review feature flags, interruption, premium
// truncation) happens in the caller before intervals reach it.
func Generate(userID, sessionID, taskID uuid.UUID, completionDate time.Time, intervals []int) []*domain.ReviewTask {
	if len(intervals) == 0 {
		return nil
	}

	completionDate = domain.DateOf(completionDate)
	now := time.Now().UTC()

	reviews := make([]*domain.ReviewTask, 0, len(intervals))
	for i, days := range intervals {
		reviews = append(reviews, &domain.ReviewTask{
			ID:            uuid.New(),
			UserID:        userID,
			SessionID:     sessionID,
			TaskID:        taskID,
			ScheduledDate: domain.AddDays(completionDate, days),
			ReviewNumber:  i + 1,
			IsCompleted:   false,
			CreatedAt:     now,
		})
	}

	return reviews
}
