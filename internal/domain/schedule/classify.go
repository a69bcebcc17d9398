package schedule

import (
	"time"

	"github.com/veleda/studyflow/internal/domain"
)

// Status is the classification of a review reminder relative to a
// reference date. The three values partition every reminder set: each
// reminder falls into exactly one class for any reference date.
type Status string

// Classification statuses.
const (
	// StatusCompleted marks a completed reminder, regardless of date.
	StatusCompleted Status = "completed"

	// StatusOverdue marks an incomplete reminder scheduled before today.
	StatusOverdue Status = "overdue"

	// StatusPending marks an incomplete reminder scheduled today or later.
	StatusPending Status = "pending"
)

// Classify assigns a reminder to exactly one status for the given
// reference date. Completion wins over date; otherwise the reminder is
// overdue when scheduled strictly before today and pending from today on.
func Classify(review *domain.ReviewTask, today time.Time) Status {
	if review.IsCompleted {
		return StatusCompleted
	}
	if domain.DateOf(review.ScheduledDate).Before(domain.DateOf(today)) {
		return StatusOverdue
	}
	return StatusPending
}

// Partition splits a reminder set into its three classes. The slices are
// pairwise disjoint and jointly cover the input.
func Partition(reviews []*domain.ReviewTask, today time.Time) (pending, overdue, completed []*domain.ReviewTask) {
	for _, r := range reviews {
		switch Classify(r, today) {
		case StatusCompleted:
			completed = append(completed, r)
		case StatusOverdue:
			overdue = append(overdue, r)
		default:
			pending = append(pending, r)
		}
	}
	return pending, overdue, completed
}

// Counts holds the sizes of the classification partition. Because they
// are derived by counting one partition rather than by separate queries,
// Pending+Overdue+Completed always equals Total.
type Counts struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
	Completed int `json:"completed"`
}

// CountByStatus derives the partition counts for a reminder set.
func CountByStatus(reviews []*domain.ReviewTask, today time.Time) Counts {
	pending, overdue, completed := Partition(reviews, today)
	return Counts{
		Total:     len(reviews),
		Pending:   len(pending),
		Overdue:   len(overdue),
		Completed: len(completed),
	}
}
