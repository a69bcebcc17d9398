package service

import (
	"context"
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

// ReviewService serves the review reminder surface: the daily work
// feed, list views, status counts, and the complete/incomplete/
// reschedule transitions.
type ReviewService struct {
	reviews store.ReviewTaskStore
	events  events.Publisher
	logger  *slog.Logger
	now     func() time.Time
}

// NewReviewService creates a ReviewService.
// If logger is nil, a default logger will be used.
func NewReviewService(reviews store.ReviewTaskStore, publisher events.Publisher, logger *slog.Logger) *ReviewService {
	if reviews == nil {
		panic("review store cannot be nil")
	}
	if publisher == nil {
		panic("event publisher cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewService{
		reviews: reviews,
		events:  publisher,
		logger:  logger.With(slog.String("component", "review_service")),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Counts classifies every reminder of the user against today and
// returns the per-status totals. The counts are derived from one
// fetched set, so pending + overdue + completed always equals total.
func (s *ReviewService) Counts(ctx context.Context, userID uuid.UUID) (schedule.Counts, error) {
	reviews, err := s.reviews.GetByUser(ctx, userID)
	if err != nil {
		return schedule.Counts{}, fmt.Errorf("failed to get reviews: %w", err)
	}
	return schedule.CountByStatus(reviews, s.now()), nil
}

// Feed returns today's work queue: overdue incomplete reminders plus
// everything scheduled today.
func (s *ReviewService) Feed(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewTask, error) {
	return s.reviews.GetOverdueAndToday(ctx, userID, s.now())
}

// List returns every reminder of the user with task and group names
// attached, ordered by scheduled date.
func (s *ReviewService) List(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewListItem, error) {
	return s.reviews.ListWithTaskInfo(ctx, userID)
}

// ForDate returns the reminders scheduled on one calendar date.
func (s *ReviewService) ForDate(ctx context.Context, userID uuid.UUID, date time.Time) ([]*domain.ReviewTask, error) {
	return s.reviews.GetAllForDate(ctx, userID, date)
}

// Complete marks a reminder done. Completing an already-completed
// reminder succeeds without touching the original completion time.
func (s *ReviewService) Complete(ctx context.Context, userID, reviewID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.owned(ctx, userID, reviewID); err != nil {
		return err
	}
	if err := s.reviews.MarkCompleted(ctx, reviewID, s.now()); err != nil {
		if store.IsNotFoundError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to complete review: %w", err)
	}

	log.Debug("review completed", "review_id", reviewID)
	s.events.Publish(events.NewEvent(userID, events.EntityReview, events.ChangeUpdated, reviewID))
	return nil
}

// Incomplete reverts a reminder to not done, clearing its completion
// time.
func (s *ReviewService) Incomplete(ctx context.Context, userID, reviewID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.owned(ctx, userID, reviewID); err != nil {
		return err
	}
	if err := s.reviews.MarkIncomplete(ctx, reviewID); err != nil {
		if store.IsNotFoundError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to revert review: %w", err)
	}

	log.Debug("review reverted", "review_id", reviewID)
	s.events.Publish(events.NewEvent(userID, events.EntityReview, events.ChangeUpdated, reviewID))
	return nil
}

// Reschedule moves a reminder to a new date, keeping its review number
// and completion state.
func (s *ReviewService) Reschedule(ctx context.Context, userID, reviewID uuid.UUID, newDate time.Time) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.owned(ctx, userID, reviewID); err != nil {
		return err
	}
	if err := s.reviews.Reschedule(ctx, reviewID, domain.DateOf(newDate)); err != nil {
		if store.IsNotFoundError(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to reschedule review: %w", err)
	}

	log.Debug("review rescheduled", "review_id", reviewID, "new_date", domain.DateOf(newDate))
	s.events.Publish(events.NewEvent(userID, events.EntityReview, events.ChangeUpdated, reviewID))
	return nil
}

func (s *ReviewService) owned(ctx context.Context, userID, reviewID uuid.UUID) (*domain.ReviewTask, error) {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	if review.UserID != userID {
		return nil, ErrNotOwned
	}
	return review, nil
}
