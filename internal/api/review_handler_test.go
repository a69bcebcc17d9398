package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/mocks"
	"github.com/veleda/studyflow/internal/service"
)

func newReviewHandler(reviews *mocks.ReviewTaskStore) *ReviewHandler {
	return NewReviewHandler(service.NewReviewService(reviews, &mocks.Publisher{}, nil))
}

func TestReviewHandler_Counts(t *testing.T) {
	t.Parallel()

	today := domain.DateOf(time.Now())
	handler := newReviewHandler(&mocks.ReviewTaskStore{
		GetByUserFn: func(ctx context.Context, userID uuid.UUID) ([]*domain.ReviewTask, error) {
			return []*domain.ReviewTask{
				{ID: uuid.New(), ScheduledDate: domain.AddDays(today, -2)},
				{ID: uuid.New(), ScheduledDate: today},
				{ID: uuid.New(), ScheduledDate: domain.AddDays(today, 3)},
			}, nil
		},
	})

	req := authedRequest(t, http.MethodGet, "/api/reviews/counts", nil, uuid.New())
	rec := httptest.NewRecorder()
	handler.Counts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ReviewCountsResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.Overdue)
	assert.Equal(t, 2, resp.Pending)
	assert.Equal(t, 0, resp.Completed)
}

func TestReviewHandler_Complete(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	reviewID := uuid.New()
	completed := false
	handler := newReviewHandler(&mocks.ReviewTaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.ReviewTask, error) {
			return &domain.ReviewTask{ID: reviewID, UserID: userID}, nil
		},
		MarkCompletedFn: func(ctx context.Context, id uuid.UUID, now time.Time) error {
			completed = true
			return nil
		},
	})

	req := authedRequest(t, http.MethodPost, "/api/reviews/"+reviewID.String()+"/complete", nil, userID)
	req = withPathParam(req, "id", reviewID.String())
	rec := httptest.NewRecorder()
	handler.Complete(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, completed)
}

func TestReviewHandler_Complete_NotOwned(t *testing.T) {
	t.Parallel()

	reviewID := uuid.New()
	handler := newReviewHandler(&mocks.ReviewTaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.ReviewTask, error) {
			return &domain.ReviewTask{ID: reviewID, UserID: uuid.New()}, nil
		},
	})

	req := authedRequest(t, http.MethodPost, "/api/reviews/"+reviewID.String()+"/complete", nil, uuid.New())
	req = withPathParam(req, "id", reviewID.String())
	rec := httptest.NewRecorder()
	handler.Complete(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestReviewHandler_List_BadDate(t *testing.T) {
	t.Parallel()

	handler := newReviewHandler(&mocks.ReviewTaskStore{})

	req := authedRequest(t, http.MethodGet, "/api/reviews?date=someday", nil, uuid.New())
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewHandler_Feed_EmptyIsArray(t *testing.T) {
	t.Parallel()

	handler := newReviewHandler(&mocks.ReviewTaskStore{})

	req := authedRequest(t, http.MethodGet, "/api/reviews/feed", nil, uuid.New())
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}
