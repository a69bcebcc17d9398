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

	"github.com/veleda/studyflow/internal/mocks"
	"github.com/veleda/studyflow/internal/service"
)

func TestCalendarHandler_Counts(t *testing.T) {
	t.Parallel()

	reviews := &mocks.ReviewTaskStore{
		CountByDateRangeFn: func(ctx context.Context, userID uuid.UUID, start, end time.Time) (map[time.Time]int, error) {
			return map[time.Time]int{
				time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC): 2,
			}, nil
		},
	}
	handler := NewCalendarHandler(service.NewCalendarService(&mocks.TaskStore{}, reviews, nil))

	req := authedRequest(t, http.MethodGet,
		"/api/calendar?start=2025-03-01&end=2025-03-31", nil, uuid.New())
	rec := httptest.NewRecorder()
	handler.Counts(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CalendarCountsResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, map[string]int{"2025-03-05": 2}, resp.Counts)
}

func TestCalendarHandler_Counts_BadRange(t *testing.T) {
	t.Parallel()

	handler := NewCalendarHandler(
		service.NewCalendarService(&mocks.TaskStore{}, &mocks.ReviewTaskStore{}, nil))

	req := authedRequest(t, http.MethodGet,
		"/api/calendar?start=2025-03-31&end=2025-03-01", nil, uuid.New())
	rec := httptest.NewRecorder()
	handler.Counts(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
