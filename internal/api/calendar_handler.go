package api

import (
	"net/http"
	"time"

	"github.com/veleda/studyflow/internal/api/shared"
	"github.com/veleda/studyflow/internal/service"
)

// CalendarHandler handles calendar badge count API requests.
type CalendarHandler struct {
	calendar *service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// Counts handles GET /calendar?start=...&end=... The default window is
// the current month.
func (h *CalendarHandler) Counts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	start, err := getQueryDate(r, "start", monthStart)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	end, err := getQueryDate(r, "end", monthEnd)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	counts, err := h.calendar.Counts(r.Context(), userID, start, end)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	resp := CalendarCountsResponse{Counts: make(map[string]int, len(counts))}
	for date, n := range counts {
		resp.Counts[date.Format(dateLayout)] = n
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
