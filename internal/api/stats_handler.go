package api

import (
	"net/http"
	"time"

	"github.com/veleda/studyflow/internal/api/shared"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/service"
)

// StatsHandler handles statistics API requests.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

// Daily handles GET /stats/daily?date=YYYY-MM-DD (default today).
func (h *StatsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	date, err := getQueryDate(r, "date", domain.DateOf(time.Now()))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	stats, err := h.stats.Daily(r.Context(), userID, date)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, stats)
}

// Range handles GET /stats?start=...&end=...
func (h *StatsHandler) Range(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	today := domain.DateOf(time.Now())
	start, err := getQueryDate(r, "start", domain.AddDays(today, -30))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	end, err := getQueryDate(r, "end", today)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	records, err := h.stats.Range(r.Context(), userID, start, end)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if records == nil {
		records = []*domain.DailyStats{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

// Weekly handles GET /stats/weekly?start=YYYY-MM-DD. Without a start
// the window is the seven days ending today.
func (h *StatsHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	weekStart, err := getQueryDate(r, "start", time.Time{})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	week, err := h.stats.Weekly(r.Context(), userID, weekStart)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	days := make([]DayTotalPayload, len(week))
	for i, d := range week {
		days[i] = DayTotalPayload{Date: d.Date.Format(dateLayout), Minutes: d.Minutes}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, WeeklyStatsResponse{Days: days})
}

// Streaks handles GET /stats/streaks.
func (h *StatsHandler) Streaks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	summary, err := h.stats.Streaks(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, StreaksResponse{
		Current: summary.Current,
		Max:     summary.Max,
	})
}
