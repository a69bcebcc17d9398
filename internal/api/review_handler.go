package api

import (
	"net/http"
	"time"

	"github.com/veleda/studyflow/internal/api/shared"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/service"
)

// ReviewHandler handles review reminder API requests.
type ReviewHandler struct {
	reviews *service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviews *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

// Counts handles GET /reviews/counts.
func (h *ReviewHandler) Counts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	counts, err := h.reviews.Counts(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewCountsResponse{
		Total:     counts.Total,
		Pending:   counts.Pending,
		Overdue:   counts.Overdue,
		Completed: counts.Completed,
	})
}

// Feed handles GET /reviews/feed: overdue reminders plus today's.
func (h *ReviewHandler) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	reviews, err := h.reviews.Feed(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	respondReviewList(w, r, reviews)
}

// List handles GET /reviews. With ?date=YYYY-MM-DD it returns that
// date's reminders; otherwise the full denormalized list.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			HandleAPIError(w, r, domain.NewFieldError("date", "must be a date in YYYY-MM-DD form"), "")
			return
		}
		reviews, err := h.reviews.ForDate(r.Context(), userID, date)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		respondReviewList(w, r, reviews)
		return
	}

	items, err := h.reviews.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if items == nil {
		items = []*domain.ReviewListItem{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, items)
}

// Complete handles POST /reviews/{id}/complete.
func (h *ReviewHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, reviewID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reviews.Complete(r.Context(), userID, reviewID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Incomplete handles POST /reviews/{id}/incomplete.
func (h *ReviewHandler) Incomplete(w http.ResponseWriter, r *http.Request) {
	userID, reviewID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.reviews.Incomplete(r.Context(), userID, reviewID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reschedule handles POST /reviews/{id}/reschedule.
func (h *ReviewHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	userID, reviewID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req RescheduleReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	if err := h.reviews.Reschedule(r.Context(), userID, reviewID, req.NewDate); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondReviewList(w http.ResponseWriter, r *http.Request, reviews []*domain.ReviewTask) {
	if reviews == nil {
		reviews = []*domain.ReviewTask{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, reviews)
}
