package api

import (
	"net/http"
	"time"

	"github.com/veleda/studyflow/internal/api/shared"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/service"
)

// SessionHandler handles study session API requests.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Start handles POST /sessions.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	session, err := h.sessions.Start(r.Context(), userID, req.TaskID, req.Cycles)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, session)
}

// Finish handles POST /sessions/{id}/finish.
func (h *SessionHandler) Finish(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req FinishSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	session, err := h.sessions.Finish(r.Context(), userID, sessionID, service.FinishInput{
		WorkMinutes:  req.WorkMinutes,
		TotalCycles:  req.TotalCycles,
		CurrentCycle: req.CurrentCycle,
		Completed:    req.Completed,
		Interrupted:  req.Interrupted,
		Notes:        req.Notes,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, session)
}

// Get handles GET /sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, sessionID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	session, err := h.sessions.GetByID(r.Context(), userID, sessionID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, session)
}

// History handles GET /sessions?start=...&end=...
func (h *SessionHandler) History(w http.ResponseWriter, r *http.Request) {
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

	// The range covers the whole end date, not just its midnight.
	sessions, err := h.sessions.History(r.Context(), userID, start, domain.AddDays(end, 1).Add(-time.Nanosecond))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if sessions == nil {
		sessions = []*domain.StudySession{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, sessions)
}
