package api

import (
	"net/http"

	"github.com/veleda/studyflow/internal/api/shared"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/service"
)

// GroupHandler handles task group API requests.
type GroupHandler struct {
	groups *service.GroupService
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(groups *service.GroupService) *GroupHandler {
	return &GroupHandler{groups: groups}
}

// Create handles POST /groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateGroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	group, err := domain.NewGroup(userID, req.Name, req.SortOrder)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if err := h.groups.Create(r.Context(), group); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, group)
}

// List handles GET /groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	groups, err := h.groups.List(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if groups == nil {
		groups = []*domain.Group{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, groups)
}

// Get handles GET /groups/{id}.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	group, err := h.groups.Get(r.Context(), userID, groupID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, group)
}

// Update handles PUT /groups/{id}.
func (h *GroupHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateGroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	group := &domain.Group{ID: groupID, UserID: userID, Name: req.Name, SortOrder: req.SortOrder}
	if err := h.groups.Update(r.Context(), userID, group); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, group)
}

// Delete handles DELETE /groups/{id}.
func (h *GroupHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.groups.Delete(r.Context(), userID, groupID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
