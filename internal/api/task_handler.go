package api

import (
	"net/http"
	"time"

	"github.com/veleda/studyflow/internal/api/shared"
	"github.com/veleda/studyflow/internal/domain"
	"github.com/veleda/studyflow/internal/service"
)

// TaskHandler handles task API requests.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req TaskPayload
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	task, err := domain.NewTask(userID, req.GroupID, req.Name)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	applyTaskPayload(task, req)

	if err := h.tasks.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// List handles GET /tasks. With ?group=<uuid> it lists one group's
// tasks; with ?date=YYYY-MM-DD it lists the tasks due on that date;
// otherwise every active task.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if raw := r.URL.Query().Get("group"); raw != "" {
		groupID, err := parseUUIDParam("group", raw)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		tasks, err := h.tasks.ListByGroup(r.Context(), userID, groupID)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		respondTaskList(w, r, tasks)
		return
	}

	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			HandleAPIError(w, r, domain.NewFieldError("date", "must be a date in YYYY-MM-DD form"), "")
			return
		}
		tasks, err := h.tasks.ScheduledFor(r.Context(), userID, date)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		respondTaskList(w, r, tasks)
		return
	}

	tasks, err := h.tasks.ListActive(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	respondTaskList(w, r, tasks)
}

// Deadlines handles GET /tasks/deadlines?start=...&end=...
func (h *TaskHandler) Deadlines(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	today := domain.DateOf(time.Now())
	start, err := getQueryDate(r, "start", today)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	end, err := getQueryDate(r, "end", domain.AddDays(today, 14))
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.tasks.UpcomingDeadlines(r.Context(), userID, start, end)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	respondTaskList(w, r, tasks)
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Update handles PUT /tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req TaskPayload
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error")
		return
	}

	task := &domain.Task{
		ID:            taskID,
		UserID:        userID,
		GroupID:       req.GroupID,
		Name:          req.Name,
		IsActive:      true,
		ReviewEnabled: true,
	}
	applyTaskPayload(task, req)
	task.UpdatedAt = time.Now().UTC()

	if err := h.tasks.Update(r.Context(), userID, task); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// Delete handles DELETE /tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), userID, taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// applyTaskPayload copies the optional payload fields onto the task.
// NewTask defaults (active, reviews enabled) hold unless the payload
// says otherwise.
func applyTaskPayload(task *domain.Task, req TaskPayload) {
	task.WorkMinutesOverride = req.WorkMinutesOverride
	task.ScheduleType = domain.ScheduleType(req.ScheduleType)
	task.RepeatDays = req.RepeatDays
	task.DeadlineDate = req.DeadlineDate
	task.SpecificDate = req.SpecificDate
	task.ReviewCountOverride = req.ReviewCountOverride
	if req.IsActive != nil {
		task.IsActive = *req.IsActive
	}
	if req.ReviewEnabled != nil {
		task.ReviewEnabled = *req.ReviewEnabled
	}
}

func respondTaskList(w http.ResponseWriter, r *http.Request, tasks []*domain.Task) {
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}
