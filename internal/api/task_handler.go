package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/api/shared"
	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/service"
	"github.com/listkeep/listkeep-api/internal/store"
)

// TaskHandler handles task-related API requests.
type TaskHandler struct {
	taskService service.TaskService
	listService service.ListService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies. The
// list service backs the ownership checks.
func NewTaskHandler(
	taskService service.TaskService,
	listService service.ListService,
	logger *slog.Logger,
) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		taskService: taskService,
		listService: listService,
		logger:      logger.With("component", "task_handler"),
	}
}

// ownedTask loads a task and checks the requester owns its list. Like list
// lookups, non-owners get the same not-found error as a missing task.
func (h *TaskHandler) ownedTask(r *http.Request, taskID, userID uuid.UUID) (*domain.Task, error) {
	task, err := h.taskService.GetByID(r.Context(), taskID)
	if err != nil {
		return nil, err
	}

	list, err := h.listService.GetByID(r.Context(), task.ListID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ownedListID checks the requester owns the list with the given ID.
func (h *TaskHandler) ownedListID(r *http.Request, listID, userID uuid.UUID) error {
	list, err := h.listService.GetByID(r.Context(), listID)
	if err != nil {
		return err
	}
	if list.UserID != userID {
		return store.ErrListNotFound
	}
	return nil
}

// Create handles POST /api/lists/{listID}/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "listID")
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format",
			shared.WithKind(KindBadRequest))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	if err := h.ownedListID(r, listID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.Create(r.Context(), listID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// List handles GET /api/lists/{listID}/tasks, returning tasks at the list's
// current version.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "listID")
	if !ok {
		return
	}

	if err := h.ownedListID(r, listID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListForList(r.Context(), listID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponses(tasks))
}

// ListVersion handles GET /api/lists/{listID}/versions/{version}/tasks,
// returning tasks pinned to an earlier list version.
func (h *TaskHandler) ListVersion(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "listID")
	if !ok {
		return
	}

	version, err := strconv.Atoi(chi.URLParam(r, "version"))
	if err != nil {
		HandleAPIError(w, r,
			domain.NewValidationError("version", "has invalid format", domain.ErrInvalidID),
			"Invalid list version")
		return
	}

	if err := h.ownedListID(r, listID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	tasks, err := h.taskService.ListForListVersion(r.Context(), listID, version)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponses(tasks))
}

// Get handles GET /api/tasks/{taskID}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	task, err := h.ownedTask(r, taskID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PATCH /api/tasks/{taskID}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format",
			shared.WithKind(KindBadRequest))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	if _, err := h.ownedTask(r, taskID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := h.taskService.Update(r.Context(), taskID, service.TaskUpdate{
		Title:     req.Title,
		Completed: req.Completed,
		Priority:  req.Priority,
		Recurring: req.Recurring,
		Reminders: req.Reminders,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{taskID}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	if _, err := h.ownedTask(r, taskID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.Delete(r.Context(), taskID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// ToggleComplete handles POST /api/tasks/{taskID}/toggle.
func (h *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.taskService.ToggleComplete)
}

// TogglePriority handles POST /api/tasks/{taskID}/toggle-priority.
func (h *TaskHandler) TogglePriority(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.taskService.TogglePriority)
}

// ToggleRecurring handles POST /api/tasks/{taskID}/toggle-recurring.
func (h *TaskHandler) ToggleRecurring(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, h.taskService.ToggleRecurring)
}

func (h *TaskHandler) toggle(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, taskID uuid.UUID) (*domain.Task, error),
) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "taskID")
	if !ok {
		return
	}

	if _, err := h.ownedTask(r, taskID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	task, err := op(r.Context(), taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}
