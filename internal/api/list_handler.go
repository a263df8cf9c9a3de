package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/api/shared"
	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/service"
	"github.com/listkeep/listkeep-api/internal/store"
)

// ListHandler handles list-related API requests.
type ListHandler struct {
	listService service.ListService
	taskService service.TaskService
	logger      *slog.Logger
}

// NewListHandler creates a new ListHandler with the given dependencies.
// The task service backs the clear and rollover endpoints.
func NewListHandler(
	listService service.ListService,
	taskService service.TaskService,
	logger *slog.Logger,
) *ListHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListHandler{
		listService: listService,
		taskService: taskService,
		logger:      logger.With("component", "list_handler"),
	}
}

// ownedList loads a list and checks the requester owns it. Non-owners get
// the same not-found error as a missing list, so list IDs cannot be probed.
func (h *ListHandler) ownedList(r *http.Request, listID, userID uuid.UUID) (*domain.List, error) {
	list, err := h.listService.GetByID(r.Context(), listID)
	if err != nil {
		return nil, err
	}
	if list.UserID != userID {
		return nil, store.ErrListNotFound
	}
	return list, nil
}

// Create handles POST /api/lists.
func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format",
			shared.WithKind(KindBadRequest))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	list, err := h.listService.Create(r.Context(), userID, req.Title)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewListResponse(list, userID))
}

// List handles GET /api/lists, returning the requester's lists.
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	lists, err := h.listService.ListForUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewListResponses(lists, userID))
}

// Get handles GET /api/lists/{listID}.
func (h *ListHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "listID")
	if !ok {
		return
	}

	list, err := h.ownedList(r, listID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewListResponse(list, userID))
}

// GetShared handles GET /api/lists/shared/{token}. The route is public;
// anonymous requesters can only see public lists, owners always see their
// own.
func (h *ListHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if token == "" {
		HandleAPIError(w, r, store.ErrListNotFound, "")
		return
	}

	// Anonymous access yields the nil UUID, which owns nothing.
	requesterID, _ := getUserIDFromContext(r)

	list, err := h.listService.GetByShareToken(r.Context(), token, requesterID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewListResponse(list, requesterID))
}

// Update handles PATCH /api/lists/{listID}.
func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "listID")
	if !ok {
		return
	}

	var req UpdateListRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format",
			shared.WithKind(KindBadRequest))
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		HandleValidationError(w, r, err)
		return
	}

	if _, err := h.ownedList(r, listID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	update := service.ListUpdate{Title: req.Title}
	if req.Visibility != nil {
		visibility := domain.Visibility(*req.Visibility)
		update.Visibility = &visibility
	}

	list, err := h.listService.Update(r.Context(), listID, update)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewListResponse(list, userID))
}

// Delete handles DELETE /api/lists/{listID}.
func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "listID")
	if !ok {
		return
	}

	if _, err := h.ownedList(r, listID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.listService.Delete(r.Context(), listID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}

// Clear handles POST /api/lists/{listID}/clear.
func (h *ListHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.advanceVersion(w, r, h.taskService.ClearList)
}

// Rollover handles POST /api/lists/{listID}/rollover.
func (h *ListHandler) Rollover(w http.ResponseWriter, r *http.Request) {
	h.advanceVersion(w, r, h.taskService.RolloverList)
}

func (h *ListHandler) advanceVersion(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, listID uuid.UUID) (*service.ClearResult, error),
) {
	userID, listID, ok := requireUserAndPathUUID(w, r, "listID")
	if !ok {
		return
	}

	if _, err := h.ownedList(r, listID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := op(r.Context(), listID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ClearListResponse{
		List:    NewListResponse(result.List, userID),
		Carried: NewTaskResponses(result.Carried),
	})
}
