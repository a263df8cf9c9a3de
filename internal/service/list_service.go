package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/store"
)

// ListUpdate is a partial update for a list. Nil fields are left unchanged.
type ListUpdate struct {
	Title      *string
	Visibility *domain.Visibility
}

// IsEmpty reports whether the update carries no fields.
func (u ListUpdate) IsEmpty() bool {
	return u.Title == nil && u.Visibility == nil
}

// ListService provides todo-list operations.
type ListService interface {
	// Create makes a new list owned by the given user.
	// Returns store.ErrUserNotFound when the owner does not exist.
	Create(ctx context.Context, userID uuid.UUID, title string) (*domain.List, error)

	// GetByID retrieves a list. Returns store.ErrListNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error)

	// GetByShareToken retrieves a list through its share link.
	// Returns store.ErrListNotFound for an unknown token and
	// ErrListAccessDenied when the list is private and the requester is not
	// the owner.
	GetByShareToken(ctx context.Context, token string, requesterID uuid.UUID) (*domain.List, error)

	// ListForUser returns all lists owned by the user (possibly empty).
	// Returns store.ErrUserNotFound when the owner does not exist.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.List, error)

	// Update applies a partial update (title, visibility).
	// Returns store.ErrListNotFound if absent and ErrNoFieldsToUpdate for an
	// empty patch.
	Update(ctx context.Context, id uuid.UUID, update ListUpdate) (*domain.List, error)

	// Delete removes the list and cascades to every task referencing it,
	// across all versions. Returns store.ErrListNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementVersion bumps the list's version by one and returns the
	// updated list. Used by the clear and rollover operations to retire the
	// current set of tasks while keeping their history.
	IncrementVersion(ctx context.Context, id uuid.UUID) (*domain.List, error)
}

// ListServiceImpl implements the ListService interface.
type ListServiceImpl struct {
	lists  store.ListStore
	users  store.UserStore
	tasks  store.TaskStore
	logger *slog.Logger
}

// Ensure ListServiceImpl implements ListService
var _ ListService = (*ListServiceImpl)(nil)

// NewListService creates a new ListService. The user store backs the
// owner-existence check and the task store backs the delete cascade.
func NewListService(
	lists store.ListStore,
	users store.UserStore,
	tasks store.TaskStore,
	logger *slog.Logger,
) *ListServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ListServiceImpl{
		lists:  lists,
		users:  users,
		tasks:  tasks,
		logger: logger.With("component", "list_service"),
	}
}

// Create implements ListService.Create.
func (s *ListServiceImpl) Create(ctx context.Context, userID uuid.UUID, title string) (*domain.List, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		s.logger.Error("failed to check list owner", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to check owner: %w", err)
	}
	if !exists {
		return nil, store.ErrUserNotFound
	}

	list, err := domain.NewList(userID, title)
	if err != nil {
		s.logger.Warn("invalid list data on create", "error", err, "user_id", userID)
		return nil, err
	}

	if err := s.lists.Create(ctx, list); err != nil {
		s.logger.Error("failed to save list", "error", err, "list_id", list.ID)
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	s.logger.Info("list created", "list_id", list.ID, "user_id", userID)
	return list, nil
}

// GetByID implements ListService.GetByID.
func (s *ListServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve list", "error", err, "list_id", id)
		}
		return nil, err
	}
	return list, nil
}

// GetByShareToken implements ListService.GetByShareToken.
func (s *ListServiceImpl) GetByShareToken(ctx context.Context, token string, requesterID uuid.UUID) (*domain.List, error) {
	list, err := s.lists.GetByShareToken(ctx, token)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve list by share token", "error", err)
		}
		return nil, err
	}

	if list.UserID != requesterID && list.Visibility == domain.VisibilityPrivate {
		s.logger.Debug("share token access denied",
			"list_id", list.ID,
			"requester_id", requesterID)
		return nil, ErrListAccessDenied
	}

	return list, nil
}

// ListForUser implements ListService.ListForUser.
func (s *ListServiceImpl) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.List, error) {
	exists, err := s.users.Exists(ctx, userID)
	if err != nil {
		s.logger.Error("failed to check user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return nil, store.ErrUserNotFound
	}

	lists, err := s.lists.ListByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list lists", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list lists: %w", err)
	}
	return lists, nil
}

// Update implements ListService.Update.
func (s *ListServiceImpl) Update(ctx context.Context, id uuid.UUID, update ListUpdate) (*domain.List, error) {
	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, domain.ErrEmptyListTitle
		}
		list.Title = title
	}

	if update.Visibility != nil {
		if !update.Visibility.IsValid() {
			return nil, domain.ErrInvalidVisibility
		}
		list.Visibility = *update.Visibility
	}

	if err := s.lists.Update(ctx, list); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Error("failed to update list", "error", err, "list_id", id)
		return nil, fmt.Errorf("failed to update list: %w", err)
	}

	s.logger.Info("list updated", "list_id", id)
	return list, nil
}

// Delete implements ListService.Delete.
// Cascade policy: every task referencing the list is removed first, so no
// orphan task documents can exist. This matches the user-delete cascade.
func (s *ListServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.lists.Exists(ctx, id)
	if err != nil {
		s.logger.Error("failed to check list existence", "error", err, "list_id", id)
		return fmt.Errorf("failed to check list: %w", err)
	}
	if !exists {
		return store.ErrListNotFound
	}

	deleted, err := s.tasks.DeleteByListID(ctx, id)
	if err != nil {
		s.logger.Error("failed to cascade tasks", "error", err, "list_id", id)
		return fmt.Errorf("failed to delete tasks: %w", err)
	}

	if err := s.lists.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		s.logger.Error("failed to delete list", "error", err, "list_id", id)
		return fmt.Errorf("failed to delete list: %w", err)
	}

	s.logger.Info("list deleted", "list_id", id, "cascaded_tasks", deleted)
	return nil
}

// IncrementVersion implements ListService.IncrementVersion.
func (s *ListServiceImpl) IncrementVersion(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	list, err := s.lists.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	list.Version++

	if err := s.lists.Update(ctx, list); err != nil {
		if store.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Error("failed to increment list version", "error", err, "list_id", id)
		return nil, fmt.Errorf("failed to increment version: %w", err)
	}

	s.logger.Info("list version incremented", "list_id", id, "version", list.Version)
	return list, nil
}
