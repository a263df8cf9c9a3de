package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/store"
)

// TaskUpdate is a partial update for a task. Nil fields are left unchanged.
type TaskUpdate struct {
	Title     *string
	Completed *bool
	Priority  *bool
	Recurring *bool
	Reminders *[]time.Time
}

// IsEmpty reports whether the update carries no fields.
func (u TaskUpdate) IsEmpty() bool {
	return u.Title == nil && u.Completed == nil && u.Priority == nil &&
		u.Recurring == nil && u.Reminders == nil
}

// ClearResult reports the outcome of a clear or rollover operation.
type ClearResult struct {
	// List is the list after its version bump.
	List *domain.List
	// Carried holds the tasks re-created under the new version.
	Carried []*domain.Task
}

// TaskService provides task operations within todo lists.
type TaskService interface {
	// Create adds a task to a list at the list's current version.
	// Returns store.ErrListNotFound when the list does not exist.
	Create(ctx context.Context, listID uuid.UUID, title string) (*domain.Task, error)

	// GetByID retrieves a task. Returns store.ErrTaskNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListForList returns the tasks of a list at its current version.
	// Returns store.ErrListNotFound when the list does not exist.
	ListForList(ctx context.Context, listID uuid.UUID) ([]*domain.Task, error)

	// ListForListVersion returns the tasks of a list at a specific version,
	// including versions left behind by clear and rollover. Returns
	// ErrInvalidListVersion when version is below 1 or beyond the list's
	// current version, and store.ErrListNotFound when the list is absent.
	ListForListVersion(ctx context.Context, listID uuid.UUID, version int) ([]*domain.Task, error)

	// Update applies a partial update to a task.
	// Returns store.ErrTaskNotFound if absent and ErrNoFieldsToUpdate for an
	// empty patch.
	Update(ctx context.Context, id uuid.UUID, update TaskUpdate) (*domain.Task, error)

	// ToggleComplete flips the completion flag and returns the updated task.
	ToggleComplete(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// TogglePriority flips the priority flag and returns the updated task.
	TogglePriority(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ToggleRecurring flips the recurring flag and returns the updated task.
	ToggleRecurring(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Delete removes a task. Returns store.ErrTaskNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// ClearList bumps the list version and re-creates recurring tasks under
	// the new version as fresh, incomplete copies. Completed and one-off
	// tasks are left behind on the old version. Returns ErrNoTasksToClear
	// when the current version holds no tasks.
	ClearList(ctx context.Context, listID uuid.UUID) (*ClearResult, error)

	// RolloverList bumps the list version and carries both recurring tasks
	// and incomplete one-off tasks into the new version. Carried copies
	// start incomplete. Returns ErrNoTasksToClear when the current version
	// holds no tasks.
	RolloverList(ctx context.Context, listID uuid.UUID) (*ClearResult, error)
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	tasks  store.TaskStore
	lists  ListService
	logger *slog.Logger
}

// Ensure TaskServiceImpl implements TaskService
var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a new TaskService. The list service backs the
// list-existence checks and the version bumps for clear and rollover.
func NewTaskService(tasks store.TaskStore, lists ListService, logger *slog.Logger) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		tasks:  tasks,
		lists:  lists,
		logger: logger.With("component", "task_service"),
	}
}

// Create implements TaskService.Create.
func (s *TaskServiceImpl) Create(ctx context.Context, listID uuid.UUID, title string) (*domain.Task, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	task, err := domain.NewTask(listID, title, list.Version)
	if err != nil {
		s.logger.Warn("invalid task data on create", "error", err, "list_id", listID)
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task", "error", err, "task_id", task.ID)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created", "task_id", task.ID, "list_id", listID, "list_version", list.Version)
	return task, nil
}

// GetByID implements TaskService.GetByID.
func (s *TaskServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve task", "error", err, "task_id", id)
		}
		return nil, err
	}
	return task, nil
}

// ListForList implements TaskService.ListForList.
func (s *TaskServiceImpl) ListForList(ctx context.Context, listID uuid.UUID) ([]*domain.Task, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByListID(ctx, listID, list.Version)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "list_id", listID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// ListForListVersion implements TaskService.ListForListVersion.
func (s *TaskServiceImpl) ListForListVersion(ctx context.Context, listID uuid.UUID, version int) ([]*domain.Task, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	if version < 1 || version > list.Version {
		return nil, fmt.Errorf("%w: version %d of list with current version %d",
			ErrInvalidListVersion, version, list.Version)
	}

	tasks, err := s.tasks.ListByListID(ctx, listID, version)
	if err != nil {
		s.logger.Error("failed to list tasks at version", "error", err, "list_id", listID, "list_version", version)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Update implements TaskService.Update.
func (s *TaskServiceImpl) Update(ctx context.Context, id uuid.UUID, update TaskUpdate) (*domain.Task, error) {
	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, domain.ErrEmptyTaskTitle
		}
		task.Title = title
	}
	if update.Completed != nil {
		task.Completed = *update.Completed
	}
	if update.Priority != nil {
		task.Priority = *update.Priority
	}
	if update.Recurring != nil {
		task.Recurring = *update.Recurring
	}
	if update.Reminders != nil {
		task.Reminders = *update.Reminders
	}

	if err := s.saveTask(ctx, task); err != nil {
		return nil, err
	}

	s.logger.Info("task updated", "task_id", id)
	return task, nil
}

// ToggleComplete implements TaskService.ToggleComplete.
func (s *TaskServiceImpl) ToggleComplete(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.toggle(ctx, id, func(t *domain.Task) { t.Completed = !t.Completed })
}

// TogglePriority implements TaskService.TogglePriority.
func (s *TaskServiceImpl) TogglePriority(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.toggle(ctx, id, func(t *domain.Task) { t.Priority = !t.Priority })
}

// ToggleRecurring implements TaskService.ToggleRecurring.
func (s *TaskServiceImpl) ToggleRecurring(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return s.toggle(ctx, id, func(t *domain.Task) { t.Recurring = !t.Recurring })
}

func (s *TaskServiceImpl) toggle(ctx context.Context, id uuid.UUID, flip func(*domain.Task)) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flip(task)

	if err := s.saveTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskServiceImpl) saveTask(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now().UTC()
	if err := s.tasks.Update(ctx, task); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		s.logger.Error("failed to update task", "error", err, "task_id", task.ID)
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

// Delete implements TaskService.Delete.
func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		s.logger.Error("failed to delete task", "error", err, "task_id", id)
		return fmt.Errorf("failed to delete task: %w", err)
	}
	s.logger.Info("task deleted", "task_id", id)
	return nil
}

// ClearList implements TaskService.ClearList.
func (s *TaskServiceImpl) ClearList(ctx context.Context, listID uuid.UUID) (*ClearResult, error) {
	return s.advanceVersion(ctx, listID, func(t *domain.Task) bool {
		return t.Recurring
	})
}

// RolloverList implements TaskService.RolloverList.
func (s *TaskServiceImpl) RolloverList(ctx context.Context, listID uuid.UUID) (*ClearResult, error) {
	return s.advanceVersion(ctx, listID, func(t *domain.Task) bool {
		return t.Recurring || !t.Completed
	})
}

// advanceVersion bumps the list version and re-creates the tasks selected by
// carry under the new version. Old-version tasks are never deleted; the
// version filter in ListForList hides them.
func (s *TaskServiceImpl) advanceVersion(ctx context.Context, listID uuid.UUID, carry func(*domain.Task) bool) (*ClearResult, error) {
	list, err := s.lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}

	current, err := s.tasks.ListByListID(ctx, listID, list.Version)
	if err != nil {
		s.logger.Error("failed to list tasks for version advance", "error", err, "list_id", listID)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	if len(current) == 0 {
		return nil, ErrNoTasksToClear
	}

	list, err = s.lists.IncrementVersion(ctx, listID)
	if err != nil {
		return nil, err
	}

	carried := make([]*domain.Task, 0, len(current))
	for _, old := range current {
		if !carry(old) {
			continue
		}

		task, err := domain.NewTask(listID, old.Title, list.Version)
		if err != nil {
			s.logger.Error("failed to build carried task", "error", err, "list_id", listID)
			return nil, fmt.Errorf("failed to carry task: %w", err)
		}
		task.Priority = old.Priority
		task.Recurring = old.Recurring
		task.Reminders = old.Reminders

		if err := s.tasks.Create(ctx, task); err != nil {
			s.logger.Error("failed to save carried task", "error", err, "list_id", listID)
			return nil, fmt.Errorf("failed to carry task: %w", err)
		}
		carried = append(carried, task)
	}

	s.logger.Info("list version advanced",
		"list_id", listID,
		"version", list.Version,
		"carried_tasks", len(carried))
	return &ClearResult{List: list, Carried: carried}, nil
}
