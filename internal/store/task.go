package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/listkeep/listkeep-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListByListID returns all tasks belonging to the given list at the
	// given list version. A negative version matches every version.
	ListByListID(ctx context.Context, listID uuid.UUID, listVersion int) ([]*domain.Task, error)

	// Update replaces an existing task's stored fields.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes a task from the store by its ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByListID removes every task belonging to the given list, across
	// all versions. Returns the number of tasks removed. Removing zero tasks
	// is not an error.
	DeleteByListID(ctx context.Context, listID uuid.UUID) (int64, error)
}
