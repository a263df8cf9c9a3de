package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByListIDFn   func(ctx context.Context, listID uuid.UUID, listVersion int) ([]*domain.Task, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	DeleteByListIDFn func(ctx context.Context, listID uuid.UUID) (int64, error)

	// Data for default implementation, keyed by task ID
	Tasks map[uuid.UUID]*domain.Task
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// ListByListID implements the TaskStore interface
func (m *MockTaskStore) ListByListID(ctx context.Context, listID uuid.UUID, listVersion int) ([]*domain.Task, error) {
	if m.ListByListIDFn != nil {
		return m.ListByListIDFn(ctx, listID, listVersion)
	}

	tasks := make([]*domain.Task, 0)
	for _, task := range m.Tasks {
		if task.ListID != listID {
			continue
		}
		if listVersion >= 0 && task.ListVersion != listVersion {
			continue
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// DeleteByListID implements the TaskStore interface
func (m *MockTaskStore) DeleteByListID(ctx context.Context, listID uuid.UUID) (int64, error) {
	if m.DeleteByListIDFn != nil {
		return m.DeleteByListIDFn(ctx, listID)
	}

	var deleted int64
	for id, task := range m.Tasks {
		if task.ListID == listID {
			delete(m.Tasks, id)
			deleted++
		}
	}
	return deleted, nil
}
