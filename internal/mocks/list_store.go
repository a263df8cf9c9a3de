package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/store"
)

// MockListStore implements store.ListStore for testing
type MockListStore struct {
	// Function fields for customizable behavior
	CreateFn          func(ctx context.Context, list *domain.List) error
	GetByIDFn         func(ctx context.Context, id uuid.UUID) (*domain.List, error)
	GetByShareTokenFn func(ctx context.Context, token string) (*domain.List, error)
	ListByUserIDFn    func(ctx context.Context, userID uuid.UUID) ([]*domain.List, error)
	UpdateFn          func(ctx context.Context, list *domain.List) error
	DeleteFn          func(ctx context.Context, id uuid.UUID) error
	ExistsFn          func(ctx context.Context, id uuid.UUID) (bool, error)

	// Data for default implementation, keyed by list ID
	Lists map[uuid.UUID]*domain.List
}

// Ensure MockListStore implements store.ListStore
var _ store.ListStore = (*MockListStore)(nil)

// NewMockListStore creates a new mock store with initialized defaults
func NewMockListStore() *MockListStore {
	return &MockListStore{
		Lists: make(map[uuid.UUID]*domain.List),
	}
}

// Create implements the ListStore interface
func (m *MockListStore) Create(ctx context.Context, list *domain.List) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, list)
	}

	m.Lists[list.ID] = list
	return nil
}

// GetByID implements the ListStore interface
func (m *MockListStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	list, exists := m.Lists[id]
	if !exists {
		return nil, store.ErrListNotFound
	}
	return list, nil
}

// GetByShareToken implements the ListStore interface
func (m *MockListStore) GetByShareToken(ctx context.Context, token string) (*domain.List, error) {
	if m.GetByShareTokenFn != nil {
		return m.GetByShareTokenFn(ctx, token)
	}

	for _, list := range m.Lists {
		if list.ShareToken == token {
			return list, nil
		}
	}
	return nil, store.ErrListNotFound
}

// ListByUserID implements the ListStore interface
func (m *MockListStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.List, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}

	lists := make([]*domain.List, 0)
	for _, list := range m.Lists {
		if list.UserID == userID {
			lists = append(lists, list)
		}
	}
	return lists, nil
}

// Update implements the ListStore interface
func (m *MockListStore) Update(ctx context.Context, list *domain.List) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, list)
	}

	if _, exists := m.Lists[list.ID]; !exists {
		return store.ErrListNotFound
	}
	m.Lists[list.ID] = list
	return nil
}

// Delete implements the ListStore interface
func (m *MockListStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Lists[id]; !exists {
		return store.ErrListNotFound
	}
	delete(m.Lists, id)
	return nil
}

// Exists implements the ListStore interface
func (m *MockListStore) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}

	_, exists := m.Lists[id]
	return exists, nil
}
