package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/listkeep/listkeep-api/internal/domain"
)

// ListStore defines the interface for list data persistence.
type ListStore interface {
	// Create saves a new list to the store.
	Create(ctx context.Context, list *domain.List) error

	// GetByID retrieves a list by its unique ID.
	// Returns ErrListNotFound if the list does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.List, error)

	// GetByShareToken retrieves a list by its share token.
	// Returns ErrListNotFound if no list carries the token.
	GetByShareToken(ctx context.Context, token string) (*domain.List, error)

	// ListByUserID returns all lists owned by the given user, which may be
	// an empty slice. Absence of the user itself is a service-layer concern.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.List, error)

	// Update replaces an existing list's stored fields.
	// Returns ErrListNotFound if the list does not exist.
	Update(ctx context.Context, list *domain.List) error

	// Delete removes a list from the store by its ID. Dependent tasks are
	// the caller's responsibility (the service cascades through TaskStore).
	// Returns ErrListNotFound if the list does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a list with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
