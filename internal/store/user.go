package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/listkeep/listkeep-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The caller must have hashed the
	// password already; the plaintext Password field is never persisted.
	// Returns ErrUsernameExists or ErrEmailExists if the username or email
	// is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update replaces an existing user's stored fields with those of the
	// given user. The caller must provide a complete user object including
	// HashedPassword.
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrUsernameExists or ErrEmailExists when the new username or
	// email collides with a different user.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether a user with the given ID exists.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// Count returns the number of users in the store.
	Count(ctx context.Context) (int64, error)
}
