package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/service/auth"
	"github.com/listkeep/listkeep-api/internal/store"
)

// UserUpdate is a partial update for a user's profile. Nil fields are left
// unchanged.
type UserUpdate struct {
	Username *string
	Email    *string
}

// IsEmpty reports whether the update carries no fields.
func (u UserUpdate) IsEmpty() bool {
	return u.Username == nil && u.Email == nil
}

// UserService provides user account operations.
type UserService interface {
	// Create registers a new user. The password is hashed before storage.
	// Returns store.ErrUsernameExists or store.ErrEmailExists on conflict.
	Create(ctx context.Context, username, email, password string) (*domain.User, error)

	// GetByID retrieves a user by ID. Returns store.ErrUserNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by username. Returns store.ErrUserNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns store.ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update applies a partial profile update.
	// Returns store.ErrUserNotFound if absent, ErrNoFieldsToUpdate for an
	// empty patch, and a duplicate error when the new username or email
	// belongs to a different user.
	Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error)

	// UpdatePassword replaces the user's password with a fresh hash.
	// Returns store.ErrUserNotFound if absent.
	UpdatePassword(ctx context.Context, id uuid.UUID, newPassword string) error

	// Delete removes the user and cascades to their lists and every task in
	// them. Returns store.ErrUserNotFound if absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// Authenticate checks a username/password pair. Returns
	// ErrInvalidCredentials for an unknown username and for a wrong
	// password alike.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	users    store.UserStore
	lists    store.ListStore
	tasks    store.TaskStore
	hasher   auth.PasswordHasher
	verifier auth.PasswordVerifier
	logger   *slog.Logger
}

// Ensure UserServiceImpl implements UserService
var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a new UserService. The list and task stores are
// needed for the delete cascade.
func NewUserService(
	users store.UserStore,
	lists store.ListStore,
	tasks store.TaskStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		lists:    lists,
		tasks:    tasks,
		hasher:   hasher,
		verifier: verifier,
		logger:   logger.With("component", "user_service"),
	}
}

// Create implements UserService.Create.
// A pre-check catches duplicates early with a field-specific error; the
// store's unique indexes catch the races the pre-check cannot.
func (s *UserServiceImpl) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	user, err := domain.NewUser(username, email, password)
	if err != nil {
		s.logger.Warn("invalid user data on create", "error", err, "username", username)
		return nil, err
	}

	if _, err := s.users.GetByUsername(ctx, user.Username); err == nil {
		s.logger.Debug("username already taken", "username", user.Username)
		return nil, store.ErrUsernameExists
	} else if !store.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		s.logger.Debug("email already taken", "email", user.Email)
		return nil, store.ErrEmailExists
	} else if !store.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			s.logger.Debug("duplicate user on create", "username", user.Username)
			return nil, err
		}
		s.logger.Error("failed to save user", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GetByID implements UserService.GetByID.
func (s *UserServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve user", "error", err, "user_id", id)
		}
		return nil, err
	}
	return user, nil
}

// GetByUsername implements UserService.GetByUsername.
func (s *UserServiceImpl) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve user by username", "error", err, "username", username)
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail implements UserService.GetByEmail.
func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if !store.IsNotFoundError(err) {
			s.logger.Error("failed to retrieve user by email", "error", err)
		}
		return nil, err
	}
	return user, nil
}

// Update implements UserService.Update.
// Follows the get-modify-store pattern: load the full user, apply the patch,
// hand the complete object back to the store.
func (s *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, update UserUpdate) (*domain.User, error) {
	if update.IsEmpty() {
		return nil, ErrNoFieldsToUpdate
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil && *update.Username != user.Username {
		if err := s.checkUsernameFree(ctx, *update.Username, id); err != nil {
			return nil, err
		}
		user.Username = strings.TrimSpace(*update.Username)
	}

	if update.Email != nil {
		newEmail := strings.ToLower(strings.TrimSpace(*update.Email))
		if newEmail != user.Email {
			if err := s.checkEmailFree(ctx, newEmail, id); err != nil {
				return nil, err
			}
			user.Email = newEmail
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		if store.IsDuplicateError(err) || store.IsNotFoundError(err) {
			return nil, err
		}
		s.logger.Error("failed to update user", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("user updated", "user_id", id)
	return user, nil
}

func (s *UserServiceImpl) checkUsernameFree(ctx context.Context, username string, self uuid.UUID) error {
	holder, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("failed to check username: %w", err)
	}
	if holder.ID != self {
		return store.ErrUsernameExists
	}
	return nil
}

func (s *UserServiceImpl) checkEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	holder, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil
		}
		return fmt.Errorf("failed to check email: %w", err)
	}
	if holder.ID != self {
		return store.ErrEmailExists
	}
	return nil
}

// UpdatePassword implements UserService.UpdatePassword.
func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	if len(newPassword) < domain.MinPasswordLength {
		return domain.ErrPasswordTooShort
	}
	if len(newPassword) > domain.MaxPasswordLength {
		return domain.ErrPasswordTooLong
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := s.hasher.Hash(newPassword)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err, "user_id", id)
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed

	if err := s.users.Update(ctx, user); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		s.logger.Error("failed to update password", "error", err, "user_id", id)
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password updated", "user_id", id)
	return nil
}

// Delete implements UserService.Delete.
// Cascade policy: all of the user's lists, and every task in them, are
// removed with the account. No orphan documents remain.
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	exists, err := s.users.Exists(ctx, id)
	if err != nil {
		s.logger.Error("failed to check user existence", "error", err, "user_id", id)
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return store.ErrUserNotFound
	}

	lists, err := s.lists.ListByUserID(ctx, id)
	if err != nil {
		s.logger.Error("failed to enumerate lists for cascade", "error", err, "user_id", id)
		return fmt.Errorf("failed to enumerate lists: %w", err)
	}

	for _, list := range lists {
		if _, err := s.tasks.DeleteByListID(ctx, list.ID); err != nil {
			s.logger.Error("failed to cascade tasks", "error", err, "list_id", list.ID)
			return fmt.Errorf("failed to delete tasks for list %s: %w", list.ID, err)
		}
		if err := s.lists.Delete(ctx, list.ID); err != nil && !store.IsNotFoundError(err) {
			s.logger.Error("failed to cascade list", "error", err, "list_id", list.ID)
			return fmt.Errorf("failed to delete list %s: %w", list.ID, err)
		}
	}

	if err := s.users.Delete(ctx, id); err != nil {
		if store.IsNotFoundError(err) {
			return err
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", id)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted", "user_id", id, "cascaded_lists", len(lists))
	return nil
}

// Authenticate implements UserService.Authenticate.
// Both failure paths return the identical ErrInvalidCredentials; the
// password comparison is not skipped on unknown usernames beyond the store
// lookup itself, and no detail about which check failed ever escapes.
func (s *UserServiceImpl) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if store.IsNotFoundError(err) {
			s.logger.Debug("authentication failed", "username", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for authentication", "error", err)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed", "username", username)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
