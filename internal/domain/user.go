package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// User validation errors. Each wraps ErrValidation so the API layer can map
// any of them to a validation failure without enumerating every sentinel.
var (
	ErrEmptyUserID      = fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	ErrEmptyUsername    = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrUsernameTooLong  = fmt.Errorf("%w: username must be at most 64 characters long", ErrValidation)
	ErrEmptyEmail       = fmt.Errorf("%w: email cannot be empty", ErrValidation)
	ErrInvalidEmail     = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrEmptyPassword    = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrPasswordTooShort = fmt.Errorf("%w: password must be at least 8 characters long", ErrValidation)
	ErrPasswordTooLong  = fmt.Errorf("%w: password must be at most 72 characters long", ErrValidation)
)

// Password length bounds. The upper bound is bcrypt's practical limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
)

// User represents a registered user of the application.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, only set during registration/updates
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username, email, and password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: this only sets up the user structure with the plaintext password.
// The caller is responsible for hashing the password before storing the user.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  strings.TrimSpace(username),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  password,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Username == "" {
		return ErrEmptyUsername
	}
	if len(u.Username) > 64 {
		return ErrUsernameTooLong
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) < MinPasswordLength {
			return ErrPasswordTooShort
		}
		if len(u.Password) > MaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs basic validation of email format: a local part,
// an @, and a domain containing an interior dot. Anything stricter belongs
// to the request validation layer.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
