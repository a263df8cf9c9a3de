package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// List validation errors, all wrapping ErrValidation.
var (
	ErrEmptyListID      = fmt.Errorf("%w: list ID cannot be empty", ErrValidation)
	ErrEmptyListOwner   = fmt.Errorf("%w: list owner cannot be empty", ErrValidation)
	ErrEmptyListTitle   = fmt.Errorf("%w: list title cannot be empty", ErrValidation)
	ErrListTitleTooLong = fmt.Errorf("%w: list title must be at most 256 characters long", ErrValidation)
)

// Visibility controls who may read a list through its share token.
type Visibility string

// Known visibility levels.
const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// IsValid reports whether v is a known visibility level.
func (v Visibility) IsValid() bool {
	return v == VisibilityPrivate || v == VisibilityPublic
}

// ShareTokenBytes is the number of random bytes in a share token
// (32 bytes, 43 characters base64url-encoded).
const ShareTokenBytes = 32

// List represents a named collection of tasks owned by a single user.
// The version starts at 1 and is incremented whenever the list is cleared
// or rolled over, which keeps the task history of earlier versions intact.
type List struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Title      string     `json:"title"`
	Visibility Visibility `json:"visibility"`
	ShareToken string     `json:"share_token,omitempty"`
	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// NewList creates a new List owned by the given user. New lists are private,
// start at version 1, and receive a fresh share token.
func NewList(userID uuid.UUID, title string) (*List, error) {
	token, err := NewShareToken()
	if err != nil {
		return nil, err
	}

	list := &List{
		ID:         uuid.New(),
		UserID:     userID,
		Title:      strings.TrimSpace(title),
		Visibility: VisibilityPrivate,
		ShareToken: token,
		Version:    1,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if err := list.Validate(); err != nil {
		return nil, err
	}

	return list, nil
}

// Validate checks if the List has valid data.
func (l *List) Validate() error {
	if l.ID == uuid.Nil {
		return ErrEmptyListID
	}
	if l.UserID == uuid.Nil {
		return ErrEmptyListOwner
	}
	if l.Title == "" {
		return ErrEmptyListTitle
	}
	if len(l.Title) > 256 {
		return ErrListTitleTooLong
	}
	if !l.Visibility.IsValid() {
		return ErrInvalidVisibility
	}
	if l.Version < 1 {
		return NewValidationError("version", "must be at least 1", ErrValidation)
	}
	return nil
}

// NewShareToken generates a URL-safe random token for share links.
func NewShareToken() (string, error) {
	buf := make([]byte, ShareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
