package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/listkeep/listkeep-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// GoogleLoginRequest defines the payload for Google sign-in.
type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT used for API authorization.
	AccessToken string `json:"access_token"`

	// RefreshToken is the JWT used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenResponse defines the successful response for the token
// refresh endpoint. Both tokens are rotated on every refresh.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserResponse is the public view of a user. It never carries password
// material.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse builds a UserResponse from a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// UpdateUserRequest defines the payload for partial profile updates.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=64"`
	Email    *string `json:"email,omitempty"    validate:"omitempty,email"`
}

// UpdatePasswordRequest defines the payload for the password change endpoint.
type UpdatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// CreateListRequest defines the payload for creating a list.
type CreateListRequest struct {
	Title string `json:"title" validate:"required,min=1,max=256"`
}

// UpdateListRequest defines the payload for partial list updates.
type UpdateListRequest struct {
	Title      *string `json:"title,omitempty"      validate:"omitempty,min=1,max=256"`
	Visibility *string `json:"visibility,omitempty" validate:"omitempty,oneof=private public"`
}

// ListResponse is the public view of a list. The share token is only
// included for the owner.
type ListResponse struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Visibility string    `json:"visibility"`
	ShareToken string    `json:"share_token,omitempty"`
	Version    int       `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewListResponse builds a ListResponse from a domain list. The share token
// is stripped unless the requester owns the list.
func NewListResponse(list *domain.List, requesterID uuid.UUID) ListResponse {
	resp := ListResponse{
		ID:         list.ID,
		UserID:     list.UserID,
		Title:      list.Title,
		Visibility: string(list.Visibility),
		Version:    list.Version,
		CreatedAt:  list.CreatedAt,
		UpdatedAt:  list.UpdatedAt,
	}
	if list.UserID == requesterID {
		resp.ShareToken = list.ShareToken
	}
	return resp
}

// NewListResponses builds responses for a slice of lists.
func NewListResponses(lists []*domain.List, requesterID uuid.UUID) []ListResponse {
	responses := make([]ListResponse, 0, len(lists))
	for _, list := range lists {
		responses = append(responses, NewListResponse(list, requesterID))
	}
	return responses
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title string `json:"title" validate:"required,min=1,max=512"`
}

// UpdateTaskRequest defines the payload for partial task updates.
type UpdateTaskRequest struct {
	Title     *string      `json:"title,omitempty" validate:"omitempty,min=1,max=512"`
	Completed *bool        `json:"completed,omitempty"`
	Priority  *bool        `json:"priority,omitempty"`
	Recurring *bool        `json:"recurring,omitempty"`
	Reminders *[]time.Time `json:"reminders,omitempty"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          uuid.UUID   `json:"id"`
	ListID      uuid.UUID   `json:"list_id"`
	Title       string      `json:"title"`
	Completed   bool        `json:"completed"`
	Priority    bool        `json:"priority"`
	Recurring   bool        `json:"recurring"`
	Reminders   []time.Time `json:"reminders,omitempty"`
	ListVersion int         `json:"list_version"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// NewTaskResponse builds a TaskResponse from a domain task.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		ListID:      task.ListID,
		Title:       task.Title,
		Completed:   task.Completed,
		Priority:    task.Priority,
		Recurring:   task.Recurring,
		Reminders:   task.Reminders,
		ListVersion: task.ListVersion,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// NewTaskResponses builds responses for a slice of tasks.
func NewTaskResponses(tasks []*domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}
	return responses
}

// ClearListResponse reports the outcome of a clear or rollover operation.
type ClearListResponse struct {
	List    ListResponse   `json:"list"`
	Carried []TaskResponse `json:"carried"`
}
