package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task validation errors, all wrapping ErrValidation.
var (
	ErrEmptyTaskID      = fmt.Errorf("%w: task ID cannot be empty", ErrValidation)
	ErrEmptyTaskList    = fmt.Errorf("%w: task list cannot be empty", ErrValidation)
	ErrEmptyTaskTitle   = fmt.Errorf("%w: task title cannot be empty", ErrValidation)
	ErrTaskTitleTooLong = fmt.Errorf("%w: task title must be at most 512 characters long", ErrValidation)
)

// Task represents a single todo item belonging to exactly one list.
// ListVersion pins the task to the list version it was created under, so
// clearing or rolling over a list hides earlier tasks without deleting them.
type Task struct {
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

// NewTask creates a new Task in the given list at the given list version.
// The completion flag always starts false.
func NewTask(listID uuid.UUID, title string, listVersion int) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		ListID:      listID,
		Title:       strings.TrimSpace(title),
		Completed:   false,
		ListVersion: listVersion,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.ListID == uuid.Nil {
		return ErrEmptyTaskList
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if len(t.Title) > 512 {
		return ErrTaskTitleTooLong
	}
	if t.ListVersion < 1 {
		return NewValidationError("list_version", "must be at least 1", ErrValidation)
	}
	return nil
}
