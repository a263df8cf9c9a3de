// Package service provides the application-level services for users, lists,
// and tasks. Services enforce the business rules (uniqueness, ownership,
// cascades) and return typed errors; translating those errors into HTTP
// responses is the API layer's job alone.
package service

import "errors"

// Common service errors - sentinel errors used across service
// implementations. Callers check these with errors.Is; the API layer maps
// them to status codes.
var (
	// ErrInvalidCredentials is returned by Authenticate for an unknown
	// username and for a wrong password alike. The two cases are
	// deliberately indistinguishable to prevent user enumeration.
	// API layer maps this to HTTP 401 Unauthorized.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNoFieldsToUpdate is returned when a partial update carries no
	// fields. API layer maps this to HTTP 400 Bad Request.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrListAccessDenied is returned when a share-token lookup resolves to
	// a private list the requester does not own.
	// API layer maps this to HTTP 403 Forbidden.
	ErrListAccessDenied = errors.New("list is private and cannot be accessed")

	// ErrNoTasksToClear is returned by ClearList/RolloverList when the
	// list's current version holds no tasks.
	// API layer maps this to HTTP 400 Bad Request.
	ErrNoTasksToClear = errors.New("no tasks to clear in list")

	// ErrInvalidListVersion is returned by ListForListVersion when the
	// requested version is below 1 or beyond the list's current version.
	// API layer maps this to HTTP 400 Bad Request.
	ErrInvalidListVersion = errors.New("requested list version is not valid")
)
