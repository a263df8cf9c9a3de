package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/listkeep/listkeep-api/internal/api/shared"
	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/service"
	"github.com/listkeep/listkeep-api/internal/service/auth"
	"github.com/listkeep/listkeep-api/internal/store"
)

// Machine-readable error kinds included in error response bodies.
const (
	KindNotFound     = "not_found"
	KindConflict     = "conflict"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindBadRequest   = "bad_request"
	KindValidation   = "validation_error"
	KindInternal     = "internal"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. This keeps
// internal error types and messages from leaking to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrGoogleTokenInvalid),
		errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrListAccessDenied):
		return http.StatusForbidden

	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case store.IsDuplicateError(err):
		return http.StatusConflict

	case errors.Is(err, service.ErrNoFieldsToUpdate),
		errors.Is(err, service.ErrNoTasksToClear),
		errors.Is(err, service.ErrInvalidListVersion),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest

	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity

	default:
		return http.StatusInternalServerError
	}
}

// kindForStatus maps an HTTP status code to its response kind.
func kindForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusBadRequest:
		return KindBadRequest
	case http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the error.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	case errors.Is(err, auth.ErrGoogleTokenInvalid):
		return "Invalid Google token"

	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, domain.ErrUnauthorized):
		return "Unauthorized"

	case errors.Is(err, service.ErrListAccessDenied):
		return "This list is private"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrListNotFound):
		return "List not found"

	case errors.Is(err, store.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, store.ErrUsernameExists):
		return "Username already exists"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, service.ErrNoFieldsToUpdate):
		return "No fields to update"

	case errors.Is(err, service.ErrNoTasksToClear):
		return "List has no tasks"

	case errors.Is(err, service.ErrInvalidListVersion):
		return "Requested list version is not valid"

	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid identifier"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps the error to a status code and writes the sanitized
// error response. The optional message overrides the mapped safe message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err, shared.WithKind(kindForStatus(status)))
}

// HandleValidationError writes a 422 for go-playground validation failures
// and defers everything else to HandleAPIError.
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnprocessableEntity,
			SanitizeValidationError(err), err, shared.WithKind(KindValidation))
		return
	}
	HandleAPIError(w, r, err, "")
}

// SanitizeValidationError converts a validator error into a user-friendly
// message naming only the first failing field and its rule.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	first := validationErrs[0]
	return "Invalid " + first.Field() + ": " + getValidationTagMessage(first.Tag())
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "uuid":
		return "invalid identifier"
	default:
		return "validation failed"
	}
}
