package mongodb

import (
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/listkeep/listkeep-api/internal/store"
)

// MapError maps a driver error to the appropriate store error, wrapping the
// original to preserve context. notFound is the entity-specific sentinel to
// use for mongo.ErrNoDocuments (e.g., store.ErrUserNotFound).
// This function should be used in every store operation so callers only ever
// see store errors.
func MapError(err error, notFound error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %v", notFound, err)
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", duplicateSentinel(err), err)
	}

	return err
}

// MapWriteError maps a failed write to a store error. Duplicate key
// violations keep their field-specific sentinel; anything else wraps the
// given failure sentinel (store.ErrUpdateFailed or store.ErrDeleteFailed) so
// callers can distinguish infrastructure failures from missing documents.
func MapWriteError(err error, failure error) error {
	if err == nil {
		return nil
	}

	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", duplicateSentinel(err), err)
	}

	return fmt.Errorf("%w: %v", failure, err)
}

// duplicateSentinel picks the field-specific duplicate sentinel by inspecting
// which unique index the write violated. The index names are fixed by
// EnsureUserIndexes.
func duplicateSentinel(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "username_unique"):
		return store.ErrUsernameExists
	case strings.Contains(msg, "email_unique"):
		return store.ErrEmailExists
	default:
		return store.ErrDuplicate
	}
}

// IsNotFoundError checks if the given error represents a "not found"
// scenario, covering both the raw driver error and wrapped store errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, store.ErrNotFound)
}

// CheckMatchedCount examines the matched count of an update operation.
// A zero matched count means the target document does not exist, so the
// given not-found sentinel is returned.
func CheckMatchedCount(result *mongo.UpdateResult, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckMatchedCount")
	}
	if result.MatchedCount == 0 {
		return notFound
	}
	return nil
}

// CheckDeletedCount examines the deleted count of a delete operation.
// A zero deleted count means the target document does not exist, so the
// given not-found sentinel is returned.
func CheckDeletedCount(result *mongo.DeleteResult, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckDeletedCount")
	}
	if result.DeletedCount == 0 {
		return notFound
	}
	return nil
}
