package mongodb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/listkeep/listkeep-api/internal/store"
)

func duplicateKeyError(msg string) error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{
			{Code: 11000, Message: msg},
		},
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, MapError(nil, store.ErrUserNotFound))
	})

	t.Run("no documents maps to the given not-found sentinel", func(t *testing.T) {
		err := MapError(mongo.ErrNoDocuments, store.ErrListNotFound)
		assert.ErrorIs(t, err, store.ErrListNotFound)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate key on username index", func(t *testing.T) {
		cause := duplicateKeyError(`E11000 duplicate key error collection: listkeep.users index: username_unique dup key: { username: "alice" }`)
		err := MapError(cause, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrUsernameExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("duplicate key on email index", func(t *testing.T) {
		cause := duplicateKeyError(`E11000 duplicate key error collection: listkeep.users index: email_unique dup key: { email: "a@x.com" }`)
		err := MapError(cause, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("duplicate key on unknown index", func(t *testing.T) {
		cause := duplicateKeyError(`E11000 duplicate key error collection: listkeep.users index: _id_ dup key`)
		err := MapError(cause, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrDuplicate)
		assert.NotErrorIs(t, err, store.ErrUsernameExists)
		assert.NotErrorIs(t, err, store.ErrEmailExists)
	})

	t.Run("unrelated errors pass through unchanged", func(t *testing.T) {
		cause := errors.New("network timeout")
		assert.Equal(t, cause, MapError(cause, store.ErrUserNotFound))
	})
}

func TestMapWriteError(t *testing.T) {
	t.Parallel()

	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, MapWriteError(nil, store.ErrUpdateFailed))
	})

	t.Run("duplicate key keeps its field sentinel", func(t *testing.T) {
		cause := duplicateKeyError(`E11000 duplicate key error collection: listkeep.users index: email_unique dup key: { email: "a@x.com" }`)
		err := MapWriteError(cause, store.ErrUpdateFailed)
		assert.ErrorIs(t, err, store.ErrEmailExists)
		assert.NotErrorIs(t, err, store.ErrUpdateFailed)
	})

	t.Run("driver failure wraps the update sentinel", func(t *testing.T) {
		err := MapWriteError(errors.New("connection reset"), store.ErrUpdateFailed)
		assert.ErrorIs(t, err, store.ErrUpdateFailed)
	})

	t.Run("driver failure wraps the delete sentinel", func(t *testing.T) {
		err := MapWriteError(errors.New("connection reset"), store.ErrDeleteFailed)
		assert.ErrorIs(t, err, store.ErrDeleteFailed)
	})
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNotFoundError(mongo.ErrNoDocuments))
	assert.True(t, IsNotFoundError(store.ErrTaskNotFound))
	assert.False(t, IsNotFoundError(errors.New("boom")))
	assert.False(t, IsNotFoundError(nil))
}

func TestCheckMatchedCount(t *testing.T) {
	t.Parallel()

	t.Run("nil result", func(t *testing.T) {
		assert.Error(t, CheckMatchedCount(nil, store.ErrUserNotFound))
	})

	t.Run("zero matched", func(t *testing.T) {
		err := CheckMatchedCount(&mongo.UpdateResult{MatchedCount: 0}, store.ErrUserNotFound)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("matched", func(t *testing.T) {
		assert.NoError(t, CheckMatchedCount(&mongo.UpdateResult{MatchedCount: 1}, store.ErrUserNotFound))
	})
}

func TestCheckDeletedCount(t *testing.T) {
	t.Parallel()

	t.Run("nil result", func(t *testing.T) {
		assert.Error(t, CheckDeletedCount(nil, store.ErrTaskNotFound))
	})

	t.Run("zero deleted", func(t *testing.T) {
		err := CheckDeletedCount(&mongo.DeleteResult{DeletedCount: 0}, store.ErrTaskNotFound)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("deleted", func(t *testing.T) {
		assert.NoError(t, CheckDeletedCount(&mongo.DeleteResult{DeletedCount: 2}, store.ErrTaskNotFound))
	})
}
