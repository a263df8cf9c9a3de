package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewList(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("valid list", func(t *testing.T) {
		list, err := domain.NewList(userID, "groceries")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, list.ID)
		assert.Equal(t, userID, list.UserID)
		assert.Equal(t, "groceries", list.Title)
		assert.Equal(t, domain.VisibilityPrivate, list.Visibility)
		assert.Equal(t, 1, list.Version)
		assert.NotEmpty(t, list.ShareToken)
	})

	t.Run("share tokens are unique", func(t *testing.T) {
		a, err := domain.NewList(userID, "one")
		require.NoError(t, err)
		b, err := domain.NewList(userID, "two")
		require.NoError(t, err)
		assert.NotEqual(t, a.ShareToken, b.ShareToken)
	})

	t.Run("empty title", func(t *testing.T) {
		_, err := domain.NewList(userID, "   ")
		assert.ErrorIs(t, err, domain.ErrEmptyListTitle)
	})

	t.Run("nil owner", func(t *testing.T) {
		_, err := domain.NewList(uuid.Nil, "groceries")
		assert.ErrorIs(t, err, domain.ErrEmptyListOwner)
	})
}

func TestListValidate(t *testing.T) {
	t.Parallel()

	valid := func() *domain.List {
		return &domain.List{
			ID:         uuid.New(),
			UserID:     uuid.New(),
			Title:      "groceries",
			Visibility: domain.VisibilityPrivate,
			Version:    1,
		}
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("unknown visibility", func(t *testing.T) {
		list := valid()
		list.Visibility = "friends-only"
		assert.ErrorIs(t, list.Validate(), domain.ErrInvalidVisibility)
	})

	t.Run("version below 1", func(t *testing.T) {
		list := valid()
		list.Version = 0
		assert.ErrorIs(t, list.Validate(), domain.ErrValidation)
	})
}

func TestVisibilityIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.VisibilityPrivate.IsValid())
	assert.True(t, domain.VisibilityPublic.IsValid())
	assert.False(t, domain.Visibility("").IsValid())
	assert.False(t, domain.Visibility("PRIVATE").IsValid())
}
