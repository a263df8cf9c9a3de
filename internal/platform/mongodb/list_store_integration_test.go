package mongodb_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/platform/mongodb"
	"github.com/listkeep/listkeep-api/internal/store"
	"github.com/listkeep/listkeep-api/internal/testcollections"
)

func newTestListStore(t *testing.T) store.ListStore {
	t.Helper()

	db := testcollections.ConnectForTest(t)
	return mongodb.NewMongoListStore(testcollections.New(t, db, "lists"), nil)
}

func newStoredList(t *testing.T, s store.ListStore, userID uuid.UUID, title string) *domain.List {
	t.Helper()

	list, err := domain.NewList(userID, title)
	require.NoError(t, err)
	require.NoError(t, s.Create(context.Background(), list))
	return list
}

func TestMongoListStoreRoundTrip(t *testing.T) {
	s := newTestListStore(t)
	ctx := context.Background()

	owner := uuid.New()
	list := newStoredList(t, s, owner, "groceries")

	got, err := s.GetByID(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, list.Title, got.Title)
	assert.Equal(t, owner, got.UserID)
	assert.Equal(t, domain.VisibilityPrivate, got.Visibility)
	assert.Equal(t, list.ShareToken, got.ShareToken)
	assert.Equal(t, 1, got.Version)

	byToken, err := s.GetByShareToken(ctx, list.ShareToken)
	require.NoError(t, err)
	assert.Equal(t, list.ID, byToken.ID)

	_, err = s.GetByShareToken(ctx, "unknown-token")
	assert.ErrorIs(t, err, store.ErrListNotFound)
}

func TestMongoListStoreListByUserID(t *testing.T) {
	s := newTestListStore(t)
	ctx := context.Background()

	owner := uuid.New()
	newStoredList(t, s, owner, "groceries")
	newStoredList(t, s, owner, "chores")
	newStoredList(t, s, uuid.New(), "someone else's")

	lists, err := s.ListByUserID(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, lists, 2)

	empty, err := s.ListByUserID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMongoListStoreUpdate(t *testing.T) {
	s := newTestListStore(t)
	ctx := context.Background()

	list := newStoredList(t, s, uuid.New(), "groceries")
	list.Title = "weekend groceries"
	list.Visibility = domain.VisibilityPublic
	list.Version = 2
	require.NoError(t, s.Update(ctx, list))

	got, err := s.GetByID(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, "weekend groceries", got.Title)
	assert.Equal(t, domain.VisibilityPublic, got.Visibility)
	assert.Equal(t, 2, got.Version)

	ghost := *list
	ghost.ID = uuid.New()
	assert.ErrorIs(t, s.Update(ctx, &ghost), store.ErrListNotFound)
}

func TestMongoListStoreDelete(t *testing.T) {
	s := newTestListStore(t)
	ctx := context.Background()

	list := newStoredList(t, s, uuid.New(), "groceries")
	require.NoError(t, s.Delete(ctx, list.ID))

	_, err := s.GetByID(ctx, list.ID)
	assert.ErrorIs(t, err, store.ErrListNotFound)
	assert.ErrorIs(t, s.Delete(ctx, list.ID), store.ErrListNotFound)

	exists, err := s.Exists(ctx, list.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
