package testcollections_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listkeep/listkeep-api/internal/testcollections"
)

func TestName(t *testing.T) {
	t.Parallel()

	t.Run("carries the prefix and base", func(t *testing.T) {
		t.Parallel()

		name := testcollections.Name("users")
		assert.True(t, strings.HasPrefix(name, "test-users-"), "got %q", name)
	})

	t.Run("two calls return distinct names", func(t *testing.T) {
		t.Parallel()

		first := testcollections.Name("users")
		second := testcollections.Name("users")
		assert.NotEqual(t, first, second)
	})
}

func TestNewDropsCollectionOnCleanup(t *testing.T) {
	db := testcollections.ConnectForTest(t)
	ctx := context.Background()

	var name string
	t.Run("inner", func(t *testing.T) {
		coll := testcollections.New(t, db, "cleanup")
		name = coll.Name()

		_, err := coll.InsertOne(ctx, map[string]any{"probe": true})
		require.NoError(t, err)
	})

	names, err := db.ListCollectionNames(ctx, map[string]any{})
	require.NoError(t, err)
	assert.NotContains(t, names, name, "collection should be dropped when the test ends")
}

func TestCleanup(t *testing.T) {
	db := testcollections.ConnectForTest(t)
	ctx := context.Background()

	// Collections created directly, without New's per-test cleanup.
	stale := db.Collection(testcollections.Name("stale"))
	_, err := stale.InsertOne(ctx, map[string]any{"probe": true})
	require.NoError(t, err)

	keep := db.Collection("keep-me")
	_, err = keep.InsertOne(ctx, map[string]any{"probe": true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = keep.Drop(context.Background())
	})

	require.NoError(t, testcollections.Cleanup(ctx, db))

	names, err := db.ListCollectionNames(ctx, map[string]any{})
	require.NoError(t, err)

	for _, name := range names {
		assert.False(t, strings.HasPrefix(name, testcollections.Prefix),
			"cleanup left test collection %q behind", name)
	}
	assert.Contains(t, names, "keep-me", "cleanup must not touch non-test collections")

	// Idempotent: a second pass with nothing to do succeeds.
	require.NoError(t, testcollections.Cleanup(ctx, db))
}

func TestServicesAreIsolated(t *testing.T) {
	db := testcollections.ConnectForTest(t)
	ctx := context.Background()

	first := testcollections.NewUserService(t, db)
	second := testcollections.NewUserService(t, db)

	_, err := first.Create(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)

	// The same username is free in the second service's collection.
	_, err = second.Create(ctx, "alice", "alice@example.com", "password123")
	require.NoError(t, err)
}
