package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/listkeep/listkeep-api/internal/domain"
	"github.com/listkeep/listkeep-api/internal/mocks"
	"github.com/listkeep/listkeep-api/internal/service"
	"github.com/listkeep/listkeep-api/internal/store"
)

// taskFixture bundles the stores and services a task test needs.
type taskFixture struct {
	users *mocks.MockUserStore
	lists *mocks.MockListStore
	tasks *mocks.MockTaskStore
	list  *domain.List
	svc   service.TaskService
}

func newTaskFixture(t *testing.T) *taskFixture {
	t.Helper()

	users := mocks.NewMockUserStore()
	lists := mocks.NewMockListStore()
	tasks := mocks.NewMockTaskStore()
	owner := seedUser(t, users, "alice", "alice@example.com")
	list := seedList(t, lists, owner.ID, "groceries")

	listSvc := service.NewListService(lists, users, tasks, nil)
	return &taskFixture{
		users: users,
		lists: lists,
		tasks: tasks,
		list:  list,
		svc:   service.NewTaskService(tasks, listSvc, nil),
	}
}

func (f *taskFixture) seedTask(t *testing.T, title string, mutate func(*domain.Task)) *domain.Task {
	t.Helper()

	task, err := domain.NewTask(f.list.ID, title, f.list.Version)
	require.NoError(t, err)
	if mutate != nil {
		mutate(task)
	}
	require.NoError(t, f.tasks.Create(context.Background(), task))
	return task
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("stamps the list's current version", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		f.list.Version = 3
		require.NoError(t, f.lists.Update(context.Background(), f.list))

		task, err := f.svc.Create(context.Background(), f.list.ID, "milk")
		require.NoError(t, err)

		assert.Equal(t, "milk", task.Title)
		assert.Equal(t, 3, task.ListVersion)
		assert.False(t, task.Completed)
	})

	t.Run("rejects an unknown list", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		_, err := f.svc.Create(context.Background(), uuid.New(), "milk")
		assert.ErrorIs(t, err, store.ErrListNotFound)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		_, err := f.svc.Create(context.Background(), f.list.ID, "  ")
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})
}

func TestTaskServiceListForList(t *testing.T) {
	t.Parallel()

	t.Run("returns only tasks at the current version", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		old, err := domain.NewTask(f.list.ID, "stale", 1)
		require.NoError(t, err)
		require.NoError(t, f.tasks.Create(context.Background(), old))

		f.list.Version = 2
		require.NoError(t, f.lists.Update(context.Background(), f.list))
		current, err := domain.NewTask(f.list.ID, "fresh", 2)
		require.NoError(t, err)
		require.NoError(t, f.tasks.Create(context.Background(), current))

		tasks, err := f.svc.ListForList(context.Background(), f.list.ID)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "fresh", tasks[0].Title)
	})

	t.Run("rejects an unknown list", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		_, err := f.svc.ListForList(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrListNotFound)
	})
}

func TestTaskServiceListForListVersion(t *testing.T) {
	t.Parallel()

	t.Run("reads tasks left behind on an earlier version", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		f.seedTask(t, "one-off errand", nil)

		_, err := f.svc.ClearList(context.Background(), f.list.ID)
		require.NoError(t, err)

		tasks, err := f.svc.ListForListVersion(context.Background(), f.list.ID, 1)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "one-off errand", tasks[0].Title)
		assert.Equal(t, 1, tasks[0].ListVersion)
	})

	t.Run("current version matches ListForList", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		f.seedTask(t, "buy milk", nil)

		tasks, err := f.svc.ListForListVersion(context.Background(), f.list.ID, f.list.Version)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "buy milk", tasks[0].Title)
	})

	t.Run("rejects versions outside 1..current", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		for _, version := range []int{0, -1, f.list.Version + 1} {
			_, err := f.svc.ListForListVersion(context.Background(), f.list.ID, version)
			assert.ErrorIs(t, err, service.ErrInvalidListVersion, "version %d", version)
		}
	})

	t.Run("rejects an unknown list", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		_, err := f.svc.ListForListVersion(context.Background(), uuid.New(), 1)
		assert.ErrorIs(t, err, store.ErrListNotFound)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("applies a partial update", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		task := f.seedTask(t, "milk", nil)

		title := "oat milk"
		priority := true
		reminders := []time.Time{time.Now().Add(time.Hour).UTC()}
		updated, err := f.svc.Update(context.Background(), task.ID, service.TaskUpdate{
			Title:     &title,
			Priority:  &priority,
			Reminders: &reminders,
		})
		require.NoError(t, err)

		assert.Equal(t, "oat milk", updated.Title)
		assert.True(t, updated.Priority)
		assert.Len(t, updated.Reminders, 1)
		assert.False(t, updated.Completed, "untouched fields keep their value")
	})

	t.Run("rejects an empty patch", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		task := f.seedTask(t, "milk", nil)

		_, err := f.svc.Update(context.Background(), task.ID, service.TaskUpdate{})
		assert.ErrorIs(t, err, service.ErrNoFieldsToUpdate)
	})

	t.Run("returns not found for an unknown task", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		title := "anything"
		_, err := f.svc.Update(context.Background(), uuid.New(), service.TaskUpdate{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceToggles(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	task := f.seedTask(t, "milk", nil)
	ctx := context.Background()

	toggled, err := f.svc.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = f.svc.ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)

	toggled, err = f.svc.TogglePriority(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Priority)

	toggled, err = f.svc.ToggleRecurring(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Recurring)

	_, err = f.svc.ToggleComplete(ctx, uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestTaskServiceClearList(t *testing.T) {
	t.Parallel()

	t.Run("bumps the version and carries only recurring tasks", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		f.seedTask(t, "buy milk", func(task *domain.Task) { task.Completed = true })
		f.seedTask(t, "one-off errand", nil)
		recurring := f.seedTask(t, "water plants", func(task *domain.Task) {
			task.Recurring = true
			task.Completed = true
			task.Priority = true
		})

		result, err := f.svc.ClearList(context.Background(), f.list.ID)
		require.NoError(t, err)

		assert.Equal(t, 2, result.List.Version)
		require.Len(t, result.Carried, 1)

		carried := result.Carried[0]
		assert.Equal(t, recurring.Title, carried.Title)
		assert.Equal(t, 2, carried.ListVersion)
		assert.False(t, carried.Completed, "carried copies start incomplete")
		assert.True(t, carried.Recurring)
		assert.True(t, carried.Priority)
		assert.NotEqual(t, recurring.ID, carried.ID, "carried task is a fresh document")

		visible, err := f.svc.ListForList(context.Background(), f.list.ID)
		require.NoError(t, err)
		require.Len(t, visible, 1)
		assert.Equal(t, recurring.Title, visible[0].Title)
	})

	t.Run("keeps old-version tasks in the store", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)
		f.seedTask(t, "one-off", nil)

		_, err := f.svc.ClearList(context.Background(), f.list.ID)
		require.NoError(t, err)

		all, err := f.tasks.ListByListID(context.Background(), f.list.ID, -1)
		require.NoError(t, err)
		assert.Len(t, all, 1, "clearing hides tasks, it never deletes them")
	})

	t.Run("refuses to clear an empty list", func(t *testing.T) {
		t.Parallel()

		f := newTaskFixture(t)

		_, err := f.svc.ClearList(context.Background(), f.list.ID)
		assert.ErrorIs(t, err, service.ErrNoTasksToClear)

		list, getErr := f.lists.GetByID(context.Background(), f.list.ID)
		require.NoError(t, getErr)
		assert.Equal(t, 1, list.Version, "version must not advance on failure")
	})
}

func TestTaskServiceRolloverList(t *testing.T) {
	t.Parallel()

	f := newTaskFixture(t)
	f.seedTask(t, "done errand", func(task *domain.Task) { task.Completed = true })
	f.seedTask(t, "unfinished errand", nil)
	f.seedTask(t, "water plants", func(task *domain.Task) {
		task.Recurring = true
		task.Completed = true
	})

	result, err := f.svc.RolloverList(context.Background(), f.list.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, result.List.Version)
	require.Len(t, result.Carried, 2)

	titles := []string{result.Carried[0].Title, result.Carried[1].Title}
	assert.ElementsMatch(t, []string{"unfinished errand", "water plants"}, titles)
	for _, carried := range result.Carried {
		assert.False(t, carried.Completed)
		assert.Equal(t, 2, carried.ListVersion)
	}
}
