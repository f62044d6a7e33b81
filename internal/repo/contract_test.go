package repo

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo/internal/model"
)

// testRepositoryContract runs the behaviour every TaskRepository must share.
// newRepo must return an empty store.
func testRepositoryContract(t *testing.T, newRepo func(t *testing.T) TaskRepository) {
	ctx := context.Background()

	t.Run("create defaults", func(t *testing.T) {
		r := newRepo(t)
		desc := "Test Description"

		created, err := r.Create(ctx, model.CreateTaskInput{Title: "Test", Description: &desc})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.Completed)
		require.NotNil(t, created.Description)
		assert.Equal(t, desc, *created.Description)
		assert.False(t, created.CreatedAt.IsZero())

		noDesc, err := r.Create(ctx, model.CreateTaskInput{Title: "No description"})
		require.NoError(t, err)
		assert.Nil(t, noDesc.Description)
		assert.NotEqual(t, created.ID, noDesc.ID)
	})

	t.Run("list is partitioned and newest first", func(t *testing.T) {
		r := newRepo(t)
		var ids []int64
		for i := 0; i < 7; i++ {
			task, err := r.Create(ctx, model.CreateTaskInput{Title: fmt.Sprintf("Task %d", i+1)})
			require.NoError(t, err)
			ids = append(ids, task.ID)
		}
		done := true
		_, err := r.Update(ctx, ids[0], model.TaskUpdate{Completed: &done})
		require.NoError(t, err)

		n, err := r.Count(ctx, model.TaskFilter{Completed: false})
		require.NoError(t, err)
		assert.Equal(t, 6, n)
		n, err = r.Count(ctx, model.TaskFilter{Completed: true})
		require.NoError(t, err)
		assert.Equal(t, 1, n)

		page1, err := r.List(ctx, model.TaskFilter{Completed: false}, 0, 5)
		require.NoError(t, err)
		require.Len(t, page1, 5)
		assert.Equal(t, ids[6], page1[0].ID)
		assert.Equal(t, ids[2], page1[4].ID)

		page2, err := r.List(ctx, model.TaskFilter{Completed: false}, 5, 5)
		require.NoError(t, err)
		require.Len(t, page2, 1)
		assert.Equal(t, ids[1], page2[0].ID)

		beyond, err := r.List(ctx, model.TaskFilter{Completed: false}, 50, 5)
		require.NoError(t, err)
		assert.Empty(t, beyond)

		farBeyond, err := r.List(ctx, model.TaskFilter{Completed: false}, math.MaxInt, 5)
		require.NoError(t, err)
		assert.Empty(t, farBeyond)

		completed, err := r.List(ctx, model.TaskFilter{Completed: true}, 0, 5)
		require.NoError(t, err)
		require.Len(t, completed, 1)
		assert.Equal(t, ids[0], completed[0].ID)
		assert.True(t, completed[0].Completed)
	})

	t.Run("multi-byte description round trip", func(t *testing.T) {
		r := newRepo(t)
		desc := strings.Repeat("ж", 65535)

		created, err := r.Create(ctx, model.CreateTaskInput{Title: "Заметка", Description: &desc})
		require.NoError(t, err)

		tasks, err := r.List(ctx, model.TaskFilter{Completed: false}, 0, 5)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, created.ID, tasks[0].ID)
		assert.Equal(t, "Заметка", tasks[0].Title)
		require.NotNil(t, tasks[0].Description)
		assert.Equal(t, desc, *tasks[0].Description)
	})

	t.Run("update refreshes updated_at", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.Create(ctx, model.CreateTaskInput{Title: "Task"})
		require.NoError(t, err)

		done := true
		updated, err := r.Update(ctx, created.ID, model.TaskUpdate{Completed: &done})
		require.NoError(t, err)
		assert.True(t, updated.Completed)
		assert.Equal(t, created.ID, updated.ID)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
		assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	})

	t.Run("missing ids", func(t *testing.T) {
		r := newRepo(t)
		done := true

		_, err := r.Update(ctx, 99999, model.TaskUpdate{Completed: &done})
		assert.ErrorIs(t, err, ErrorNotFound)

		assert.ErrorIs(t, r.Delete(ctx, 99999), ErrorNotFound)
	})

	t.Run("delete twice", func(t *testing.T) {
		r := newRepo(t)
		created, err := r.Create(ctx, model.CreateTaskInput{Title: "Task"})
		require.NoError(t, err)

		require.NoError(t, r.Delete(ctx, created.ID))
		assert.ErrorIs(t, r.Delete(ctx, created.ID), ErrorNotFound)

		n, err := r.Count(ctx, model.TaskFilter{Completed: false})
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}
