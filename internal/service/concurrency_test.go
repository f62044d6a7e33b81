package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo/internal/model"
	"github.com/BuzzLyutic/todo/internal/repo"
	"github.com/BuzzLyutic/todo/internal/testutil"
)

// concurrentCreates fires creates in parallel and checks that every snapshot
// is a well-formed page 1 and that no insert was lost.
func concurrentCreates(t *testing.T, svc *TaskService) {
	t.Helper()
	ctx := context.Background()

	const goroutines = 20

	var wg sync.WaitGroup
	results := make([]model.TaskListResult, goroutines)
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = svc.Create(ctx, model.CreateTaskInput{Title: fmt.Sprintf("Concurrent Task %d", idx)})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "request %d should not error", i)
		assert.Equal(t, 1, results[i].Page)
		assert.LessOrEqual(t, len(results[i].Tasks), 5)
		assert.NotEmpty(t, results[i].Tasks, "snapshot %d must include at least its own task", i)
	}

	res, err := svc.List(ctx, 1, false)
	require.NoError(t, err)
	assert.Equal(t, 4, res.TotalPages)

	seen := map[int64]bool{}
	for page := 1; page <= res.TotalPages; page++ {
		res, err := svc.List(ctx, page, false)
		require.NoError(t, err)
		for _, task := range res.Tasks {
			assert.False(t, seen[task.ID], "task %d listed twice", task.ID)
			seen[task.ID] = true
		}
	}
	assert.Len(t, seen, goroutines)
}

// concurrentMarkCompleted races completions of the same task; all succeed and
// the task ends up in exactly one partition.
func concurrentMarkCompleted(t *testing.T, svc *TaskService) {
	t.Helper()
	ctx := context.Background()

	created, err := svc.Create(ctx, model.CreateTaskInput{Title: "Race me"})
	require.NoError(t, err)
	id := created.Tasks[0].ID

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, errs[idx] = svc.MarkCompleted(ctx, id)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		assert.NoError(t, err, "request %d should not error", i)
	}

	done, err := svc.List(ctx, 1, true)
	require.NoError(t, err)
	require.Len(t, done.Tasks, 1)
	assert.Equal(t, id, done.Tasks[0].ID)

	open, err := svc.List(ctx, 1, false)
	require.NoError(t, err)
	assert.Empty(t, open.Tasks)
}

func TestConcurrent_Memory(t *testing.T) {
	t.Run("creates", func(t *testing.T) {
		concurrentCreates(t, NewTaskService(repo.NewMemoryTaskRepo()))
	})
	t.Run("mark completed", func(t *testing.T) {
		concurrentMarkCompleted(t, NewTaskService(repo.NewMemoryTaskRepo()))
	})
}

func TestConcurrent_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, cleanup := testutil.SetupTestDB(t)
	defer cleanup()

	svc := NewTaskService(repo.NewTaskRepo(pool))

	t.Run("creates", func(t *testing.T) {
		testutil.TruncateTables(t, pool)
		concurrentCreates(t, svc)
	})
	t.Run("mark completed", func(t *testing.T) {
		testutil.TruncateTables(t, pool)
		concurrentMarkCompleted(t, svc)
	})
}
