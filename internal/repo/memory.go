package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/BuzzLyutic/todo/internal/model"
)

// MemoryTaskRepo keeps tasks in process memory. Used for local runs
// (STORE_DRIVER=memory) and tests that need the whole stack without a database.
type MemoryTaskRepo struct {
	mu     sync.RWMutex
	tasks  map[int64]model.Task
	nextID int64
	now    func() time.Time
}

var _ TaskRepository = (*MemoryTaskRepo)(nil)

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{
		tasks: make(map[int64]model.Task),
		now:   time.Now,
	}
}

// WithClock replaces the time source. Tests use it to control created_at ordering.
func (r *MemoryTaskRepo) WithClock(now func() time.Time) *MemoryTaskRepo {
	r.now = now
	return r
}

func (r *MemoryTaskRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryTaskRepo) Create(ctx context.Context, in model.CreateTaskInput) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	now := r.now().UTC()
	t := model.Task{
		ID:          r.nextID,
		Title:       in.Title,
		Description: copyString(in.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.tasks[t.ID] = t
	return cloneTask(t), nil
}

func (r *MemoryTaskRepo) Update(ctx context.Context, id int64, upd model.TaskUpdate) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrorNotFound
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}
	t.UpdatedAt = r.now().UTC()
	r.tasks[id] = t
	return cloneTask(t), nil
}

func (r *MemoryTaskRepo) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrorNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *MemoryTaskRepo) List(ctx context.Context, filter model.TaskFilter, offset, limit int) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	matching := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if t.Completed == filter.Completed {
			matching = append(matching, t)
		}
	}
	sort.Slice(matching, func(i, j int) bool {
		if !matching[i].CreatedAt.Equal(matching[j].CreatedAt) {
			return matching[i].CreatedAt.After(matching[j].CreatedAt)
		}
		return matching[i].ID > matching[j].ID
	})

	tasks := make([]model.Task, 0, limit)
	if offset < 0 || offset >= len(matching) {
		return tasks, nil
	}
	end := min(offset+limit, len(matching))
	for _, t := range matching[offset:end] {
		tasks = append(tasks, cloneTask(t))
	}
	return tasks, nil
}

func (r *MemoryTaskRepo) Count(ctx context.Context, filter model.TaskFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, t := range r.tasks {
		if t.Completed == filter.Completed {
			n++
		}
	}
	return n, nil
}

func cloneTask(t model.Task) model.Task {
	t.Description = copyString(t.Description)
	return t
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
