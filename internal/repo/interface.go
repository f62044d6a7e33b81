package repo

import (
	"context"

	"github.com/BuzzLyutic/todo/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами
type TaskRepository interface {
	Create(ctx context.Context, in model.CreateTaskInput) (model.Task, error)
	Update(ctx context.Context, id int64, upd model.TaskUpdate) (model.Task, error)
	Delete(ctx context.Context, id int64) error
	// List returns tasks of one partition, newest created_at first.
	List(ctx context.Context, filter model.TaskFilter, offset, limit int) ([]model.Task, error)
	Count(ctx context.Context, filter model.TaskFilter) (int, error)
	Ping(ctx context.Context) error
}
