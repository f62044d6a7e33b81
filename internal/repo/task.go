package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/todo/internal/model"
	"github.com/BuzzLyutic/todo/migrations"
)

var ErrorNotFound = errors.New("not found")

const taskColumns = `id, title, description, completed, created_at, updated_at`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

var _ TaskRepository = (*TaskRepo)(nil)

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

// Migrate applies the tasks schema. Safe to run on every start.
func (r *TaskRepo) Migrate(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, migrations.Postgres)
	return err
}

func (r *TaskRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *TaskRepo) Create(ctx context.Context, in model.CreateTaskInput) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, completed)
		VALUES ($1, $2, FALSE)
		RETURNING `+taskColumns,
		in.Title, in.Description,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, r.mapError(err)
}

func (r *TaskRepo) Update(ctx context.Context, id int64, upd model.TaskUpdate) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET completed = COALESCE($2::boolean, completed), updated_at = now()
		WHERE id = $1
		RETURNING `+taskColumns,
		id, upd.Completed,
	).Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
	return t, r.mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter, offset, limit int) ([]model.Task, error) {
	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE completed = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, filter.Completed, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0, limit)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Count(ctx context.Context, filter model.TaskFilter) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks WHERE completed = $1`, filter.Completed).Scan(&n)
	return n, err
}

func (r *TaskRepo) mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrorNotFound
	}
	return err
}
