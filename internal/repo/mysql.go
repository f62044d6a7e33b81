package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/BuzzLyutic/todo/internal/model"
	"github.com/BuzzLyutic/todo/migrations"
)

// MySQLTaskRepo stores tasks in MySQL through sqlx. The DSN must carry
// parseTime=true, and multiStatements=true when Migrate is used.
type MySQLTaskRepo struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Completed   bool           `db:"completed"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

var _ TaskRepository = (*MySQLTaskRepo)(nil)

func ConnectMySQL(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("mysql", dsn)
}

func NewMySQLTaskRepo(db *sqlx.DB) *MySQLTaskRepo {
	return &MySQLTaskRepo{db: db}
}

func (r *MySQLTaskRepo) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, migrations.MySQL)
	return err
}

func (r *MySQLTaskRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *MySQLTaskRepo) Create(ctx context.Context, in model.CreateTaskInput) (model.Task, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (title, description, completed) VALUES (?, ?, FALSE)",
		in.Title, in.Description,
	)
	if err != nil {
		return model.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	return r.get(ctx, id)
}

func (r *MySQLTaskRepo) Update(ctx context.Context, id int64, upd model.TaskUpdate) (model.Task, error) {
	// MySQL reports changed rows, not matched ones, so existence is checked by the re-read.
	_, err := r.db.ExecContext(ctx,
		"UPDATE tasks SET completed = COALESCE(?, completed), updated_at = CURRENT_TIMESTAMP(6) WHERE id = ?",
		upd.Completed, id,
	)
	if err != nil {
		return model.Task{}, err
	}
	return r.get(ctx, id)
}

func (r *MySQLTaskRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *MySQLTaskRepo) List(ctx context.Context, filter model.TaskFilter, offset, limit int) ([]model.Task, error) {
	var rows []taskRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE completed = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		filter.Completed, limit, offset,
	)
	if err != nil {
		return nil, err
	}

	tasks := make([]model.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRow(row))
	}
	return tasks, nil
}

func (r *MySQLTaskRepo) Count(ctx context.Context, filter model.TaskFilter) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM tasks WHERE completed = ?", filter.Completed)
	return n, err
}

func (r *MySQLTaskRepo) get(ctx context.Context, id int64) (model.Task, error) {
	var row taskRow
	err := r.db.GetContext(ctx, &row, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Task{}, ErrorNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return mapTaskRow(row), nil
}

func mapTaskRow(row taskRow) model.Task {
	t := model.Task{
		ID:        row.ID,
		Title:     row.Title,
		Completed: row.Completed,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.Description.Valid {
		value := row.Description.String
		t.Description = &value
	}
	return t
}
