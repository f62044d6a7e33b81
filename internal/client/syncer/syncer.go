// Package syncer applies API results to the client cache.
package syncer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo/internal/client/cache"
	"github.com/BuzzLyutic/todo/internal/model"
)

// TaskAPI is the subset of the HTTP client the syncer needs.
type TaskAPI interface {
	CreateTask(ctx context.Context, in model.CreateTaskInput) (model.TaskListResult, error)
	MarkCompleted(ctx context.Context, id int64) (model.TaskListResult, error)
	DeleteTask(ctx context.Context, id int64) (model.TaskListResult, error)
	ListTasks(ctx context.Context, page int, completed bool) (model.TaskListResult, error)
}

// Syncer never writes to the cache when a call fails.
type Syncer struct {
	api    TaskAPI
	store  *cache.Store
	logger *zap.Logger
}

func New(api TaskAPI, store *cache.Store, logger *zap.Logger) *Syncer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Syncer{api: api, store: store, logger: logger}
}

func (s *Syncer) ListNotCompleted(ctx context.Context, page int) error {
	return s.list(ctx, page, false)
}

func (s *Syncer) ListCompleted(ctx context.Context, page int) error {
	return s.list(ctx, page, true)
}

// EnsureNotCompleted fetches the slot's current page only when the slot is empty.
func (s *Syncer) EnsureNotCompleted(ctx context.Context) error {
	return s.ensure(ctx, false)
}

func (s *Syncer) EnsureCompleted(ctx context.Context) error {
	return s.ensure(ctx, true)
}

func (s *Syncer) Create(ctx context.Context, in model.CreateTaskInput) error {
	res, err := s.api.CreateTask(ctx, in)
	if err != nil {
		return s.fail("create", err)
	}
	s.store.SetNotCompletedCacheData(res.Tasks, res.Page, res.TotalPages)
	return nil
}

// MarkCompleted refreshes the list the task left and drops the list it entered,
// since its position there is unknown until the next fetch.
func (s *Syncer) MarkCompleted(ctx context.Context, id int64) error {
	res, err := s.api.MarkCompleted(ctx, id)
	if err != nil {
		return s.fail("mark completed", err)
	}
	s.store.SetNotCompletedCacheData(res.Tasks, res.Page, res.TotalPages)
	s.store.ResetCompleted()
	return nil
}

func (s *Syncer) Delete(ctx context.Context, id int64) error {
	res, err := s.api.DeleteTask(ctx, id)
	if err != nil {
		return s.fail("delete", err)
	}
	s.store.SetNotCompletedCacheData(res.Tasks, res.Page, res.TotalPages)
	return nil
}

func (s *Syncer) NextPage(ctx context.Context, completed bool) error {
	return s.turnPage(ctx, completed, +1)
}

func (s *Syncer) PrevPage(ctx context.Context, completed bool) error {
	return s.turnPage(ctx, completed, -1)
}

// turnPage moves the page optimistically, then fetches it. A failed fetch
// puts the previous slot back.
func (s *Syncer) turnPage(ctx context.Context, completed bool, delta int) error {
	prev := s.slot(completed)
	page := clamp(prev.Page+delta, 1, prev.TotalPages)
	if page == prev.Page {
		return nil
	}

	s.set(completed, prev.Tasks, page, prev.TotalPages)
	if err := s.list(ctx, page, completed); err != nil {
		s.set(completed, prev.Tasks, prev.Page, prev.TotalPages)
		return err
	}
	return nil
}

func (s *Syncer) ensure(ctx context.Context, completed bool) error {
	slot := s.slot(completed)
	if !slot.IsEmpty() {
		return nil
	}
	return s.list(ctx, slot.Page, completed)
}

func (s *Syncer) list(ctx context.Context, page int, completed bool) error {
	res, err := s.api.ListTasks(ctx, page, completed)
	if err != nil {
		return s.fail("list", err)
	}
	s.set(completed, res.Tasks, res.Page, res.TotalPages)
	return nil
}

func (s *Syncer) slot(completed bool) cache.Slot {
	if completed {
		return s.store.Completed()
	}
	return s.store.NotCompleted()
}

func (s *Syncer) set(completed bool, tasks []model.Task, page, totalPages int) {
	if completed {
		s.store.SetCompletedCacheData(tasks, page, totalPages)
		return
	}
	s.store.SetNotCompletedCacheData(tasks, page, totalPages)
}

func (s *Syncer) fail(op string, err error) error {
	s.logger.Debug("sync failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s: %w", op, err)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
