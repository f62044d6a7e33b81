package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/BuzzLyutic/todo/internal/model"
	"github.com/BuzzLyutic/todo/internal/pagination"
	"github.com/BuzzLyutic/todo/internal/repo"
)

var (
	// ErrStoreUnavailable wraps every store failure other than a missing task.
	ErrStoreUnavailable = errors.New("store unavailable")
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

// Create inserts a not-completed task and returns page 1 of the not-completed
// partition, whatever page the caller was looking at.
func (s *TaskService) Create(ctx context.Context, in model.CreateTaskInput) (model.TaskListResult, error) {
	if _, err := s.repo.Create(ctx, in); err != nil {
		return model.TaskListResult{}, storeError(err)
	}
	return s.List(ctx, 1, false)
}

func (s *TaskService) MarkCompleted(ctx context.Context, id int64) (model.TaskListResult, error) {
	completed := true
	if _, err := s.repo.Update(ctx, id, model.TaskUpdate{Completed: &completed}); err != nil {
		return model.TaskListResult{}, storeError(err)
	}
	return s.List(ctx, 1, false)
}

func (s *TaskService) Delete(ctx context.Context, id int64) (model.TaskListResult, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return model.TaskListResult{}, storeError(err)
	}
	return s.List(ctx, 1, false)
}

// List reads one page of a partition. The requested page is echoed back as is,
// so a page past the end gives no tasks and the real TotalPages.
func (s *TaskService) List(ctx context.Context, page int, completed bool) (model.TaskListResult, error) {
	filter := model.TaskFilter{Completed: completed}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return model.TaskListResult{}, storeError(err)
	}

	window := pagination.ForPage(page)
	tasks, err := s.repo.List(ctx, filter, window.Offset, window.Limit)
	if err != nil {
		return model.TaskListResult{}, storeError(err)
	}
	if tasks == nil {
		tasks = []model.Task{}
	}

	return model.TaskListResult{
		Tasks:      tasks,
		TotalPages: pagination.TotalPages(total),
		Page:       page,
	}, nil
}

func (s *TaskService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func storeError(err error) error {
	if errors.Is(err, repo.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
