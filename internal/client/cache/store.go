// Package cache holds the client-side copies of both task lists.
package cache

import (
	"sync"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo/internal/model"
)

// Slot is one cached page of a partition.
type Slot struct {
	Tasks      []model.Task `json:"tasks"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

func EmptySlot() Slot {
	return Slot{Tasks: []model.Task{}, Page: 1, TotalPages: 1}
}

func (s Slot) IsEmpty() bool {
	return len(s.Tasks) == 0
}

func (s Slot) clone() Slot {
	tasks := make([]model.Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	s.Tasks = tasks
	return s
}

type Snapshot struct {
	Completed    Slot `json:"completed"`
	NotCompleted Slot `json:"notCompleted"`
}

// Persister сохраняет кэш между запусками клиента.
type Persister interface {
	Load() (Snapshot, bool, error)
	Save(Snapshot) error
}

// Store is safe for concurrent use. Each setter replaces a whole slot under
// the lock, so readers never see a page from one response and tasks from another.
type Store struct {
	mu           sync.RWMutex
	completed    Slot
	notCompleted Slot

	persister Persister
	logger    *zap.Logger
}

// New returns a store with both slots empty. p may be nil.
func New(p Persister, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		completed:    EmptySlot(),
		notCompleted: EmptySlot(),
		persister:    p,
		logger:       logger,
	}
}

// Restore replaces both slots with the persisted snapshot, if there is one.
func (s *Store) Restore() error {
	if s.persister == nil {
		return nil
	}
	snap, ok, err := s.persister.Load()
	if err != nil || !ok {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = normalize(snap.Completed)
	s.notCompleted = normalize(snap.NotCompleted)
	return nil
}

func (s *Store) Completed() Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completed.clone()
}

func (s *Store) NotCompleted() Slot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.notCompleted.clone()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Completed: s.completed.clone(), NotCompleted: s.notCompleted.clone()}
}

func (s *Store) SetCompletedCacheData(tasks []model.Task, page, totalPages int) {
	s.set(&s.completed, tasks, page, totalPages)
}

func (s *Store) SetNotCompletedCacheData(tasks []model.Task, page, totalPages int) {
	s.set(&s.notCompleted, tasks, page, totalPages)
}

func (s *Store) ResetCompleted() {
	s.SetCompletedCacheData(nil, 1, 1)
}

func (s *Store) ResetNotCompleted() {
	s.SetNotCompletedCacheData(nil, 1, 1)
}

func (s *Store) set(slot *Slot, tasks []model.Task, page, totalPages int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	*slot = Slot{Tasks: tasks, Page: page, TotalPages: totalPages}.clone()
	s.persistLocked()
}

// persistLocked runs under the write lock so saves land in setter order.
func (s *Store) persistLocked() {
	if s.persister == nil {
		return
	}
	snap := Snapshot{Completed: s.completed, NotCompleted: s.notCompleted}
	if err := s.persister.Save(snap); err != nil {
		// кэш не авторитетен, следующий успешный ответ его перезапишет
		s.logger.Warn("cache: persist failed", zap.Error(err))
	}
}

func normalize(s Slot) Slot {
	if s.Tasks == nil {
		s.Tasks = []model.Task{}
	}
	if s.Page < 1 {
		s.Page = 1
	}
	if s.TotalPages < 0 {
		s.TotalPages = 0
	}
	return s
}
