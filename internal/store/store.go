package store

import (
	"errors"

	"github.com/idilsaglam/tasks/internal/model"
)

// Observer receives the new snapshot after every applied mutation.
type Observer func(tasks []model.Task)

// Store holds the canonical task sequence of one screen session.
// It is driven from a single event loop and does no locking.
type Store struct {
	ids       IDSource
	tasks     []model.Task
	observers []subscription
	nextObs   int
}

type subscription struct {
	key int
	fn  Observer
}

// New returns an empty store. A nil ids falls back to a Clock.
func New(ids IDSource) *Store {
	if ids == nil {
		ids = NewClock()
	}
	return &Store{
		ids:   ids,
		tasks: []model.Task{},
	}
}

// Tasks returns the current snapshot. Callers must not modify it.
func (s *Store) Tasks() []model.Task { return s.tasks }

func (s *Store) Len() int { return len(s.tasks) }

// Find returns the task with id.
func (s *Store) Find(id int64) (model.Task, bool) {
	i := IndexOf(s.tasks, id)
	if i < 0 {
		return model.Task{}, false
	}
	return s.tasks[i], true
}

// Subscribe registers fn for change notifications and returns a func
// that removes it again. Observers run in subscription order.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	key := s.nextObs
	s.nextObs++
	s.observers = append(s.observers, subscription{key: key, fn: fn})
	return func() {
		for i, sub := range s.observers {
			if sub.key == key {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Add appends title as a new task and returns it.
func (s *Store) Add(title string) (model.Task, error) {
	// Validate first so a rejected title does not consume an id.
	if err := CanAdd(s.tasks, title); err != nil {
		return model.Task{}, err
	}
	next, err := Add(s.tasks, s.ids.Next(), title)
	if err != nil {
		return model.Task{}, err
	}
	s.apply(next)
	return next[len(next)-1], nil
}

func (s *Store) Toggle(id int64) error { return s.mutate(Toggle(s.tasks, id)) }

func (s *Store) Edit(id int64, title string) error { return s.mutate(Edit(s.tasks, id, title)) }

func (s *Store) Remove(id int64) error { return s.mutate(Remove(s.tasks, id)) }

// Reset drops every task.
func (s *Store) Reset() {
	if len(s.tasks) == 0 {
		return
	}
	s.apply([]model.Task{})
}

func (s *Store) mutate(next []model.Task, err error) error {
	if err != nil {
		return err
	}
	s.apply(next)
	return nil
}

func (s *Store) apply(next []model.Task) {
	s.tasks = next
	for _, sub := range s.observers {
		sub.fn(next)
	}
}

// IsSilent reports whether err is a no-op the user never hears about.
func IsSilent(err error) bool { return errors.Is(err, ErrNotFound) }
