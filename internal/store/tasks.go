// Package store owns the ordered task sequence and its four mutations.
//
// The package-level functions are pure: they take a snapshot and return a
// new one, leaving the input untouched so callers can detect changes by
// comparing snapshots. Store wraps them with an id source and observers.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/tasks/internal/model"
)

var (
	// ErrDuplicateTitle is returned by Add when a task already has the title.
	ErrDuplicateTitle = errors.New("task already exists")
	// ErrBlankTitle is returned by Add for an empty or whitespace title.
	ErrBlankTitle = errors.New("title is blank")
	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
)

// Add appends a new pending task. Titles are compared exactly.
func Add(tasks []model.Task, id int64, title string) ([]model.Task, error) {
	if err := CanAdd(tasks, title); err != nil {
		return tasks, err
	}
	out := make([]model.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	out = append(out, model.Task{ID: id, Title: title})
	return out, nil
}

// Toggle flips the done flag of the task with id.
func Toggle(tasks []model.Task, id int64) ([]model.Task, error) {
	return update(tasks, id, func(t *model.Task) { t.Done = !t.Done })
}

// Edit replaces the title of the task with id. Unlike Add it does not
// check for duplicates.
func Edit(tasks []model.Task, id int64, title string) ([]model.Task, error) {
	return update(tasks, id, func(t *model.Task) { t.Title = title })
}

// Remove drops the task with id, keeping the order of the rest.
func Remove(tasks []model.Task, id int64) ([]model.Task, error) {
	i := IndexOf(tasks, id)
	if i < 0 {
		return tasks, fmt.Errorf("remove %d: %w", id, ErrNotFound)
	}
	out := make([]model.Task, 0, len(tasks)-1)
	out = append(out, tasks[:i]...)
	out = append(out, tasks[i+1:]...)
	return out, nil
}

// CanAdd reports why title cannot be added to tasks, if it cannot.
func CanAdd(tasks []model.Task, title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrBlankTitle
	}
	if HasTitle(tasks, title) {
		return fmt.Errorf("add %q: %w", title, ErrDuplicateTitle)
	}
	return nil
}

// HasTitle reports whether any task is titled exactly title.
func HasTitle(tasks []model.Task, title string) bool {
	for _, t := range tasks {
		if t.Title == title {
			return true
		}
	}
	return false
}

// IndexOf returns the position of the task with id, or -1.
func IndexOf(tasks []model.Task, id int64) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func update(tasks []model.Task, id int64, fn func(*model.Task)) ([]model.Task, error) {
	i := IndexOf(tasks, id)
	if i < 0 {
		return tasks, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	out := model.CloneTasks(tasks)
	fn(&out[i])
	return out, nil
}
