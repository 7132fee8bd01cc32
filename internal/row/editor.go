// Package row holds the per-row edit state machine.
package row

import (
	"errors"
	"strings"

	"github.com/idilsaglam/tasks/internal/model"
)

// ErrBlankDraft is returned by Commit when the draft is empty.
var ErrBlankDraft = errors.New("title cannot be empty")

// Commands is what a row may ask of its owner.
type Commands interface {
	Toggle(id int64)
	Edit(id int64, title string)
	RequestRemove(id int64)
}

type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// Editor tracks one row. The draft only reaches the task on Commit.
type Editor struct {
	task  model.Task
	cmds  Commands
	state State
	draft string
}

func New(task model.Task, cmds Commands) *Editor {
	return &Editor{task: task, cmds: cmds, draft: task.Title}
}

func (e *Editor) ID() int64           { return e.task.ID }
func (e *Editor) Task() model.Task    { return e.task }
func (e *Editor) State() State        { return e.state }
func (e *Editor) Editing() bool       { return e.state == Editing }
func (e *Editor) Focused() bool       { return e.state == Editing }
func (e *Editor) RemoveEnabled() bool { return e.state != Editing }

// Text is what the row displays: the draft while editing, else the title.
func (e *Editor) Text() string {
	if e.state == Editing {
		return e.draft
	}
	return e.task.Title
}

// Sync refreshes the row's copy of its task. A draft in progress is kept.
func (e *Editor) Sync(task model.Task) {
	e.task = task
	if e.state == Viewing {
		e.draft = task.Title
	}
}

// StartEdit enters Editing with the draft set to the current title.
func (e *Editor) StartEdit() {
	if e.state == Editing {
		return
	}
	e.state = Editing
	e.draft = e.task.Title
}

// SetDraft replaces the draft. Ignored outside Editing.
func (e *Editor) SetDraft(s string) {
	if e.state != Editing {
		return
	}
	e.draft = s
}

func (e *Editor) Draft() string { return e.draft }

// Commit sends the draft to the owner and returns to Viewing.
func (e *Editor) Commit() error {
	if e.state != Editing {
		return nil
	}
	if strings.TrimSpace(e.draft) == "" {
		return ErrBlankDraft
	}
	title := e.draft
	e.state = Viewing
	e.cmds.Edit(e.task.ID, title)
	return nil
}

// Cancel drops the draft without touching the task.
func (e *Editor) Cancel() {
	e.state = Viewing
	e.draft = e.task.Title
}

func (e *Editor) Toggle() { e.cmds.Toggle(e.task.ID) }

// RequestRemove asks for removal unless the row is being edited.
func (e *Editor) RequestRemove() bool {
	if !e.RemoveEnabled() {
		return false
	}
	e.cmds.RequestRemove(e.task.ID)
	return true
}
