// Package screen composes the task list screen: it owns the store for one
// session, keeps a row editor per task and holds the modal prompt.
package screen

import (
	"errors"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/render"
	"github.com/idilsaglam/tasks/internal/row"
	"github.com/idilsaglam/tasks/internal/store"
)

// ErrPromptOpen is returned for intents made while a prompt is shown.
var ErrPromptOpen = errors.New("a prompt is open")

type Screen struct {
	ids     store.IDSource
	store   *store.Store
	editors map[int64]*row.Editor
	prompt  *Prompt
	session uuid.UUID
	logger  *log.Logger
	views   []store.Observer
}

// New mounts an empty screen. A nil logger discards output and nil ids
// falls back to the clock.
func New(logger *log.Logger, ids store.IDSource) *Screen {
	if ids == nil {
		ids = store.NewClock()
	}
	s := &Screen{ids: ids}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
	}
	s.logger = logger
	s.mount()
	return s
}

func (s *Screen) mount() {
	s.store = store.New(s.ids)
	s.editors = map[int64]*row.Editor{}
	s.prompt = nil
	s.session = uuid.New()
	s.store.Subscribe(s.reconcile)
	for _, fn := range s.views {
		s.store.Subscribe(fn)
	}
	s.logger.Debug("screen mounted", "session", s.session)
}

// Reset remounts the screen with an empty list and a new session.
func (s *Screen) Reset() {
	old := s.session
	s.mount()
	s.logger.Info("screen reset", "old_session", old, "session", s.session)
	for _, fn := range s.views {
		fn(s.store.Tasks())
	}
}

// Subscribe registers fn for every change of the task sequence. It runs
// after the row editors have been brought up to date.
func (s *Screen) Subscribe(fn store.Observer) {
	s.views = append(s.views, fn)
	s.store.Subscribe(fn)
}

func (s *Screen) reconcile(tasks []model.Task) {
	seen := make(map[int64]struct{}, len(tasks))
	for _, t := range tasks {
		seen[t.ID] = struct{}{}
		if e, ok := s.editors[t.ID]; ok {
			e.Sync(t)
			continue
		}
		s.editors[t.ID] = row.New(t, s)
	}
	for id := range s.editors {
		if _, ok := seen[id]; !ok {
			delete(s.editors, id)
		}
	}
}

func (s *Screen) Session() uuid.UUID          { return s.session }
func (s *Screen) Tasks() []model.Task         { return s.store.Tasks() }
func (s *Screen) Count() int                  { return s.store.Len() }
func (s *Screen) Rows() []render.Row          { return render.Rows(s.store.Tasks(), s.editors) }
func (s *Screen) Editor(id int64) *row.Editor { return s.editors[id] }

// Prompt returns the open prompt, if any.
func (s *Screen) Prompt() (Prompt, bool) {
	if s.prompt == nil {
		return Prompt{}, false
	}
	return *s.prompt, true
}

// Editing returns the first row in edit mode.
func (s *Screen) Editing() (int64, bool) {
	for _, t := range s.store.Tasks() {
		if e := s.editors[t.ID]; e != nil && e.Editing() {
			return t.ID, true
		}
	}
	return 0, false
}

// SubmitNew adds title, trimmed. A duplicate opens an alert.
func (s *Screen) SubmitNew(title string) error {
	if s.prompt != nil {
		return ErrPromptOpen
	}
	title = strings.TrimSpace(title)
	task, err := s.store.Add(title)
	switch {
	case errors.Is(err, store.ErrDuplicateTitle):
		p := duplicatePrompt()
		s.prompt = &p
		s.logger.Warn("duplicate task rejected", "title", title)
		return err
	case err != nil:
		s.logger.Debug("add ignored", "title", title, "err", err)
		return err
	}
	s.logger.Info("task added", "id", task.ID, "title", task.Title, "count", s.Count())
	return nil
}

// Toggle flips a task's done flag.
func (s *Screen) Toggle(id int64) {
	if s.prompt != nil {
		return
	}
	s.logOutcome("task toggled", id, s.store.Toggle(id))
}

// Edit stores a committed title. Rows call it through row.Commands.
func (s *Screen) Edit(id int64, title string) {
	if s.prompt != nil {
		return
	}
	err := s.store.Edit(id, title)
	if err == nil {
		s.logger.Info("task edited", "id", id, "title", title)
		return
	}
	s.logOutcome("task edited", id, err)
}

// RequestRemove opens the removal confirmation for id.
func (s *Screen) RequestRemove(id int64) {
	if s.prompt != nil {
		return
	}
	if _, ok := s.store.Find(id); !ok {
		s.logger.Debug("remove request ignored", "id", id, "err", store.ErrNotFound)
		return
	}
	if e := s.editors[id]; e != nil && !e.RemoveEnabled() {
		s.logger.Debug("remove request ignored while editing", "id", id)
		return
	}
	p := removePrompt(id)
	s.prompt = &p
	s.logger.Debug("remove confirmation opened", "id", id)
}

// Answer resolves the open prompt. Only a yes to a removal changes the list.
func (s *Screen) Answer(yes bool) {
	if s.prompt == nil {
		return
	}
	p := *s.prompt
	s.prompt = nil
	if p.Kind != Confirm {
		return
	}
	if !yes {
		s.logger.Debug("remove declined", "id", p.TaskID)
		return
	}
	s.logOutcome("task removed", p.TaskID, s.store.Remove(p.TaskID))
}

// StartEdit puts the row for id into edit mode.
func (s *Screen) StartEdit(id int64) bool {
	e := s.editors[id]
	if s.prompt != nil || e == nil {
		return false
	}
	e.StartEdit()
	return true
}

func (s *Screen) SetDraft(id int64, draft string) {
	if e := s.editors[id]; e != nil && s.prompt == nil {
		e.SetDraft(draft)
	}
}

// CommitEdit commits the row's draft.
func (s *Screen) CommitEdit(id int64) error {
	if s.prompt != nil {
		return ErrPromptOpen
	}
	e := s.editors[id]
	if e == nil {
		return store.ErrNotFound
	}
	return e.Commit()
}

// CancelEdit leaves edit mode without touching the task.
func (s *Screen) CancelEdit(id int64) {
	if e := s.editors[id]; e != nil && s.prompt == nil {
		e.Cancel()
	}
}

func (s *Screen) logOutcome(msg string, id int64, err error) {
	switch {
	case err == nil:
		s.logger.Info(msg, "id", id)
	case store.IsSilent(err):
		s.logger.Debug(msg+": ignored", "id", id, "err", err)
	default:
		s.logger.Error(msg+": failed", "id", id, "err", err)
	}
}
