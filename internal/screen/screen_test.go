package screen

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/row"
	"github.com/idilsaglam/tasks/internal/store"
)

func newScreen(t *testing.T) (*Screen, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel, Formatter: log.LogfmtFormatter})
	return New(logger, &store.Sequence{}), &buf
}

func TestScreenScenario(t *testing.T) {
	s, _ := newScreen(t)

	if err := s.SubmitNew("Buy milk"); err != nil {
		t.Fatalf("SubmitNew() error = %v", err)
	}
	if s.Count() != 1 {
		t.Fatalf("expected 1 task, got %d", s.Count())
	}
	task := s.Tasks()[0]
	if task.Title != "Buy milk" || task.Done {
		t.Fatalf("unexpected task %+v", task)
	}

	if err := s.SubmitNew("Buy milk"); !errors.Is(err, store.ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	p, ok := s.Prompt()
	if !ok || p.Kind != Alert {
		t.Fatalf("expected duplicate alert, got %+v ok=%t", p, ok)
	}
	s.Answer(true)
	if _, ok := s.Prompt(); ok {
		t.Fatal("expected alert dismissed")
	}
	if s.Count() != 1 {
		t.Fatalf("duplicate changed the list: %+v", s.Tasks())
	}

	s.Toggle(task.ID)
	if !s.Tasks()[0].Done {
		t.Fatal("expected task done")
	}

	s.StartEdit(task.ID)
	s.SetDraft(task.ID, "Buy oat milk")
	if err := s.CommitEdit(task.ID); err != nil {
		t.Fatalf("CommitEdit() error = %v", err)
	}
	got := s.Tasks()[0]
	if got.Title != "Buy oat milk" || !got.Done {
		t.Fatalf("unexpected task after edit %+v", got)
	}

	s.RequestRemove(task.ID)
	p, ok = s.Prompt()
	if !ok || p.Kind != Confirm || p.TaskID != task.ID {
		t.Fatalf("expected remove confirmation, got %+v ok=%t", p, ok)
	}
	s.Answer(false)
	if s.Count() != 1 {
		t.Fatal("decline must keep the task")
	}

	s.RequestRemove(task.ID)
	s.Answer(true)
	if s.Count() != 0 {
		t.Fatalf("expected empty list, got %+v", s.Tasks())
	}
	if s.Editor(task.ID) != nil {
		t.Fatal("expected editor pruned after removal")
	}
}

func TestCancelEditMakesNoMutation(t *testing.T) {
	s, _ := newScreen(t)
	_ = s.SubmitNew("Buy milk")
	id := s.Tasks()[0].ID

	var notified int
	s.Subscribe(func([]model.Task) { notified++ })
	before := s.Tasks()

	s.StartEdit(id)
	s.SetDraft(id, "changed")
	if s.Rows()[0].Text != "changed" {
		t.Fatalf("expected draft shown, got %q", s.Rows()[0].Text)
	}
	s.CancelEdit(id)

	if notified != 0 {
		t.Fatalf("expected no store mutation, got %d", notified)
	}
	if &before[0] != &s.Tasks()[0] {
		t.Fatal("expected the same snapshot")
	}
	if s.Rows()[0].Text != "Buy milk" {
		t.Fatalf("expected original title, got %q", s.Rows()[0].Text)
	}
}

func TestRemoveRefusedWhileEditing(t *testing.T) {
	s, _ := newScreen(t)
	_ = s.SubmitNew("a")
	id := s.Tasks()[0].ID
	s.StartEdit(id)
	s.RequestRemove(id)
	if _, ok := s.Prompt(); ok {
		t.Fatal("expected no prompt while editing")
	}
	if r := s.Rows()[0]; r.RemoveEnabled || !r.Editing {
		t.Fatalf("unexpected row %+v", r)
	}
	if got, ok := s.Editing(); !ok || got != id {
		t.Fatalf("expected editing %d, got %d ok=%t", id, got, ok)
	}
}

func TestBlankCommitStaysEditing(t *testing.T) {
	s, _ := newScreen(t)
	_ = s.SubmitNew("a")
	id := s.Tasks()[0].ID
	s.StartEdit(id)
	s.SetDraft(id, " ")
	if err := s.CommitEdit(id); !errors.Is(err, row.ErrBlankDraft) {
		t.Fatalf("expected ErrBlankDraft, got %v", err)
	}
	if !s.Editor(id).Editing() || s.Tasks()[0].Title != "a" {
		t.Fatal("expected unchanged task still editing")
	}
}

func TestPromptIsModal(t *testing.T) {
	s, _ := newScreen(t)
	_ = s.SubmitNew("a")
	id := s.Tasks()[0].ID
	s.RequestRemove(id)

	if err := s.SubmitNew("b"); !errors.Is(err, ErrPromptOpen) {
		t.Fatalf("expected ErrPromptOpen, got %v", err)
	}
	s.Toggle(id)
	if s.StartEdit(id) {
		t.Fatal("expected edit refused while prompt open")
	}
	if s.Count() != 1 || s.Tasks()[0].Done {
		t.Fatalf("expected no changes, got %+v", s.Tasks())
	}
	s.Answer(false)
	s.Toggle(id)
	if !s.Tasks()[0].Done {
		t.Fatal("expected toggle after prompt closed")
	}
}

func TestSubmitNewTrimsAndIgnoresBlank(t *testing.T) {
	s, _ := newScreen(t)
	if err := s.SubmitNew("   "); !errors.Is(err, store.ErrBlankTitle) {
		t.Fatalf("expected ErrBlankTitle, got %v", err)
	}
	if _, ok := s.Prompt(); ok {
		t.Fatal("blank input must not alert")
	}
	_ = s.SubmitNew("  Buy milk  ")
	if s.Tasks()[0].Title != "Buy milk" {
		t.Fatalf("expected trimmed title, got %q", s.Tasks()[0].Title)
	}
	if err := s.SubmitNew("Buy milk "); !errors.Is(err, store.ErrDuplicateTitle) {
		t.Fatalf("expected duplicate after trim, got %v", err)
	}
}

func TestStaleIDsAreSilent(t *testing.T) {
	s, buf := newScreen(t)
	s.Toggle(42)
	s.Edit(42, "x")
	s.RequestRemove(42)
	if _, ok := s.Prompt(); ok {
		t.Fatal("expected no prompt for unknown id")
	}
	if strings.Contains(buf.String(), "level=error") {
		t.Fatalf("stale ids must not log errors: %s", buf.String())
	}
}

func TestSubscribersSeeSyncedEditors(t *testing.T) {
	s, _ := newScreen(t)
	var rows int
	s.Subscribe(func(tasks []model.Task) {
		rows = len(s.Rows())
		for _, task := range tasks {
			if s.Editor(task.ID) == nil {
				t.Fatalf("missing editor for %d", task.ID)
			}
		}
	})
	_ = s.SubmitNew("a")
	_ = s.SubmitNew("b")
	if rows != 2 {
		t.Fatalf("expected 2 rows, got %d", rows)
	}
}

func TestResetRemounts(t *testing.T) {
	s, _ := newScreen(t)
	var last []model.Task
	s.Subscribe(func(tasks []model.Task) { last = tasks })
	_ = s.SubmitNew("a")
	session := s.Session()

	s.Reset()
	if s.Count() != 0 || len(last) != 0 {
		t.Fatalf("expected empty screen, count=%d last=%d", s.Count(), len(last))
	}
	if s.Session() == session {
		t.Fatal("expected a new session id")
	}
	_ = s.SubmitNew("a")
	if len(last) != 1 {
		t.Fatalf("expected subscriber kept after reset, got %d", len(last))
	}
}

func TestEditKeepsDuplicateTitles(t *testing.T) {
	s, _ := newScreen(t)
	_ = s.SubmitNew("a")
	_ = s.SubmitNew("b")
	id := s.Tasks()[1].ID
	s.StartEdit(id)
	s.SetDraft(id, "a")
	if err := s.CommitEdit(id); err != nil {
		t.Fatalf("CommitEdit() error = %v", err)
	}
	if s.Tasks()[1].Title != "a" {
		t.Fatalf("expected duplicate title on edit, got %q", s.Tasks()[1].Title)
	}
}
