package row

import (
	"errors"
	"testing"

	"github.com/idilsaglam/tasks/internal/model"
)

type recorder struct {
	toggles []int64
	edits   []string
	removes []int64
}

func (r *recorder) Toggle(id int64)             { r.toggles = append(r.toggles, id) }
func (r *recorder) Edit(id int64, title string) { r.edits = append(r.edits, title) }
func (r *recorder) RequestRemove(id int64)      { r.removes = append(r.removes, id) }

func newEditor() (*Editor, *recorder) {
	rec := &recorder{}
	return New(model.Task{ID: 5, Title: "Buy milk"}, rec), rec
}

func TestEditorStartsViewing(t *testing.T) {
	e, _ := newEditor()
	if e.State() != Viewing || e.Focused() || !e.RemoveEnabled() {
		t.Fatalf("unexpected initial state %s", e.State())
	}
	if e.Text() != "Buy milk" {
		t.Fatalf("unexpected text %q", e.Text())
	}
}

func TestEditorCommitSendsDraft(t *testing.T) {
	e, rec := newEditor()
	e.StartEdit()
	if !e.Editing() || !e.Focused() {
		t.Fatal("expected editing with focus")
	}
	if e.Draft() != "Buy milk" {
		t.Fatalf("expected draft initialised to title, got %q", e.Draft())
	}
	e.SetDraft("Buy oat milk")
	if e.Text() != "Buy oat milk" {
		t.Fatalf("expected draft displayed, got %q", e.Text())
	}
	if err := e.Commit(); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if e.Editing() || e.Focused() {
		t.Fatal("expected viewing after commit")
	}
	if len(rec.edits) != 1 || rec.edits[0] != "Buy oat milk" {
		t.Fatalf("unexpected edits %v", rec.edits)
	}
}

func TestEditorCancelRestoresTitle(t *testing.T) {
	e, rec := newEditor()
	e.StartEdit()
	e.SetDraft("something else")
	e.Cancel()
	if e.Editing() {
		t.Fatal("expected viewing after cancel")
	}
	if e.Text() != "Buy milk" || e.Draft() != "Buy milk" {
		t.Fatalf("expected original title, got text=%q draft=%q", e.Text(), e.Draft())
	}
	if len(rec.edits) != 0 {
		t.Fatalf("cancel must not edit, got %v", rec.edits)
	}
}

func TestEditorBlankDraftStaysEditing(t *testing.T) {
	e, rec := newEditor()
	e.StartEdit()
	e.SetDraft("   ")
	if err := e.Commit(); !errors.Is(err, ErrBlankDraft) {
		t.Fatalf("expected ErrBlankDraft, got %v", err)
	}
	if !e.Editing() || len(rec.edits) != 0 {
		t.Fatal("expected still editing with no edit issued")
	}
}

func TestEditorRemoveDisabledWhileEditing(t *testing.T) {
	e, rec := newEditor()
	e.StartEdit()
	if e.RemoveEnabled() {
		t.Fatal("expected remove disabled")
	}
	if e.RequestRemove() {
		t.Fatal("expected remove refused")
	}
	e.Cancel()
	if !e.RequestRemove() {
		t.Fatal("expected remove accepted")
	}
	if len(rec.removes) != 1 || rec.removes[0] != 5 {
		t.Fatalf("unexpected removes %v", rec.removes)
	}
}

func TestEditorToggleWhileEditing(t *testing.T) {
	e, rec := newEditor()
	e.StartEdit()
	e.Toggle()
	if len(rec.toggles) != 1 || !e.Editing() {
		t.Fatalf("expected toggle forwarded without leaving edit, toggles=%v", rec.toggles)
	}
}

func TestEditorSyncKeepsDraft(t *testing.T) {
	e, _ := newEditor()
	e.Sync(model.Task{ID: 5, Title: "Renamed"})
	if e.Text() != "Renamed" {
		t.Fatalf("expected synced title, got %q", e.Text())
	}
	e.StartEdit()
	e.SetDraft("draft")
	e.Sync(model.Task{ID: 5, Title: "Other", Done: true})
	if e.Draft() != "draft" {
		t.Fatalf("expected draft kept, got %q", e.Draft())
	}
	if !e.Task().Done {
		t.Fatal("expected task snapshot refreshed")
	}
}

func TestSetDraftIgnoredWhileViewing(t *testing.T) {
	e, _ := newEditor()
	e.SetDraft("x")
	if e.Draft() != "Buy milk" {
		t.Fatalf("expected draft untouched, got %q", e.Draft())
	}
}
