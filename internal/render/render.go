// Package render projects the task sequence into row views.
// Nothing in here keeps state between calls.
package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/row"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Row is the view of one task.
type Row struct {
	ID            int64
	Pos           int // 1-based position in the sequence
	Text          string
	Done          bool
	Editing       bool
	RemoveEnabled bool
}

// Rows builds one Row per task, in order. Rows without an editor are
// shown in viewing state.
func Rows(tasks []model.Task, editors map[int64]*row.Editor) []Row {
	out := make([]Row, 0, len(tasks))
	for i, t := range tasks {
		r := Row{ID: t.ID, Pos: i + 1, Text: t.Title, Done: t.Done, RemoveEnabled: true}
		if e, ok := editors[t.ID]; ok && e.Editing() {
			r.Text = e.Draft()
			r.Editing = true
			r.RemoveEnabled = false
		}
		out = append(out, r)
	}
	return out
}

// Line renders r as a single line. input, when set, replaces the text
// (the live text input of an editing row).
func Line(r Row, selected bool, input string, th ui.Theme) string {
	box := th.Muted.Render(th.BoxUnchecked)
	text := r.Text
	if r.Done {
		box = th.Success.Render(th.BoxChecked)
		text = th.Done.Render(text)
	}
	if r.Editing && input != "" {
		text = input
	}

	action := th.SymEdit
	if r.Editing {
		action = th.SymCancel
	}
	trash := th.SymTrash
	if !r.RemoveEnabled {
		trash = th.Muted.Render(trash)
	}

	prefix := "  "
	if selected {
		prefix = th.Selected.Render("> ")
	}
	return fmt.Sprintf("%s%s %s  %s %s", prefix, box, text, th.Muted.Render(action), trash)
}

// Header is the title line with the live task count.
func Header(tasks []model.Task, th ui.Theme) string {
	done := 0
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	noun := "tasks"
	if len(tasks) == 1 {
		noun = "task"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		th.Title.Render("to.do"),
		"   ",
		fmt.Sprintf("You have %s %s", th.Accent.Render(fmt.Sprint(len(tasks))), noun),
		"   ",
		fmt.Sprintf("%s %d  %s %d", th.Success.Render(th.SymDone), done, th.Pending.Render(th.SymPending), len(tasks)-done),
	)
}

// Progress is the done/total bar shown under the header.
func Progress(tasks []model.Task, width int, th ui.Theme) string {
	done := 0
	for _, t := range tasks {
		if t.Done {
			done++
		}
	}
	return th.Muted.Render(ui.ProgressBar(done, len(tasks), width))
}

// Lines renders every row, optionally grouped into pending and done.
func Lines(rows []Row, group bool, th ui.Theme) []string {
	if len(rows) == 0 {
		return []string{th.Muted.Render("no tasks")}
	}
	if !group {
		return numbered(rows, th)
	}
	var pending, done []Row
	for _, r := range rows {
		if r.Done {
			done = append(done, r)
		} else {
			pending = append(pending, r)
		}
	}
	var lines []string
	for _, sec := range []struct {
		name string
		rows []Row
	}{{"Pending", pending}, {"Done", done}} {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, th.Accent.Render(sec.name))
		if len(sec.rows) == 0 {
			lines = append(lines, th.Muted.Render("(none)"))
			continue
		}
		lines = append(lines, numbered(sec.rows, th)...)
	}
	return lines
}

func numbered(rows []Row, th ui.Theme) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		box := th.Muted.Render(th.BoxUnchecked)
		if r.Done {
			box = th.Success.Render(th.BoxChecked)
		}
		text := r.Text
		if len([]rune(text)) > 80 {
			text = string([]rune(text)[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s", th.Muted.Render(fmt.Sprintf("%2d.", r.Pos)), box, text))
	}
	return out
}
