// Package tui is the interactive terminal front end of the task screen.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/tasks/internal/model"
	"github.com/idilsaglam/tasks/internal/render"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/store"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Options tune the interactive screen.
type Options struct {
	Theme     ui.Theme
	CharLimit int
	AltScreen bool
}

// changes counts store notifications. It is shared by every copy of the
// model so Update can tell a mutation happened.
type changes struct {
	n    int
	seen int
}

type Model struct {
	screen  *screen.Screen
	theme   ui.Theme
	keys    keyMap
	help    help.Model
	changes *changes

	// Add input
	adding bool
	input  textinput.Model

	// Inline edit of the selected row
	editing bool
	editID  int64
	draft   textinput.Model

	cursor int
	pager  paginator.Model
	status string // last validation message, cleared on the next key

	width, height int
}

// New builds the model around scr and subscribes to its changes.
func New(scr *screen.Screen, opt Options) Model {
	if opt.Theme.Name == "" {
		opt.Theme = ui.Default()
	}
	if opt.CharLimit <= 0 {
		opt.CharLimit = 200
	}

	ch := &changes{}
	scr.Subscribe(func([]model.Task) { ch.n++ })

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Add new task..."
	in.CharLimit = opt.CharLimit

	draft := textinput.New()
	draft.Prompt = ""
	draft.CharLimit = opt.CharLimit

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 10
	p.ActiveDot = opt.Theme.Accent.Render("•")
	p.InactiveDot = opt.Theme.Muted.Render("•")

	h := help.New()
	h.Styles.ShortKey = opt.Theme.Help
	h.Styles.ShortDesc = opt.Theme.Help

	m := Model{
		screen:  scr,
		theme:   opt.Theme,
		keys:    defaultKeys(),
		help:    h,
		changes: ch,
		input:   in,
		draft:   draft,
		pager:   p,
		width:   80,
		height:  24,
	}
	m.refresh()
	return m
}

// Run starts the program and blocks until the user quits.
func Run(ctx context.Context, scr *screen.Screen, opt Options) error {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opt.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(New(scr, opt), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
		m.help.Width = size.Width
		m.refresh()
		return m, nil
	}

	km, isKey := msg.(tea.KeyMsg)
	if isKey {
		m.status = ""
		if km.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch {
	case !isKey:
		cmd = m.updateInputs(msg)
	case m.promptOpen():
		m.updatePrompt(km)
	case m.adding:
		cmd = m.updateAdding(km)
	case m.editing:
		cmd = m.updateEditing(km)
	default:
		m, cmd = m.updateBrowsing(km)
	}

	if m.changes.n != m.changes.seen {
		m.changes.seen = m.changes.n
		m.refresh()
	}
	return m, cmd
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case m.adding:
		m.input, cmd = m.input.Update(msg)
	case m.editing:
		m.draft, cmd = m.draft.Update(msg)
	}
	return cmd
}

func (m *Model) updatePrompt(km tea.KeyMsg) {
	switch {
	case key.Matches(km, m.keys.Yes):
		m.screen.Answer(true)
	case key.Matches(km, m.keys.No):
		m.screen.Answer(false)
	}
}

func (m *Model) updateAdding(km tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(km, m.keys.Submit):
		err := m.screen.SubmitNew(m.input.Value())
		switch {
		case errors.Is(err, store.ErrBlankTitle):
			m.status = "Title cannot be empty"
		case err != nil:
			// The duplicate alert is up; keep the text so it can be fixed.
		default:
			m.input.SetValue("")
			m.input.Blur()
			m.adding = false
			m.cursor = m.screen.Count() - 1
		}
		return nil
	case key.Matches(km, m.keys.Cancel):
		m.input.SetValue("")
		m.input.Blur()
		m.adding = false
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(km)
	return cmd
}

func (m *Model) updateEditing(km tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(km, m.keys.Submit):
		if err := m.screen.CommitEdit(m.editID); err != nil {
			m.status = titleCase(err.Error())
			return nil
		}
		m.stopEditing()
		return nil
	case key.Matches(km, m.keys.Cancel):
		m.screen.CancelEdit(m.editID)
		m.stopEditing()
		return nil
	}
	var cmd tea.Cmd
	m.draft, cmd = m.draft.Update(km)
	m.screen.SetDraft(m.editID, m.draft.Value())
	return cmd
}

func (m *Model) stopEditing() {
	m.editing = false
	m.editID = 0
	m.draft.SetValue("")
	m.draft.Blur()
}

func (m Model) updateBrowsing(km tea.KeyMsg) (Model, tea.Cmd) {
	tasks := m.screen.Tasks()
	var selected *model.Task
	if m.cursor >= 0 && m.cursor < len(tasks) {
		selected = &tasks[m.cursor]
	}

	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(km, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, m.keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(km, m.keys.PrevPage):
		m.cursor = max(0, m.cursor-m.pager.PerPage)
	case key.Matches(km, m.keys.NextPage):
		m.cursor = min(len(tasks)-1, m.cursor+m.pager.PerPage)
	case key.Matches(km, m.keys.Add):
		m.adding = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case selected == nil:
		// Nothing below applies to an empty list.
	case key.Matches(km, m.keys.Toggle):
		m.screen.Toggle(selected.ID)
	case key.Matches(km, m.keys.Edit):
		if !m.screen.StartEdit(selected.ID) {
			break
		}
		m.editing = true
		m.editID = selected.ID
		m.draft.SetValue(m.screen.Editor(selected.ID).Draft())
		m.draft.CursorEnd()
		return m, m.draft.Focus()
	case key.Matches(km, m.keys.Remove):
		m.screen.RequestRemove(selected.ID)
	}
	m.refresh()
	return m, nil
}

// refresh clamps the cursor and re-derives pagination from the list.
func (m *Model) refresh() {
	n := m.screen.Count()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	// header, progress, input box, blank lines, pager, help
	perPage := m.height - 12
	if perPage < 1 {
		perPage = 1
	}
	m.pager.PerPage = perPage
	m.pager.SetTotalPages(n)
	m.pager.Page = m.cursor / perPage
}

func (m Model) promptOpen() bool {
	_, ok := m.screen.Prompt()
	return ok
}

func (m Model) View() string {
	th := m.theme
	tasks := m.screen.Tasks()

	lines := []string{
		render.Header(tasks, th),
		render.Progress(tasks, 28, th),
		"",
		m.inputView(),
		"",
	}

	rows := m.screen.Rows()
	if len(rows) == 0 {
		lines = append(lines, th.Muted.Render("No tasks yet. Press a to add one."))
	} else {
		start, end := m.pager.GetSliceBounds(len(rows))
		for i := start; i < end; i++ {
			input := ""
			if m.editing && rows[i].ID == m.editID {
				input = m.draft.View()
			}
			lines = append(lines, render.Line(rows[i], i == m.cursor, input, th))
		}
		if m.pager.TotalPages > 1 {
			lines = append(lines, "", m.pager.View())
		}
	}

	if m.status != "" {
		lines = append(lines, "", th.Error.Render(m.status))
	}

	if p, ok := m.screen.Prompt(); ok {
		lines = append(lines, "", m.promptView(p), "", m.help.View(promptKeys{m.keys}))
	} else if m.adding || m.editing {
		lines = append(lines, "", m.help.View(inputKeys{m.keys}))
	} else {
		lines = append(lines, "", m.help.View(m.keys))
	}

	frame := th.Frame()
	if m.width > 0 {
		frame = frame.MaxWidth(m.width)
	}
	return frame.Render(strings.Join(lines, "\n"))
}

func (m Model) inputView() string {
	box := lipgloss.NewStyle().
		Border(m.theme.Border).
		BorderForeground(m.theme.BorderColor).
		Padding(0, 1)
	if !m.adding {
		return box.Render(m.theme.Muted.Render("Add new task... (a)"))
	}
	return box.Render(m.input.View())
}

func (m Model) promptView(p screen.Prompt) string {
	body := m.theme.Title.Render(p.Title) + "\n" + p.Message
	switch p.Kind {
	case screen.Confirm:
		body += "\n\n" + fmt.Sprintf("%s  %s", m.theme.Error.Render("[y] Yes"), m.theme.Muted.Render("[n] No"))
	default:
		body += "\n\n" + m.theme.Accent.Render("[enter] OK")
	}
	return m.theme.Frame().BorderForeground(lipgloss.Color("9")).Render(body)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
