package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tasks/internal/render"
	"github.com/idilsaglam/tasks/internal/row"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/store"
	"github.com/idilsaglam/tasks/internal/ui"
)

// errUsage marks a malformed script line.
var errUsage = errors.New("usage")

// scriptRunner feeds one intent per line into a screen.
type scriptRunner struct {
	screen *screen.Screen
	theme  ui.Theme
	group  bool
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

func (r *scriptRunner) run(ctx context.Context, in io.Reader) int {
	sc := bufio.NewScanner(in)
	n := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			r.theme.Fail(r.errOut, "script: "+err.Error())
			return 1
		}
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.exec(line); err != nil {
			r.theme.Fail(r.errOut, fmt.Sprintf("line %d: %v", n, err))
			if errors.Is(err, errUsage) {
				return 2
			}
			return 1
		}
	}
	if err := sc.Err(); err != nil {
		r.theme.Fail(r.errOut, "read script: "+err.Error())
		return 1
	}
	return 0
}

func (r *scriptRunner) exec(line string) error {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	r.logger.Debug("script intent", "cmd", cmd, "args", len(args))

	if p, open := r.screen.Prompt(); open {
		switch cmd {
		case "yes", "no", "ok":
			r.screen.Answer(cmd != "no")
			return nil
		}
		return fmt.Errorf("%w: prompt %q is open, answer yes or no", errUsage, p.Title)
	}

	switch cmd {
	case "add":
		if len(args) == 0 {
			return fmt.Errorf("%w: add <title...>", errUsage)
		}
		err := r.screen.SubmitNew(restOf(line, 1))
		switch {
		case errors.Is(err, store.ErrDuplicateTitle):
			r.showPrompt()
			return nil
		case err != nil:
			return err
		}
		r.theme.OK(r.out, "added")
		return nil

	case "toggle":
		id, err := r.position(cmd, args, 1)
		if err != nil {
			return err
		}
		r.screen.Toggle(id)
		r.theme.OK(r.out, "toggled")
		return nil

	case "edit":
		if len(args) < 2 {
			return fmt.Errorf("%w: edit <n> <title...>", errUsage)
		}
		id, err := r.position(cmd, args[:1], 1)
		if err != nil {
			return err
		}
		r.screen.StartEdit(id)
		r.screen.SetDraft(id, restOf(line, 2))
		return r.commit(id)

	case "begin":
		id, err := r.position(cmd, args, 1)
		if err != nil {
			return err
		}
		r.screen.StartEdit(id)
		return nil

	case "draft":
		if len(args) < 1 {
			return fmt.Errorf("%w: draft <n> <text...>", errUsage)
		}
		id, err := r.position(cmd, args[:1], 1)
		if err != nil {
			return err
		}
		if e := r.screen.Editor(id); e == nil || !e.Editing() {
			return fmt.Errorf("%w: row %s is not being edited", errUsage, args[0])
		}
		r.screen.SetDraft(id, restOf(line, 2))
		return nil

	case "commit":
		id, err := r.position(cmd, args, 1)
		if err != nil {
			return err
		}
		return r.commit(id)

	case "cancel":
		id, err := r.position(cmd, args, 1)
		if err != nil {
			return err
		}
		r.screen.CancelEdit(id)
		return nil

	case "rm":
		id, err := r.position(cmd, args, 1)
		if err != nil {
			return err
		}
		r.screen.RequestRemove(id)
		if _, open := r.screen.Prompt(); !open {
			return fmt.Errorf("%w: row %s is being edited", errUsage, args[0])
		}
		r.showPrompt()
		return nil

	case "yes", "no", "ok":
		return fmt.Errorf("%w: no prompt is open", errUsage)

	case "ls":
		r.list()
		return nil

	case "reset":
		r.screen.Reset()
		r.theme.OK(r.out, "reset")
		return nil
	}
	return fmt.Errorf("%w: unknown intent %q", errUsage, cmd)
}

func (r *scriptRunner) commit(id int64) error {
	err := r.screen.CommitEdit(id)
	if errors.Is(err, row.ErrBlankDraft) {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if err != nil {
		return err
	}
	r.theme.OK(r.out, "edited")
	return nil
}

// position resolves the 1-based row number in args to a task id.
func (r *scriptRunner) position(cmd string, args []string, want int) (int64, error) {
	if len(args) != want {
		return 0, fmt.Errorf("%w: %s <n>", errUsage, cmd)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s: not a number: %s", errUsage, cmd, args[0])
	}
	tasks := r.screen.Tasks()
	if n < 1 || n > len(tasks) {
		return 0, fmt.Errorf("%w: position out of range: have %d, got %d", errUsage, len(tasks), n)
	}
	return tasks[n-1].ID, nil
}

func (r *scriptRunner) showPrompt() {
	p, ok := r.screen.Prompt()
	if !ok {
		return
	}
	answer := "[ok]"
	if p.Kind == screen.Confirm {
		answer = "[yes/no]"
	}
	fmt.Fprintln(r.out, r.theme.Pending.Render("? "+p.Title+" "+p.Message+" "+answer))
}

// list prints the framed screen: header, progress and rows.
func (r *scriptRunner) list() {
	tasks := r.screen.Tasks()
	lines := []string{
		render.Header(tasks, r.theme),
		render.Progress(tasks, 28, r.theme),
		"",
	}
	lines = append(lines, render.Lines(r.screen.Rows(), r.group, r.theme)...)
	lines = append(lines, "", r.theme.Muted.Render("Tip: add with `add Buy milk`"))
	fmt.Fprintln(r.out, r.theme.Panel(lines))
}

// restOf returns line after its first skip fields, inner spacing intact.
func restOf(line string, skip int) string {
	rest := strings.TrimSpace(line)
	for i := 0; i < skip; i++ {
		j := strings.IndexAny(rest, " \t")
		if j < 0 {
			return ""
		}
		rest = strings.TrimLeft(rest[j:], " \t")
	}
	return rest
}
