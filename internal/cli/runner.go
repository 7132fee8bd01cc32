package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/idilsaglam/tasks/internal/config"
	"github.com/idilsaglam/tasks/internal/logging"
	"github.com/idilsaglam/tasks/internal/screen"
	"github.com/idilsaglam/tasks/internal/store"
	"github.com/idilsaglam/tasks/internal/store/snapshot"
	"github.com/idilsaglam/tasks/internal/tui"
	"github.com/idilsaglam/tasks/internal/ui"
)

// Version is set at build time.
var Version = "dev"

// IO bundles the streams a command may touch.
type IO struct {
	In       io.Reader
	Out, Err io.Writer
}

// Options tune behavior from root flags and config.
type Options struct {
	Config config.Config
	Theme  ui.Theme
	JSON   bool           // dump the final task list as JSON
	IDs    store.IDSource // nil means the clock
	runTUI func(context.Context, *screen.Screen, tui.Options) error
}

// Main parses root flags, loads config and dispatches. It returns an exit
// code (0 ok, 1 error, 2 usage).
func Main(ctx context.Context, args []string, streams IO) int {
	if streams.In == nil {
		streams.In = strings.NewReader("")
	}
	if streams.Out == nil {
		streams.Out = io.Discard
	}
	if streams.Err == nil {
		streams.Err = io.Discard
	}

	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(streams.Err)
	var (
		configPath string
		themeName  string
		logLevel   string
		dumpJSON   bool
		group      bool
		showVer    bool
	)
	fs.StringVar(&configPath, "config", "", "path to config TOML (or $TASKS_CONFIG)")
	fs.StringVar(&themeName, "theme", "", "theme: classic | neon | mono")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug | info | warn | error")
	fs.BoolVar(&dumpJSON, "json", false, "print the final task list as JSON on exit")
	fs.BoolVar(&group, "group", false, "group printed lists by pending/done")
	fs.BoolVar(&showVer, "version", false, "show version")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	theme := ui.Default()
	if showVer {
		fmt.Fprintf(streams.Out, "tasks %s\n", Version)
		return 0
	}

	if configPath == "" {
		configPath = strings.TrimSpace(os.Getenv("TASKS_CONFIG"))
	}
	cfg, err := config.Load(configPath, config.Default())
	if err != nil {
		theme.Fail(streams.Err, fmt.Sprintf("load config %q: %v", configPath, err))
		return 1
	}
	if themeName != "" {
		cfg.UI.Theme = themeName
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if group {
		cfg.UI.Group = true
	}
	if err := cfg.Validate(); err != nil {
		theme.Fail(streams.Err, err.Error())
		return 2
	}
	if theme, err = ui.ThemeByName(cfg.UI.Theme); err != nil {
		ui.Default().Fail(streams.Err, err.Error())
		return 2
	}

	return Run(ctx, fs.Args(), Options{Config: cfg, Theme: theme, JSON: dumpJSON}, streams)
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, opt Options, streams IO) int {
	if opt.Theme.Name == "" {
		opt.Theme = ui.Default()
	}
	cmd, a := "tui", []string(nil)
	if len(args) > 0 {
		cmd, a = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(streams.Out)
		return 0

	case "version":
		fmt.Fprintf(streams.Out, "tasks %s\n", Version)
		return 0

	case "tui":
		if len(a) != 0 {
			opt.Theme.Fail(streams.Err, "usage: tasks tui")
			return 2
		}
		return doTUI(ctx, opt, streams)

	case "script":
		if len(a) > 1 {
			opt.Theme.Fail(streams.Err, "usage: tasks script [file|-]")
			return 2
		}
		src := "-"
		if len(a) == 1 {
			src = a[0]
		}
		return doScript(ctx, src, opt, streams)
	}

	opt.Theme.Fail(streams.Err, "unknown subcommand: "+cmd)
	fmt.Fprintln(streams.Err)
	PrintHelp(streams.Err)
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tasks - a one-screen to-do list

Usage:
  tasks [flags] [subcommand]

Subcommands:
  tui                Open the interactive screen (default)
  script [file|-]    Replay intents from a file or stdin, one per line
  version            Print the version

Script intents (<n> is a 1-based row position):
  add <title...>         Add a task
  toggle <n>             Toggle done
  edit <n> <title...>    Edit and commit in one step
  begin <n>              Enter edit mode
  draft <n> <text...>    Change the draft
  commit <n>             Commit the draft
  cancel <n>             Leave edit mode, dropping the draft
  rm <n>                 Ask to remove (answer with yes/no)
  yes | no               Answer the open prompt
  ls                     Print the list
  reset                  Start over with an empty list

Flags:
  -config <path>     Config TOML (default $TASKS_CONFIG)
  -theme <name>      classic | neon | mono
  -log-level <lvl>   debug | info | warn | error
  -json              Print the final list as JSON on exit
  -group             Group printed lists by pending/done
`)
}

// -------------- subcommand impls ----------------

func doTUI(ctx context.Context, opt Options, streams IO) int {
	// The terminal belongs to the UI; logs only go to a configured file.
	logger, closeLog, err := logging.New(io.Discard, opt.Config.Logging, "tasks")
	if err != nil {
		opt.Theme.Fail(streams.Err, err.Error())
		return 1
	}
	defer closeLog()

	scr := screen.New(logger, opt.IDs)
	logger.Info("tui start", "session", scr.Session())

	run := opt.runTUI
	if run == nil {
		run = tui.Run
	}
	err = run(ctx, scr, tui.Options{
		Theme:     opt.Theme,
		CharLimit: opt.Config.UI.CharLimit,
		AltScreen: opt.Config.UI.AltScreen,
	})
	if err != nil {
		logger.Error("tui failed", "err", err)
		opt.Theme.Fail(streams.Err, "tui: "+err.Error())
		return 1
	}
	logger.Info("tui exit", "session", scr.Session(), "count", scr.Count())

	if opt.JSON {
		if err := snapshot.Write(streams.Out, scr.Tasks()); err != nil {
			opt.Theme.Fail(streams.Err, err.Error())
			return 1
		}
	}
	return 0
}

func doScript(ctx context.Context, src string, opt Options, streams IO) int {
	in := streams.In
	if src != "-" {
		f, err := os.Open(src)
		if err != nil {
			opt.Theme.Fail(streams.Err, "script: "+err.Error())
			return 1
		}
		defer f.Close()
		in = f
	}

	logger, closeLog, err := logging.New(streams.Err, opt.Config.Logging, "tasks")
	if err != nil {
		opt.Theme.Fail(streams.Err, err.Error())
		return 1
	}
	defer closeLog()

	scr := screen.New(logger, opt.IDs)
	r := &scriptRunner{
		screen: scr,
		theme:  opt.Theme,
		group:  opt.Config.UI.Group,
		out:    streams.Out,
		errOut: streams.Err,
		logger: logger,
	}
	if code := r.run(ctx, in); code != 0 {
		return code
	}

	if opt.JSON {
		if err := snapshot.Write(streams.Out, scr.Tasks()); err != nil {
			opt.Theme.Fail(streams.Err, err.Error())
			return 1
		}
		return 0
	}
	r.list()
	return 0
}
