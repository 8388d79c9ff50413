package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/taskflow/internal/api"
	"github.com/dori/taskflow/internal/app"
	"github.com/dori/taskflow/internal/config"
	"github.com/dori/taskflow/internal/db"
	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/platform"
	"github.com/dori/taskflow/internal/server"
	"github.com/dori/taskflow/internal/ui"
	"github.com/dori/taskflow/internal/ui/theme"
)

var (
	version = "0.1.0"
)

// errUsage marks errors whose message is already a usage hint
var errUsage = errors.New("usage")

// env is everything a command reads from the outside world
type env struct {
	stdout io.Writer
	stderr io.Writer
	getenv func(string) string
	paths  func() (platform.Paths, error)
	now    func() time.Time
}

func main() {
	e := env{
		stdout: os.Stdout,
		stderr: os.Stderr,
		getenv: os.Getenv,
		paths:  platform.DefaultPaths,
		now:    time.Now,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], e); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches a subcommand. No subcommand starts the TUI.
func run(ctx context.Context, args []string, e env) error {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		switch args[0] {
		case "serve":
			return runServe(ctx, args[1:], e)
		case "lists":
			return runLists(ctx, args[1:], e)
		case "tasks":
			return runTasks(ctx, args[1:], e)
		case "add":
			return runAdd(ctx, args[1:], e)
		case "paths":
			return runPaths(e)
		case "version":
			fmt.Fprintf(e.stdout, "taskflow v%s\n", version)
			return nil
		case "help":
			printHelp(e.stdout)
			return nil
		default:
			return fmt.Errorf("unknown command %q (see: taskflow help)", args[0])
		}
	}
	return runTUI(args, e)
}

func printHelp(w io.Writer) {
	help := `taskflow - task lists in the terminal

Usage:
  taskflow                          Start the TUI
  taskflow serve                    Run the development backend (sqlite)
  taskflow lists                    Print every task list
  taskflow tasks <list-id>          Print one list with its tasks
  taskflow add <list-id> <task>     Quick add a task
  taskflow paths                    Show config and data locations
  taskflow version                  Show version
  taskflow help                     Show this help

Common options:
  --config <path>   Config file (env TASKFLOW_CONFIG)
  --server <url>    Backend base URL (env TASKFLOW_SERVER)

TUI options:
  --theme <name>    Theme (nord, dracula, gruvbox, catppuccin)
  --open <route>    First page, e.g. /task-lists/<id>

serve options:
  --addr <addr>     Listen address (default from [devserver] addr)
  --db <path>       Database file (default from [devserver] db_path)

tasks options:
  --filter <f>      all, open or closed

Quick Add Syntax:
  taskflow add <list-id> "Buy milk !low due:tomorrow"

  Priority:  !low !medium !high
  Due date:  due:today due:tomorrow due:friday due:2024-01-15

Keybindings:
  Navigation:   ↑/↓ or j/k    Move cursor
                enter         Open list / edit task
                esc           Back to lists
  Actions:      n             New list or task
                e / E         Edit task / edit list
                d             Delete (with confirm)
                space / x     Toggle done
                f, 1-3        Filter tasks
  General:      ctrl+t        Cycle theme
                ?             Help
                q             Quit`

	fmt.Fprintln(w, help)
}

// commonFlags registers the flags every command understands
type commonFlags struct {
	config string
	server string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "config file path")
	fs.StringVar(&c.server, "server", "", "backend base URL")
}

// loadConfig resolves paths and layers defaults, file, env and flags
func loadConfig(c commonFlags, e env) (config.Config, platform.Paths, error) {
	paths, err := e.paths()
	if err != nil {
		return config.Config{}, platform.Paths{}, fmt.Errorf("resolve paths: %w", err)
	}
	path := config.ResolvePath(c.config, e.getenv, paths.ConfigPath)
	cfg, err := config.Load(path, config.Default(paths.DBPath, paths.LogPath))
	if err != nil {
		return config.Config{}, platform.Paths{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg = cfg.ApplyEnv(e.getenv)
	if v := strings.TrimSpace(c.server); v != "" {
		cfg.Server.BaseURL = v
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, platform.Paths{}, err
	}
	return cfg, paths, nil
}

// newClient builds an API client for one-shot commands. Failures already reach
// the user as "Error: ...", so request logs only go to the configured log file.
func newClient(cfg config.Config, e env) (*api.Client, *logging.Logger, error) {
	logger, err := logging.New(e.stderr, logging.Options{
		AppName:  platform.AppName,
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.File,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.SetConsoleEnabled(false)
	client := api.New(cfg.Server.BaseURL,
		api.WithTimeout(time.Duration(cfg.Server.TimeoutSeconds)*time.Second),
		api.WithLogger(logger),
	)
	return client, logger, nil
}

func runTUI(args []string, e env) error {
	fs := flag.NewFlagSet("taskflow", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var common commonFlags
	common.register(fs)
	themeFlag := fs.String("theme", "", "theme name (nord, dracula, gruvbox, catppuccin)")
	openFlag := fs.String("open", "/", "first route to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, paths, err := loadConfig(common, e)
	if err != nil {
		return err
	}

	themeName := cfg.UI.Theme
	if *themeFlag != "" {
		themeName = *themeFlag
	}
	t, ok := theme.ByName(themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q (available: %s)", themeName, strings.Join(theme.Names(), ", "))
	}
	theme.SetTheme(t)

	logger, err := logging.New(e.stderr, logging.Options{
		AppName:  platform.AppName,
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	application, err := app.New(cfg, paths, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	// The TUI owns the terminal from here on; logs go to the file sink only.
	logger.SetConsoleEnabled(false)
	defer logger.SetConsoleEnabled(true)
	logger.Info("starting tui", "server", cfg.Server.BaseURL, "theme", t.Name)

	root := ui.NewRootModel(ui.Options{
		Service:  application.Client,
		Notifier: application.Notifier,
		Logger:   logger,
		Route:    *openFlag,
	})

	p := tea.NewProgram(
		root,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}

func runServe(ctx context.Context, args []string, e env) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var common commonFlags
	common.register(fs)
	addrFlag := fs.String("addr", "", "listen address")
	dbFlag := fs.String("db", "", "database file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, _, err := loadConfig(common, e)
	if err != nil {
		return err
	}
	addr := cfg.DevServer.Addr
	if *addrFlag != "" {
		addr = *addrFlag
	}
	dbPath := cfg.DevServer.DBPath
	if *dbFlag != "" {
		dbPath = *dbFlag
	}

	logger, err := logging.New(e.stderr, logging.Options{
		AppName:  platform.AppName,
		Level:    cfg.Logging.Level,
		FilePath: cfg.Logging.File,
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	store, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	logger.Info("serving", "addr", addr, "db", dbPath)
	return server.Run(ctx, addr, server.New(store, logger))
}

func runPaths(e env) error {
	paths, err := e.paths()
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "config: %s\n", config.ResolvePath("", e.getenv, paths.ConfigPath))
	fmt.Fprintf(e.stdout, "data:   %s\n", paths.DataDir)
	fmt.Fprintf(e.stdout, "db:     %s\n", paths.DBPath)
	fmt.Fprintf(e.stdout, "lock:   %s\n", paths.LockPath)
	fmt.Fprintf(e.stdout, "log:    %s\n", paths.LogPath)
	return nil
}
