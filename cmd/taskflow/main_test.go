package main

import (
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dori/taskflow/internal/config"
	"github.com/dori/taskflow/internal/db"
	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/platform"
	"github.com/dori/taskflow/internal/server"
)

type harness struct {
	env    env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	store  *db.DB
	url    string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	store, err := db.Open(filepath.Join(dir, "cli.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(server.New(store, nil))
	t.Cleanup(srv.Close)

	h := &harness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		store:  store,
		url:    srv.URL,
	}
	paths := platform.Paths{
		ConfigPath: filepath.Join(dir, "config", "config.toml"),
		DataDir:    filepath.Join(dir, "data"),
		DBPath:     filepath.Join(dir, "data", "taskflow.db"),
		LockPath:   filepath.Join(dir, "data", "taskflow.lock"),
		LogPath:    filepath.Join(dir, "data", "taskflow.log"),
	}
	h.env = env{
		stdout: h.stdout,
		stderr: h.stderr,
		getenv: func(key string) string {
			if key == config.EnvServerURL {
				return srv.URL
			}
			return ""
		},
		paths: func() (platform.Paths, error) { return paths, nil },
		now:   func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
	}
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	return run(context.Background(), args, h.env)
}

func TestVersionAndHelp(t *testing.T) {
	h := newHarness(t)

	if err := h.run(t, "version"); err != nil {
		t.Fatalf("version error = %v", err)
	}
	if got := h.stdout.String(); got != "taskflow v"+version+"\n" {
		t.Errorf("version output = %q", got)
	}

	if err := h.run(t, "help"); err != nil {
		t.Fatalf("help error = %v", err)
	}
	for _, want := range []string{"taskflow serve", "Quick Add Syntax", "ctrl+t"} {
		if !strings.Contains(h.stdout.String(), want) {
			t.Errorf("help output missing %q", want)
		}
	}
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "frobnicate")
	if err == nil || !strings.Contains(err.Error(), `unknown command "frobnicate"`) {
		t.Fatalf("error = %v", err)
	}
}

func TestPaths(t *testing.T) {
	h := newHarness(t)
	if err := h.run(t, "paths"); err != nil {
		t.Fatalf("paths error = %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"config.toml", "taskflow.db", "taskflow.lock", "taskflow.log"} {
		if !strings.Contains(out, want) {
			t.Errorf("paths output missing %q:\n%s", want, out)
		}
	}
}

func TestListsEmptyAndPopulated(t *testing.T) {
	h := newHarness(t)

	if err := h.run(t, "lists"); err != nil {
		t.Fatalf("lists error = %v", err)
	}
	if got := strings.TrimSpace(h.stdout.String()); got != "No lists yet" {
		t.Errorf("empty output = %q", got)
	}

	ctx := context.Background()
	if _, err := h.store.CreateTaskList(ctx, "Groceries", "weekly"); err != nil {
		t.Fatal(err)
	}
	if _, err := h.store.CreateTaskList(ctx, "Chores", ""); err != nil {
		t.Fatal(err)
	}

	if err := h.run(t, "lists"); err != nil {
		t.Fatalf("lists error = %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"2 lists", "Groceries", "weekly", "Chores", "No description"} {
		if !strings.Contains(out, want) {
			t.Errorf("lists output missing %q:\n%s", want, out)
		}
	}
}

func TestTasksCommand(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	list, err := h.store.CreateTaskList(ctx, "Groceries", "weekly")
	if err != nil {
		t.Fatal(err)
	}
	milk, err := h.store.CreateTask(ctx, list.ID, model.TaskInput{Title: "Buy milk", Priority: model.PriorityLow})
	if err != nil {
		t.Fatal(err)
	}
	eggs, err := h.store.CreateTask(ctx, list.ID, model.TaskInput{Title: "Buy eggs", Priority: model.PriorityHigh, DueDate: "2024-05-03T00:00:00"})
	if err != nil {
		t.Fatal(err)
	}
	in := eggs.Input()
	in.Status = model.StatusClosed
	if _, err := h.store.UpdateTask(ctx, list.ID, eggs.ID, in); err != nil {
		t.Fatal(err)
	}

	if err := h.run(t, "tasks", list.ID); err != nil {
		t.Fatalf("tasks error = %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"Groceries", "weekly", "2 total · 1 open · 1 done", "[ ]", "[x]", "Buy milk", "Low", "03/05/2024", milk.ID} {
		if !strings.Contains(out, want) {
			t.Errorf("tasks output missing %q:\n%s", want, out)
		}
	}

	if err := h.run(t, "tasks", "--filter", "open", list.ID); err != nil {
		t.Fatalf("tasks --filter error = %v", err)
	}
	out = h.stdout.String()
	if !strings.Contains(out, "Buy milk") || strings.Contains(out, "Buy eggs") {
		t.Errorf("open filter output:\n%s", out)
	}
	if !strings.Contains(out, "2 total · 1 open · 1 done") {
		t.Errorf("stats should cover every task:\n%s", out)
	}
}

func TestTasksCommandErrors(t *testing.T) {
	h := newHarness(t)

	if err := h.run(t, "tasks"); !errors.Is(err, errUsage) {
		t.Errorf("missing id error = %v", err)
	}
	if err := h.run(t, "tasks", "--filter", "later", "x"); err == nil || !strings.Contains(err.Error(), "unknown filter") {
		t.Errorf("bad filter error = %v", err)
	}
	err := h.run(t, "tasks", "missing")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("missing list error = %v", err)
	}
}

func TestAddCommand(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	list, err := h.store.CreateTaskList(ctx, "Groceries", "")
	if err != nil {
		t.Fatal(err)
	}

	if err := h.run(t, "add", list.ID, "Buy", "bread", "!high", "due:tomorrow"); err != nil {
		t.Fatalf("add error = %v", err)
	}
	out := h.stdout.String()
	for _, want := range []string{"Created: Buy bread", "Due: 02/05/2024", "Priority: High"} {
		if !strings.Contains(out, want) {
			t.Errorf("add output missing %q:\n%s", want, out)
		}
	}

	tasks, err := h.store.ListTasks(ctx, list.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Fatalf("stored %d tasks, want 1", len(tasks))
	}
	got := tasks[0]
	if got.Title != "Buy bread" || got.Priority != model.PriorityHigh || got.Status != model.StatusOpen || got.DueDate != "2024-05-02T00:00:00" {
		t.Errorf("stored task = %+v", got)
	}

	if err := h.run(t, "add", list.ID, "!low"); err == nil {
		t.Error("add with only markers should fail")
	}
	if err := h.run(t, "add", list.ID); !errors.Is(err, errUsage) {
		t.Errorf("add without text error = %v", err)
	}
}

func TestServerFlagOverridesEnv(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "lists", "--server", "ftp://nowhere")
	if err == nil || !strings.Contains(err.Error(), "base_url") {
		t.Fatalf("error = %v", err)
	}
}

func TestFailedRequestLogsOnlyToFile(t *testing.T) {
	h := newHarness(t)
	paths, _ := h.env.paths()

	err := h.run(t, "tasks", "missing")
	if err == nil {
		t.Fatal("expected an error for a missing list")
	}
	if h.stderr.Len() != 0 {
		t.Errorf("stderr should stay quiet, got %q", h.stderr.String())
	}

	data, readErr := os.ReadFile(paths.LogPath)
	if readErr != nil {
		t.Fatalf("read log file: %v", readErr)
	}
	if !strings.Contains(string(data), `msg="api error"`) {
		t.Errorf("log file = %q, want the api error", data)
	}
}
