package views

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dori/taskflow/internal/api"
	"github.com/dori/taskflow/internal/db"
	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/server"
	"github.com/dori/taskflow/internal/ui/widgets"
)

// liveStack serves a fresh sqlite store over HTTP and returns a client for it.
func liveStack(t *testing.T) (*db.DB, *api.Client) {
	t.Helper()
	store, err := db.Open(filepath.Join(t.TempDir(), "e2e.db"))
	if err != nil {
		t.Fatalf("db.Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := httptest.NewServer(server.New(store, nil))
	t.Cleanup(srv.Close)
	return store, api.New(srv.URL)
}

func TestGroceriesAgainstLiveServer(t *testing.T) {
	store, client := liveStack(t)
	ctx := context.Background()

	list, err := store.CreateTaskList(ctx, "Groceries", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.CreateTask(ctx, list.ID, model.TaskInput{Title: "Buy milk", Priority: model.PriorityLow}); err != nil {
		t.Fatal(err)
	}

	lists := NewListsView(client).SetSize(100, 40)
	lists, _ = pump(t, lists, lists.Init())
	out := lists.View()
	for _, want := range []string{"1 list", "Groceries", "No description"} {
		if !strings.Contains(out, want) {
			t.Errorf("lists view missing %q:\n%s", want, out)
		}
	}

	_, msgs := press(t, lists, "enter")
	if got := navigations(msgs); len(got) != 1 || got[0] != TaskListPath(list.ID) {
		t.Fatalf("navigations = %v", got)
	}

	tasks := NewTasksView(client, TaskListPath(list.ID)).SetSize(100, 40)
	tasks, _ = pump(t, tasks, tasks.Init())
	out = tasks.View()
	for _, want := range []string{"Groceries", "Buy milk", "Low", "Open", "1 total", "0 done"} {
		if !strings.Contains(out, want) {
			t.Errorf("tasks view missing %q:\n%s", want, out)
		}
	}

	tasks, msgs = press(t, tasks, " ")
	if len(toasts(msgs)) != 0 {
		t.Fatalf("toggle toasts = %+v", toasts(msgs))
	}
	stored, err := store.ListTasks(ctx, list.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored[0].Status != model.StatusClosed {
		t.Errorf("stored status = %s, want CLOSED", stored[0].Status)
	}
	if !strings.Contains(tasks.View(), "1 done") {
		t.Errorf("stats should count the toggled task:\n%s", tasks.View())
	}

	tasks, msgs = press(t, tasks, "d", "y")
	if !hasToast(msgs, widgets.ToastSuccess, "Task deleted") {
		t.Errorf("toasts = %+v", toasts(msgs))
	}
	if len(tasks.Tasks()) != 0 {
		t.Errorf("tasks after delete = %+v", tasks.Tasks())
	}
	stored, err = store.ListTasks(ctx, list.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 0 {
		t.Errorf("stored tasks after delete = %+v", stored)
	}
}

func TestMissingListAgainstLiveServer(t *testing.T) {
	_, client := liveStack(t)

	v := NewTasksView(client, TaskListPath("nope")).SetSize(100, 40)
	_, msgs := pump(t, v, v.Init())
	if !hasToast(msgs, widgets.ToastError, "Failed to load list info: task list not found") {
		t.Errorf("toasts = %+v", toasts(msgs))
	}
	if !hasToast(msgs, widgets.ToastError, "Failed to load tasks: task list not found") {
		t.Errorf("toasts = %+v", toasts(msgs))
	}
}
