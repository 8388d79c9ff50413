package viewmodel

import (
	"testing"
	"time"

	"github.com/dori/taskflow/internal/model"
)

func TestCountLabel(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "No lists yet"},
		{1, "1 list"},
		{2, "2 lists"},
		{12, "12 lists"},
	}
	for _, tt := range tests {
		if got := CountLabel(tt.n); got != tt.want {
			t.Errorf("CountLabel(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestBuildListsPage(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 3, 0, 0, time.Local)
	lists := []model.TaskList{
		{ID: "l1", Title: "Groceries", Created: "2024-05-01T10:00:00"},
		{ID: "l2", Title: "Work", Description: "Q2 goals"},
	}

	page := BuildListsPage(lists, now)
	if page.Empty {
		t.Error("page should not be empty")
	}
	if page.CountLabel != "2 lists" || page.TotalLists != 2 {
		t.Errorf("count = %q/%d", page.CountLabel, page.TotalLists)
	}
	if len(page.Cards) != 2 {
		t.Fatalf("got %d cards, want 2", len(page.Cards))
	}
	if !page.Cards[0].IsPlaceholder || page.Cards[0].Description != NoDescription {
		t.Errorf("card 0 = %+v, want placeholder description", page.Cards[0])
	}
	if page.Cards[0].Created != "3 minutes ago" {
		t.Errorf("card 0 created = %q, want %q", page.Cards[0].Created, "3 minutes ago")
	}
	if page.Cards[1].IsPlaceholder || page.Cards[1].Description != "Q2 goals" {
		t.Errorf("card 1 = %+v", page.Cards[1])
	}
	if page.Cards[1].Created != "" {
		t.Errorf("card 1 created = %q, want empty", page.Cards[1].Created)
	}

	empty := BuildListsPage(nil, now)
	if !empty.Empty || empty.CountLabel != "No lists yet" {
		t.Errorf("empty page = %+v", empty)
	}
}

func TestBuildTasksPageStatsCoverAllTasks(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "a", Status: model.StatusOpen, Priority: model.PriorityLow},
		{ID: "2", Title: "b", Status: model.StatusClosed, Priority: model.PriorityHigh},
		{ID: "3", Title: "c", Status: model.StatusOpen, Priority: model.PriorityMedium},
	}

	for _, f := range model.Filters {
		page := BuildTasksPage(tasks, f)
		if page.Stats != (TaskStats{Total: 3, Open: 2, Done: 1}) {
			t.Errorf("filter %s: stats = %+v", f, page.Stats)
		}
		for _, item := range page.Items {
			status := model.StatusOpen
			if item.Completed {
				status = model.StatusClosed
			}
			if !f.Matches(model.Task{Status: status}) {
				t.Errorf("filter %s: item %s should be hidden", f, item.ID)
			}
		}
	}

	if got := len(BuildTasksPage(tasks, model.FilterOpen).Items); got != 2 {
		t.Errorf("OPEN items = %d, want 2", got)
	}
	closed := BuildTasksPage(tasks, model.FilterClosed)
	if len(closed.Items) != 1 || closed.Items[0].ID != "2" {
		t.Errorf("CLOSED items = %+v", closed.Items)
	}
	if !BuildTasksPage(nil, model.FilterAll).Empty {
		t.Error("no tasks should give an empty page")
	}
}

func TestBuildTaskItem(t *testing.T) {
	item := BuildTaskItem(model.Task{
		ID:       "t1",
		Title:    "Buy milk",
		DueDate:  "2024-05-01T00:00:00",
		Priority: model.PriorityLow,
		Status:   model.StatusOpen,
	})
	if item.PriorityLabel != "Low" || item.StatusLabel != "Open" || item.DueLabel != "01/05/2024" {
		t.Errorf("item labels = %+v", item)
	}
	if item.ToggleHint != "Mark as complete" || item.Completed {
		t.Errorf("open item = %+v", item)
	}

	done := BuildTaskItem(model.Task{ID: "t2", Status: model.StatusClosed})
	if !done.Completed || done.ToggleHint != "Mark as open" || done.StatusLabel != "Closed" {
		t.Errorf("closed item = %+v", done)
	}
}

func TestBuildHeader(t *testing.T) {
	h := BuildHeader(model.TaskList{ID: "l1", Title: "Groceries", Description: "weekly"})
	if h.DocumentTitle != "TaskFlow — Groceries" {
		t.Errorf("DocumentTitle = %q", h.DocumentTitle)
	}
	if h.Breadcrumb != "Groceries" || h.Eyebrow != "Task List" || h.Description != "weekly" {
		t.Errorf("header = %+v", h)
	}
}
