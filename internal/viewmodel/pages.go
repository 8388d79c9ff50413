// Package viewmodel maps client state to render-ready values.
// Nothing here touches the terminal, so every label is unit-testable.
package viewmodel

import (
	"fmt"
	"time"

	"github.com/dori/taskflow/internal/model"
)

// NoDescription is the placeholder shown on cards without a description.
const NoDescription = "No description"

// AppName prefixes document titles.
const AppName = "TaskFlow"

// ListCard is one entry on the lists page.
type ListCard struct {
	ID            string
	Title         string
	Description   string
	IsPlaceholder bool
	Created       string
}

// ListsPage is everything the lists view draws.
type ListsPage struct {
	CountLabel string
	Empty      bool
	TotalLists int
	Cards      []ListCard
}

// CountLabel describes how many lists exist.
func CountLabel(n int) string {
	switch n {
	case 0:
		return "No lists yet"
	case 1:
		return "1 list"
	default:
		return fmt.Sprintf("%d lists", n)
	}
}

// BuildListsPage maps lists to cards.
func BuildListsPage(lists []model.TaskList, now time.Time) ListsPage {
	page := ListsPage{
		CountLabel: CountLabel(len(lists)),
		Empty:      len(lists) == 0,
		TotalLists: len(lists),
		Cards:      make([]ListCard, 0, len(lists)),
	}
	for _, l := range lists {
		card := ListCard{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Created:     RelativeTime(l.Created, now),
		}
		if l.Description == "" {
			card.Description = NoDescription
			card.IsPlaceholder = true
		}
		page.Cards = append(page.Cards, card)
	}
	return page
}

// TaskStats counts tasks by status.
type TaskStats struct {
	Total int
	Open  int
	Done  int
}

// TaskItem is one row on the tasks page.
type TaskItem struct {
	ID            string
	Title         string
	Description   string
	Completed     bool
	PriorityLabel string
	Priority      model.Priority
	Status        model.Status
	StatusLabel   string
	DueLabel      string
	ToggleHint    string
}

// TasksPage is everything the tasks view draws below the header.
type TasksPage struct {
	Stats  TaskStats
	Filter model.Filter
	Items  []TaskItem
	Empty  bool
}

// ComputeStats counts over the slice it is given. Callers pass the unfiltered tasks.
func ComputeStats(tasks []model.Task) TaskStats {
	stats := TaskStats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case model.StatusOpen:
			stats.Open++
		case model.StatusClosed:
			stats.Done++
		}
	}
	return stats
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []model.Task, f model.Filter) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// BuildTasksPage filters tasks for display while stats cover all of them.
func BuildTasksPage(tasks []model.Task, f model.Filter) TasksPage {
	filtered := FilterTasks(tasks, f)
	page := TasksPage{
		Stats:  ComputeStats(tasks),
		Filter: f,
		Items:  make([]TaskItem, 0, len(filtered)),
		Empty:  len(filtered) == 0,
	}
	for _, t := range filtered {
		page.Items = append(page.Items, BuildTaskItem(t))
	}
	return page
}

// BuildTaskItem maps one task to its row.
func BuildTaskItem(t model.Task) TaskItem {
	completed := t.Status == model.StatusClosed
	hint := "Mark as complete"
	if completed {
		hint = "Mark as open"
	}
	return TaskItem{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Completed:     completed,
		Priority:      t.Priority,
		PriorityLabel: PriorityLabel(t.Priority),
		Status:        t.Status,
		StatusLabel:   StatusLabel(t.Status),
		DueLabel:      FormatDueDate(t.DueDate),
		ToggleHint:    hint,
	}
}

// Header is the tasks page heading.
type Header struct {
	DocumentTitle string
	Breadcrumb    string
	Eyebrow       string
	Title         string
	Description   string
}

// BuildHeader maps the current list to the page heading.
func BuildHeader(l model.TaskList) Header {
	return Header{
		DocumentTitle: AppName + " — " + l.Title,
		Breadcrumb:    l.Title,
		Eyebrow:       "Task List",
		Title:         l.Title,
		Description:   l.Description,
	}
}
