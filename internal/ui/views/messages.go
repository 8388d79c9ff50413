package views

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/optimistic"
)

// Routes
const (
	RouteLists    = "/"
	taskListRoute = "/task-lists/"
)

// TaskListPath returns the route of one list's page
func TaskListPath(id string) string {
	return taskListRoute + id
}

// IsTaskListPath reports whether path addresses a list page
func IsTaskListPath(path string) bool {
	return strings.HasPrefix(path, taskListRoute)
}

// ListIDFromPath returns the final segment of path
func ListIDFromPath(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}

// NavigateMsg asks the root model to switch routes
type NavigateMsg struct {
	Path string
}

// Navigate returns a command that switches to path
func Navigate(path string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: path}
	}
}

// Messages for list page operations
type listsLoadedMsg struct {
	lists []model.TaskList
	err   error
}

// seq on save and delete replies names the modal that sent the request
type listSavedMsg struct {
	seq     int
	list    model.TaskList
	created bool
	err     error
}

type listDeletedMsg struct {
	seq int
	id  string
	err error
}

// Messages for task page operations
type listInfoLoadedMsg struct {
	list model.TaskList
	err  error
}

type tasksLoadedMsg struct {
	tasks []model.Task
	err   error
}

type taskToggledMsg struct {
	change optimistic.Change[model.Status]
	task   model.Task
	err    error
}

type taskSavedMsg struct {
	seq     int
	task    model.Task
	created bool
	err     error
}

type taskDeletedMsg struct {
	seq int
	id  string
	err error
}

type currentListSavedMsg struct {
	seq  int
	list model.TaskList
	err  error
}
