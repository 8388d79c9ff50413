package ui

import (
	"github.com/dori/taskflow/internal/ui/views"
)

// Page is the page a route resolves to
type Page int

const (
	PageLists Page = iota
	PageTasks
)

// String returns the display name for a page
func (p Page) String() string {
	switch p {
	case PageLists:
		return "Task Lists"
	case PageTasks:
		return "Tasks"
	default:
		return "Unknown"
	}
}

// pageFor resolves a route. Anything that is not a list page falls back to the lists page.
func pageFor(path string) (Page, string) {
	if views.IsTaskListPath(path) {
		return PageTasks, path
	}
	return PageLists, views.RouteLists
}
