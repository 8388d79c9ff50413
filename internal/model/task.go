package model

import (
	"errors"
	"strings"
)

// Status represents whether a task is still open
type Status string

const (
	StatusOpen   Status = "OPEN"
	StatusClosed Status = "CLOSED"
)

// Toggled returns the opposite status
func (s Status) Toggled() Status {
	if s == StatusOpen {
		return StatusClosed
	}
	return StatusOpen
}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	return s == StatusOpen || s == StatusClosed
}

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Priorities lists priorities in selector order
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Valid reports whether p is a known priority
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// Next returns the following priority, wrapping around
func (p Priority) Next() Priority {
	for i, known := range Priorities {
		if p == known {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// Prev returns the preceding priority, wrapping around
func (p Priority) Prev() Priority {
	for i, known := range Priorities {
		if p == known {
			return Priorities[(i+len(Priorities)-1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// Task represents a todo item. The owning list is addressed by URL, not stored here.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	DueDate     string   `json:"dueDate,omitempty"` // ISO date or datetime, as sent by the server
	Priority    Priority `json:"priority"`
	Status      Status   `json:"status"`
}

// IsClosed returns true if the task is done
func (t *Task) IsClosed() bool {
	return t.Status == StatusClosed
}

// TaskInput holds the editable fields of a task as entered in a form
type TaskInput struct {
	ID          string
	Title       string
	Description string
	DueDate     string
	Priority    Priority
	Status      Status // only sent on update
}

// Input returns the task's current fields as a TaskInput
func (t Task) Input() TaskInput {
	return TaskInput{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
	}
}

// Filter selects which tasks are drawn
type Filter string

const (
	FilterAll    Filter = "ALL"
	FilterOpen   Filter = "OPEN"
	FilterClosed Filter = "CLOSED"
)

// Filters lists filters in button order
var Filters = []Filter{FilterAll, FilterOpen, FilterClosed}

// Matches reports whether a task belongs to the filtered subset
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterOpen:
		return t.Status == StatusOpen
	case FilterClosed:
		return t.Status == StatusClosed
	default:
		return true
	}
}

// Next returns the following filter, wrapping around
func (f Filter) Next() Filter {
	for i, known := range Filters {
		if f == known {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label returns the button caption for the filter
func (f Filter) Label() string {
	switch f {
	case FilterOpen:
		return "Open"
	case FilterClosed:
		return "Done"
	default:
		return "All"
	}
}

// TitleRequiredMessage is the inline error shown next to an empty title field.
const TitleRequiredMessage = "Title is required."

// ErrTitleRequired is returned when a title is empty after trimming
var ErrTitleRequired = errors.New("title is required")

// NormalizeTitle trims a title and rejects it when nothing is left
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	return title, nil
}
