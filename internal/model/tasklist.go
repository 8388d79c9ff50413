package model

// TaskList represents a named collection of tasks
type TaskList struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Created     string `json:"created,omitempty"` // server timestamp, usually without zone
}

// HasDescription returns true if the list carries a non-blank description
func (l *TaskList) HasDescription() bool {
	for _, r := range l.Description {
		if r != ' ' && r != '\t' && r != '\n' {
			return true
		}
	}
	return false
}
