package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/ui/theme"
	"github.com/dori/taskflow/internal/viewmodel"
)

const (
	formInputWidth = 44
	titleCharLimit = 256
)

func newTitleInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = titleCharLimit
	ti.Width = formInputWidth
	ti.Prompt = ""
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newDescriptionArea() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Optional description..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 2000
	ta.SetWidth(formInputWidth)
	ta.SetHeight(3)
	ta.Cursor.SetMode(cursor.CursorStatic)
	return ta
}

// formKey is what a form decided to do with a key press
type formKey int

const (
	formKeyNone formKey = iota
	formKeySubmit
)

// listForm edits a task list's title and description
type listForm struct {
	title   textinput.Model
	desc    textarea.Model
	focus   int // 0 title, 1 description
	err     string
	editing bool
	busy    bool
}

func newListForm(existing *model.TaskList) listForm {
	f := listForm{
		title: newTitleInput("e.g. Groceries"),
		desc:  newDescriptionArea(),
	}
	if existing != nil {
		f.editing = true
		f.title.SetValue(existing.Title)
		f.desc.SetValue(existing.Description)
	}
	f.title.Focus()
	return f
}

func (f listForm) heading() string {
	if f.editing {
		return "Edit List"
	}
	return "New Task List"
}

func (f listForm) submitLabel() string {
	switch {
	case f.busy && f.editing:
		return "Saving..."
	case f.busy:
		return "Creating..."
	case f.editing:
		return "Save Changes"
	default:
		return "Create List"
	}
}

func (f listForm) setFocus(i int) listForm {
	f.focus = i
	if i == 0 {
		f.title.Focus()
		f.desc.Blur()
	} else {
		f.title.Blur()
		f.desc.Focus()
	}
	return f
}

// values returns the trimmed title and description, or the inline error when the title is blank
func (f listForm) values() (title, desc string, err error) {
	title, err = model.NormalizeTitle(f.title.Value())
	return title, strings.TrimSpace(f.desc.Value()), err
}

func (f listForm) Update(msg tea.KeyMsg) (listForm, tea.Cmd, formKey) {
	switch msg.String() {
	case "tab", "shift+tab":
		return f.setFocus(1 - f.focus), nil, formKeyNone
	case "ctrl+s":
		return f, nil, formKeySubmit
	case "enter":
		if f.focus == 0 {
			return f, nil, formKeySubmit
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.title, cmd = f.title.Update(msg)
	} else {
		f.desc, cmd = f.desc.Update(msg)
	}
	return f, cmd, formKeyNone
}

func (f listForm) View() string {
	styles := theme.Current.Styles
	button := styles.ButtonPrimary
	if f.busy {
		button = styles.ButtonDisabled
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.FieldLabel.Render("Title *"),
		inputBox(f.title.View(), f.focus == 0),
		fieldError(f.err),
		styles.FieldLabel.Render("Description"),
		inputBox(f.desc.View(), f.focus == 1),
		"",
		button.Render(f.submitLabel())+styles.HelpDesc.Render("  esc cancel"),
	)
}

// task form fields, in focus order
const (
	taskFieldTitle = iota
	taskFieldDesc
	taskFieldDue
	taskFieldPriority
	taskFieldStatus
)

// taskForm creates or edits a task. Status is only offered when editing.
type taskForm struct {
	title    textinput.Model
	desc     textarea.Model
	due      textinput.Model
	priority model.Priority
	status   model.Status
	focus    int
	err      string
	editID   string
	busy     bool
}

func newTaskForm(existing *model.Task) taskForm {
	due := newTitleInput("YYYY-MM-DD")
	due.CharLimit = 32
	due.Width = 20

	f := taskForm{
		title:    newTitleInput("What needs doing?"),
		desc:     newDescriptionArea(),
		due:      due,
		priority: model.PriorityMedium,
		status:   model.StatusOpen,
	}
	if existing != nil {
		f.editID = existing.ID
		f.title.SetValue(existing.Title)
		f.desc.SetValue(existing.Description)
		f.due.SetValue(existing.DueDate)
		if existing.Priority != "" {
			f.priority = existing.Priority
		}
		if existing.Status != "" {
			f.status = existing.Status
		}
	}
	f.title.Focus()
	return f
}

func (f taskForm) editing() bool {
	return f.editID != ""
}

func (f taskForm) heading() string {
	if f.editing() {
		return "Edit Task"
	}
	return "New Task"
}

func (f taskForm) submitLabel() string {
	switch {
	case f.busy && f.editing():
		return "Saving..."
	case f.busy:
		return "Creating..."
	case f.editing():
		return "Save Changes"
	default:
		return "Create Task"
	}
}

func (f taskForm) fieldCount() int {
	if f.editing() {
		return taskFieldStatus + 1
	}
	return taskFieldPriority + 1
}

func (f taskForm) setFocus(i int) taskForm {
	n := f.fieldCount()
	f.focus = ((i % n) + n) % n
	f.title.Blur()
	f.desc.Blur()
	f.due.Blur()
	switch f.focus {
	case taskFieldTitle:
		f.title.Focus()
	case taskFieldDesc:
		f.desc.Focus()
	case taskFieldDue:
		f.due.Focus()
	}
	return f
}

// input returns the form as a payload, or the inline error when the title is blank
func (f taskForm) input() (model.TaskInput, error) {
	title, err := model.NormalizeTitle(f.title.Value())
	if err != nil {
		return model.TaskInput{}, err
	}
	return model.TaskInput{
		ID:          f.editID,
		Title:       title,
		Description: strings.TrimSpace(f.desc.Value()),
		DueDate:     strings.TrimSpace(f.due.Value()),
		Priority:    f.priority,
		Status:      f.status,
	}, nil
}

func (f taskForm) Update(msg tea.KeyMsg) (taskForm, tea.Cmd, formKey) {
	switch msg.String() {
	case "tab":
		return f.setFocus(f.focus + 1), nil, formKeyNone
	case "shift+tab":
		return f.setFocus(f.focus - 1), nil, formKeyNone
	case "ctrl+s":
		return f, nil, formKeySubmit
	case "enter":
		if f.focus != taskFieldDesc {
			return f, nil, formKeySubmit
		}
	case "left", "h":
		if f.focus == taskFieldPriority {
			f.priority = f.priority.Prev()
			return f, nil, formKeyNone
		}
		if f.focus == taskFieldStatus {
			f.status = f.status.Toggled()
			return f, nil, formKeyNone
		}
	case "right", "l", " ":
		if f.focus == taskFieldPriority {
			f.priority = f.priority.Next()
			return f, nil, formKeyNone
		}
		if f.focus == taskFieldStatus {
			f.status = f.status.Toggled()
			return f, nil, formKeyNone
		}
	}

	var cmd tea.Cmd
	switch f.focus {
	case taskFieldTitle:
		f.title, cmd = f.title.Update(msg)
	case taskFieldDesc:
		f.desc, cmd = f.desc.Update(msg)
	case taskFieldDue:
		f.due, cmd = f.due.Update(msg)
	}
	return f, cmd, formKeyNone
}

func (f taskForm) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	selector := func(label string, focused bool) string {
		s := styles.Button
		if focused {
			s = styles.ButtonPrimary
		}
		return s.Render("‹ " + label + " ›")
	}

	rows := []string{
		styles.FieldLabel.Render("Title *"),
		inputBox(f.title.View(), f.focus == taskFieldTitle),
		fieldError(f.err),
		styles.FieldLabel.Render("Description"),
		inputBox(f.desc.View(), f.focus == taskFieldDesc),
		styles.FieldLabel.Render("Due date"),
		inputBox(f.due.View(), f.focus == taskFieldDue),
		styles.FieldLabel.Render("Priority"),
		lipgloss.NewStyle().Foreground(priorityColor(t, f.priority)).Render(
			selector(viewmodel.PriorityLabel(f.priority), f.focus == taskFieldPriority)),
	}
	if f.editing() {
		rows = append(rows,
			styles.FieldLabel.Render("Status"),
			selector(viewmodel.StatusLabel(f.status), f.focus == taskFieldStatus),
		)
	}

	button := styles.ButtonPrimary
	if f.busy {
		button = styles.ButtonDisabled
	}
	rows = append(rows, "", button.Render(f.submitLabel())+styles.HelpDesc.Render("  esc cancel"))
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func priorityColor(t theme.Theme, p model.Priority) lipgloss.Color {
	switch p {
	case model.PriorityHigh:
		return t.PriorityHigh
	case model.PriorityLow:
		return t.PriorityLow
	default:
		return t.PriorityMedium
	}
}

// confirmDialog asks before deleting something
type confirmDialog struct {
	id   string
	name string
	noun string // "List" or "Task"
	busy bool
}

func (d confirmDialog) buttonLabel() string {
	if d.busy {
		return "Deleting..."
	}
	return "Delete " + d.noun
}

func (d confirmDialog) heading() string {
	return "Delete " + d.noun
}

func (d confirmDialog) View() string {
	styles := theme.Current.Styles
	button := styles.ButtonDanger
	if d.busy {
		button = styles.ButtonDisabled
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		styles.CardDesc.Render("Delete \""+d.name+"\"?"),
		styles.Description.Render("This cannot be undone."),
		"",
		button.Render(d.buttonLabel())+styles.HelpDesc.Render("  y confirm · n cancel"),
	)
}

func inputBox(content string, focused bool) string {
	if focused {
		return theme.Current.Styles.InputFocused.Render(content)
	}
	return theme.Current.Styles.Input.Render(content)
}

func fieldError(msg string) string {
	if msg == "" {
		return ""
	}
	return theme.Current.Styles.FieldError.Render(msg)
}
