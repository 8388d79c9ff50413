package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/optimistic"
	"github.com/dori/taskflow/internal/service"
	"github.com/dori/taskflow/internal/ui/theme"
	"github.com/dori/taskflow/internal/ui/widgets"
	"github.com/dori/taskflow/internal/viewmodel"
)

// Overlay names on the tasks page
const (
	overlayTaskForm   = "taskModal"
	overlayDeleteTask = "deleteTaskModal"
	overlayEditList   = "editListModal"
)

// taskRowHeight is the rendered height of one task row without a description
const taskRowHeight = 3

// TasksView shows the tasks of one list
type TasksView struct {
	svc    service.Service
	ledger *optimistic.Ledger[model.Status]
	width  int
	height int

	taskListID    string
	currentList   *model.TaskList
	tasks         []model.Task
	currentFilter model.Filter
	cursor        int
	scrollOffset  int

	editingTaskID  string
	deletingTaskID string
	taskForm       taskForm
	listForm       listForm
	confirm        confirmDialog
	overlays       widgets.Overlays

	// Each modal opening gets a sequence number that its requests carry.
	// In-flight flags live here so a reopened modal stays busy.
	seq          int
	taskFormSeq  int
	confirmSeq   int
	listFormSeq  int
	savingTask   bool
	deletingTask bool
	savingList   bool
}

// NewTasksView creates the page for the list addressed by path, e.g. /task-lists/42
func NewTasksView(svc service.Service, path string) TasksView {
	return TasksView{
		svc:           svc,
		ledger:        optimistic.NewLedger[model.Status](),
		taskListID:    ListIDFromPath(path),
		currentFilter: model.FilterAll,
		taskForm:      newTaskForm(nil),
		listForm:      newListForm(nil),
	}
}

// Init loads the list header and its tasks side by side.
// Without a list id it sends the user back to the lists page.
func (v TasksView) Init() tea.Cmd {
	if v.taskListID == "" {
		return Navigate(RouteLists)
	}
	return tea.Batch(v.loadList(), v.loadTasks())
}

// IsInputMode returns true while a modal is capturing keys
func (v TasksView) IsInputMode() bool {
	return v.overlays.Locked()
}

// SetSize updates the view dimensions
func (v TasksView) SetSize(width, height int) TasksView {
	v.width = width
	v.height = height
	return v
}

// ListID returns the id of the list being shown
func (v TasksView) ListID() string {
	return v.taskListID
}

// Tasks returns the full, unfiltered task slice
func (v TasksView) Tasks() []model.Task {
	return v.tasks
}

// Header returns the page heading once the list has loaded
func (v TasksView) Header() (viewmodel.Header, bool) {
	if v.currentList == nil {
		return viewmodel.Header{}, false
	}
	return viewmodel.BuildHeader(*v.currentList), true
}

func (v TasksView) loadList() tea.Cmd {
	svc, id := v.svc, v.taskListID
	return func() tea.Msg {
		l, err := svc.GetTaskList(context.Background(), id)
		return listInfoLoadedMsg{list: l, err: err}
	}
}

func (v TasksView) loadTasks() tea.Cmd {
	svc, id := v.svc, v.taskListID
	return tea.Batch(
		widgets.StartLoading(),
		func() tea.Msg {
			tasks, err := svc.ListTasks(context.Background(), id)
			return tasksLoadedMsg{tasks: tasks, err: err}
		},
	)
}

// Update handles messages for the tasks page
func (v TasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listInfoLoadedMsg:
		if msg.err != nil {
			return v, widgets.Error("Failed to load list info: " + msg.err.Error())
		}
		l := msg.list
		v.currentList = &l
		return v, tea.SetWindowTitle(viewmodel.BuildHeader(l).DocumentTitle)

	case tasksLoadedMsg:
		if msg.err != nil {
			return v, tea.Batch(
				widgets.FinishLoading(),
				widgets.Error("Failed to load tasks: "+msg.err.Error()),
			)
		}
		v.tasks = msg.tasks
		v.clampCursor()
		return v, widgets.FinishLoading()

	case taskToggledMsg:
		return v.settleToggle(msg)

	case taskSavedMsg:
		v.savingTask = false
		v.taskForm.busy = false
		if msg.err != nil {
			return v, widgets.Error(msg.err.Error())
		}
		text := "Task updated!"
		if msg.created {
			v.tasks = append(cloneTasks(v.tasks), msg.task)
			text = "Task created!"
		} else {
			v.tasks = replaceTask(v.tasks, msg.task)
		}
		if msg.seq == v.taskFormSeq {
			v.overlays = v.overlays.Close(overlayTaskForm)
			v.editingTaskID = ""
		}
		v.clampCursor()
		return v, widgets.Success(text)

	case taskDeletedMsg:
		v.deletingTask = false
		v.confirm.busy = false
		if msg.err != nil {
			return v, widgets.Error(msg.err.Error())
		}
		v.tasks = removeTask(v.tasks, msg.id)
		// A dialog reopened on the task that just went away has nothing left to confirm.
		if msg.seq == v.confirmSeq || msg.id == v.deletingTaskID {
			v.overlays = v.overlays.Close(overlayDeleteTask)
			v.deletingTaskID = ""
		}
		v.clampCursor()
		return v, widgets.Success("Task deleted")

	case currentListSavedMsg:
		v.savingList = false
		v.listForm.busy = false
		if msg.err != nil {
			return v, widgets.Error(msg.err.Error())
		}
		l := msg.list
		v.currentList = &l
		if msg.seq == v.listFormSeq {
			v.overlays = v.overlays.Close(overlayEditList)
		}
		return v, tea.Batch(
			widgets.Success("List updated!"),
			tea.SetWindowTitle(viewmodel.BuildHeader(l).DocumentTitle),
		)

	case tea.MouseMsg:
		return v.handleMouse(msg)

	case tea.KeyMsg:
		if v.overlays.Locked() {
			return v.handleOverlayKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v TasksView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if v.overlays.Locked() {
		if widgets.IsBackdropClick(msg, v.modalRect()) {
			v.overlays = v.overlays.CloseAll()
		}
		return v, nil
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		v.moveCursor(-1)
	case tea.MouseButtonWheelDown:
		v.moveCursor(1)
	}
	return v, nil
}

func (v TasksView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case "g":
		v.cursor = 0
		v.ensureCursorVisible()
	case "G":
		v.cursor = max(0, len(v.visibleTasks())-1)
		v.ensureCursorVisible()
	case " ", "x":
		if t, ok := v.selected(); ok {
			return v.toggle(t.ID)
		}
	case "n", "a":
		v.openTaskForm(nil)
	case "e", "enter":
		if t, ok := v.selected(); ok {
			v.openTaskForm(&t)
		}
	case "d":
		if t, ok := v.selected(); ok {
			v.seq++
			v.confirmSeq = v.seq
			v.deletingTaskID = t.ID
			v.confirm = confirmDialog{id: t.ID, name: t.Title, noun: "Task", busy: v.deletingTask}
			v.overlays = v.overlays.Open(overlayDeleteTask)
		}
	case "E":
		if v.currentList != nil {
			v.seq++
			v.listFormSeq = v.seq
			v.listForm = newListForm(v.currentList)
			v.listForm.busy = v.savingList
			v.overlays = v.overlays.Open(overlayEditList)
		}
	case "f":
		v = v.setFilter(v.currentFilter.Next())
	case "1":
		v = v.setFilter(model.FilterAll)
	case "2":
		v = v.setFilter(model.FilterOpen)
	case "3":
		v = v.setFilter(model.FilterClosed)
	case "r":
		return v, tea.Batch(v.loadList(), v.loadTasks())
	case "esc", "backspace":
		return v, Navigate(RouteLists)
	}
	return v, nil
}

func (v *TasksView) openTaskForm(existing *model.Task) {
	v.seq++
	v.taskFormSeq = v.seq
	v.editingTaskID = ""
	if existing != nil {
		v.editingTaskID = existing.ID
	}
	v.taskForm = newTaskForm(existing)
	v.taskForm.busy = v.savingTask
	v.overlays = v.overlays.Open(overlayTaskForm)
}

// setFilter only changes what is drawn; nothing is refetched
func (v TasksView) setFilter(f model.Filter) TasksView {
	v.currentFilter = f
	v.cursor = 0
	v.scrollOffset = 0
	return v
}

func (v TasksView) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		v.overlays = v.overlays.CloseAll()
		return v, nil
	}

	switch v.overlays.Top() {
	case overlayTaskForm:
		form, cmd, action := v.taskForm.Update(msg)
		v.taskForm = form
		if action == formKeySubmit {
			return v.submitTask()
		}
		return v, cmd

	case overlayEditList:
		form, cmd, action := v.listForm.Update(msg)
		v.listForm = form
		if action == formKeySubmit {
			return v.submitList()
		}
		return v, cmd

	case overlayDeleteTask:
		switch msg.String() {
		case "y", "Y", "enter":
			return v.confirmDelete()
		case "n", "N":
			v.overlays = v.overlays.Close(overlayDeleteTask)
		}
	}
	return v, nil
}

// toggle flips a task's status locally, then asks the server to agree
func (v TasksView) toggle(id string) (tea.Model, tea.Cmd) {
	idx := indexOfTask(v.tasks, id)
	if idx < 0 {
		return v, nil
	}
	task := v.tasks[idx]
	change := v.ledger.Begin(id, task.Status, task.Status.Toggled())

	v.tasks = cloneTasks(v.tasks)
	v.tasks[idx].Status = change.Value

	in := task.Input()
	in.Status = change.Next
	svc, listID := v.svc, v.taskListID
	return v, func() tea.Msg {
		updated, err := svc.UpdateTask(context.Background(), listID, id, in)
		return taskToggledMsg{change: change, task: updated, err: err}
	}
}

// settleToggle stores the server's task or restores the status this toggle started from
func (v TasksView) settleToggle(msg taskToggledMsg) (tea.Model, tea.Cmd) {
	change := v.ledger.Settle(msg.change, msg.task.Status, msg.err)
	idx := indexOfTask(v.tasks, change.Key)

	if msg.err != nil {
		if idx >= 0 {
			v.tasks = cloneTasks(v.tasks)
			v.tasks[idx].Status = change.Value
		}
		return v, widgets.Error("Failed to update task: " + msg.err.Error())
	}

	// An empty body leaves the optimistic value in place.
	if idx >= 0 && msg.task.ID != "" {
		v.tasks = cloneTasks(v.tasks)
		v.tasks[idx] = msg.task
	}
	v.clampCursor()
	return v, nil
}

func (v TasksView) submitTask() (tea.Model, tea.Cmd) {
	if v.savingTask {
		return v, nil
	}
	in, err := v.taskForm.input()
	if err != nil {
		v.taskForm.err = model.TitleRequiredMessage
		v.taskForm = v.taskForm.setFocus(taskFieldTitle)
		return v, nil
	}
	v.taskForm.err = ""
	v.taskForm.busy = true
	v.savingTask = true

	svc, listID, seq := v.svc, v.taskListID, v.taskFormSeq
	if id := v.editingTaskID; id != "" {
		in.ID = id
		return v, func() tea.Msg {
			t, err := svc.UpdateTask(context.Background(), listID, id, in)
			if err == nil && t.ID == "" {
				t = taskFromInput(in)
			}
			return taskSavedMsg{seq: seq, task: t, err: err}
		}
	}
	return v, func() tea.Msg {
		t, err := svc.CreateTask(context.Background(), listID, in)
		return taskSavedMsg{seq: seq, task: t, created: true, err: err}
	}
}

func (v TasksView) submitList() (tea.Model, tea.Cmd) {
	if v.savingList {
		return v, nil
	}
	title, desc, err := v.listForm.values()
	if err != nil {
		v.listForm.err = model.TitleRequiredMessage
		v.listForm = v.listForm.setFocus(0)
		return v, nil
	}
	v.listForm.err = ""
	v.listForm.busy = true
	v.savingList = true

	svc, id, seq := v.svc, v.taskListID, v.listFormSeq
	return v, func() tea.Msg {
		l, err := svc.UpdateTaskList(context.Background(), id, title, desc)
		return currentListSavedMsg{seq: seq, list: l, err: err}
	}
}

func (v TasksView) confirmDelete() (tea.Model, tea.Cmd) {
	if v.deletingTaskID == "" || v.deletingTask {
		return v, nil
	}
	v.confirm.busy = true
	v.deletingTask = true
	svc, listID, id, seq := v.svc, v.taskListID, v.deletingTaskID, v.confirmSeq
	return v, func() tea.Msg {
		return taskDeletedMsg{seq: seq, id: id, err: svc.DeleteTask(context.Background(), listID, id)}
	}
}

// visibleTasks returns the tasks that pass the current filter
func (v TasksView) visibleTasks() []model.Task {
	return viewmodel.FilterTasks(v.tasks, v.currentFilter)
}

func (v TasksView) selected() (model.Task, bool) {
	visible := v.visibleTasks()
	if v.cursor < 0 || v.cursor >= len(visible) {
		return model.Task{}, false
	}
	return visible[v.cursor], true
}

func (v *TasksView) moveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

func (v *TasksView) clampCursor() {
	n := len(v.visibleTasks())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.ensureCursorVisible()
}

func (v TasksView) visibleRowCount() int {
	available := (v.height - 8) / taskRowHeight
	if available < 1 {
		available = 1
	}
	return available
}

func (v *TasksView) ensureCursorVisible() {
	visible := v.visibleRowCount()
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}
	maxOffset := max(0, len(v.visibleTasks())-visible)
	v.scrollOffset = min(max(0, v.scrollOffset), maxOffset)
}

func (v TasksView) modalContent() (string, string) {
	switch v.overlays.Top() {
	case overlayTaskForm:
		return v.taskForm.heading(), v.taskForm.View()
	case overlayDeleteTask:
		return v.confirm.heading(), v.confirm.View()
	case overlayEditList:
		return "Edit List", v.listForm.View()
	}
	return "", ""
}

func (v TasksView) modalRect() widgets.Rect {
	title, body := v.modalContent()
	_, rect := widgets.RenderModal(v.width, v.height, title, body)
	return rect
}

// View renders the tasks page
func (v TasksView) View() string {
	if v.overlays.Locked() {
		title, body := v.modalContent()
		out, _ := widgets.RenderModal(v.width, v.height, title, body)
		return out
	}

	styles := theme.Current.Styles
	page := viewmodel.BuildTasksPage(v.tasks, v.currentFilter)

	var b strings.Builder
	if h, ok := v.Header(); ok {
		b.WriteString(styles.Eyebrow.Render(strings.ToUpper(h.Eyebrow)))
		b.WriteString("\n")
		b.WriteString(styles.Title.Render(h.Title))
		b.WriteString("\n")
		if h.Description != "" {
			b.WriteString(styles.Description.Render(h.Description))
			b.WriteString("\n")
		}
	}
	b.WriteString(v.renderStats(page.Stats))
	b.WriteString("\n")
	b.WriteString(v.renderFilters())
	b.WriteString("\n\n")

	if page.Empty {
		b.WriteString(styles.Empty.Render(emptyTasksText(v.currentFilter)))
		return b.String()
	}

	width := min(max(v.width-2, 20), 96)
	end := min(len(page.Items), v.scrollOffset+v.visibleRowCount())
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderItem(page.Items[i], i == v.cursor, width))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v TasksView) renderStats(stats viewmodel.TaskStats) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme
	chip := func(color lipgloss.Color, n int, label string) string {
		dot := lipgloss.NewStyle().Foreground(color).Render("●")
		return styles.StatChip.Render(dot + " " + styles.StatValue.Render(itoa(n)) + " " + label)
	}
	return chip(t.Subtle, stats.Total, "total") +
		chip(t.StatusOpen, stats.Open, "open") +
		chip(t.StatusClosed, stats.Done, "done")
}

func (v TasksView) renderFilters() string {
	styles := theme.Current.Styles
	buttons := make([]string, 0, len(model.Filters))
	for _, f := range model.Filters {
		style := styles.FilterButton
		if f == v.currentFilter {
			style = styles.FilterActive
		}
		buttons = append(buttons, style.Render(f.Label()))
	}
	return strings.Join(buttons, " ")
}

func (v TasksView) renderItem(item viewmodel.TaskItem, selected bool, width int) string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	box := styles.Checkbox.Render("[ ]")
	titleStyle := styles.TaskNormal
	if item.Completed {
		box = styles.CheckboxChecked.Render("[✓]")
		titleStyle = styles.TaskDone
	}
	if selected {
		titleStyle = styles.TaskSelected
	}
	cursor := "  "
	if selected {
		cursor = styles.TaskSelected.Render("› ")
	}

	lines := []string{cursor + box + " " + titleStyle.Render(truncate(item.Title, width-8))}
	if item.Description != "" {
		lines = append(lines, "      "+styles.TaskDesc.Render(truncate(item.Description, width-8)))
	}

	tags := styles.PriorityStyle(t, item.Priority).Render("⚑ "+item.PriorityLabel) +
		styles.StatusStyle(t, item.Status).Render(item.StatusLabel)
	if item.DueLabel != "" {
		tags += " " + styles.DueDate.Render("◷ "+item.DueLabel)
	}
	if selected {
		tags += "  " + styles.HelpDesc.Render(item.ToggleHint)
	}
	lines = append(lines, "      "+tags)
	return strings.Join(lines, "\n")
}

func emptyTasksText(f model.Filter) string {
	switch f {
	case model.FilterOpen:
		return "No open tasks."
	case model.FilterClosed:
		return "No completed tasks yet."
	default:
		return "No tasks yet. Press n to add one."
	}
}

func indexOfTask(tasks []model.Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func cloneTasks(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}

func replaceTask(tasks []model.Task, task model.Task) []model.Task {
	out := cloneTasks(tasks)
	if i := indexOfTask(out, task.ID); i >= 0 {
		out[i] = task
	}
	return out
}

func removeTask(tasks []model.Task, id string) []model.Task {
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

func taskFromInput(in model.TaskInput) model.Task {
	return model.Task{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      in.Status,
	}
}
