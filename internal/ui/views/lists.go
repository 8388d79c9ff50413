package views

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
	"github.com/dori/taskflow/internal/service"
	"github.com/dori/taskflow/internal/ui/theme"
	"github.com/dori/taskflow/internal/ui/widgets"
	"github.com/dori/taskflow/internal/viewmodel"
)

// Overlay names on the lists page
const (
	overlayListForm   = "listModal"
	overlayDeleteList = "deleteModal"
)

// cardHeight is the rendered height of one list card, borders included
const cardHeight = 5

// ListsView shows every task list as a card
type ListsView struct {
	svc    service.Service
	now    func() time.Time
	width  int
	height int

	lists        []model.TaskList
	cursor       int
	scrollOffset int

	editingListID  string
	deletingListID string
	form           listForm
	confirm        confirmDialog
	overlays       widgets.Overlays

	// Requests outlive their modal. A reopened modal stays busy until
	// the reply arrives, and only the modal that sent it is closed by it.
	seq        int
	formSeq    int
	confirmSeq int
	saving     bool
	deleting   bool
}

// NewListsView creates the lists page
func NewListsView(svc service.Service) ListsView {
	return ListsView{
		svc:  svc,
		now:  time.Now,
		form: newListForm(nil),
	}
}

// WithClock replaces the clock used for relative creation times
func (v ListsView) WithClock(now func() time.Time) ListsView {
	v.now = now
	return v
}

// Init loads the lists
func (v ListsView) Init() tea.Cmd {
	return v.loadLists()
}

// IsInputMode returns true while a modal is capturing keys
func (v ListsView) IsInputMode() bool {
	return v.overlays.Locked()
}

// SetSize updates the view dimensions
func (v ListsView) SetSize(width, height int) ListsView {
	v.width = width
	v.height = height
	return v
}

// Lists returns the lists currently held by the page
func (v ListsView) Lists() []model.TaskList {
	return v.lists
}

func (v ListsView) loadLists() tea.Cmd {
	svc := v.svc
	return tea.Batch(
		widgets.StartLoading(),
		func() tea.Msg {
			lists, err := svc.ListTaskLists(context.Background())
			return listsLoadedMsg{lists: lists, err: err}
		},
	)
}

// Update handles messages for the lists page
func (v ListsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listsLoadedMsg:
		if msg.err != nil {
			return v, tea.Batch(
				widgets.FinishLoading(),
				widgets.Error("Failed to load lists: "+msg.err.Error()),
			)
		}
		v.lists = msg.lists
		v.clampCursor()
		return v, widgets.FinishLoading()

	case listSavedMsg:
		v.saving = false
		v.form.busy = false
		if msg.err != nil {
			return v, widgets.Error(msg.err.Error())
		}
		if msg.seq == v.formSeq {
			v.overlays = v.overlays.Close(overlayListForm)
			v.editingListID = ""
		}
		text := "List updated successfully"
		if msg.created {
			text = "List created!"
		}
		return v, tea.Batch(widgets.Success(text), v.loadLists())

	case listDeletedMsg:
		v.deleting = false
		v.confirm.busy = false
		if msg.err != nil {
			return v, widgets.Error(msg.err.Error())
		}
		if msg.seq == v.confirmSeq || msg.id == v.deletingListID {
			v.overlays = v.overlays.Close(overlayDeleteList)
			v.deletingListID = ""
		}
		return v, tea.Batch(widgets.Success("List deleted"), v.loadLists())

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

func (v ListsView) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
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

func (v ListsView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		v.moveCursor(-1)
	case "down", "j":
		v.moveCursor(1)
	case "g":
		v.cursor = 0
		v.ensureCursorVisible()
	case "G":
		v.cursor = max(0, len(v.lists)-1)
		v.ensureCursorVisible()
	case "enter":
		if l, ok := v.selected(); ok {
			return v, Navigate(TaskListPath(l.ID))
		}
	case "n", "a":
		v.openForm(nil)
	case "e":
		if l, ok := v.selected(); ok {
			v.openForm(&l)
		}
	case "d":
		if l, ok := v.selected(); ok {
			v.seq++
			v.confirmSeq = v.seq
			v.deletingListID = l.ID
			v.confirm = confirmDialog{id: l.ID, name: l.Title, noun: "List", busy: v.deleting}
			v.overlays = v.overlays.Open(overlayDeleteList)
		}
	case "r":
		return v, v.loadLists()
	}
	return v, nil
}

func (v ListsView) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		v.overlays = v.overlays.CloseAll()
		return v, nil
	}

	switch v.overlays.Top() {
	case overlayListForm:
		form, cmd, action := v.form.Update(msg)
		v.form = form
		if action == formKeySubmit {
			return v.submitList()
		}
		return v, cmd

	case overlayDeleteList:
		switch msg.String() {
		case "y", "Y", "enter":
			return v.confirmDelete()
		case "n", "N":
			v.overlays = v.overlays.Close(overlayDeleteList)
		}
	}
	return v, nil
}

func (v *ListsView) openForm(existing *model.TaskList) {
	v.seq++
	v.formSeq = v.seq
	v.editingListID = ""
	if existing != nil {
		v.editingListID = existing.ID
	}
	v.form = newListForm(existing)
	v.form.busy = v.saving
	v.overlays = v.overlays.Open(overlayListForm)
}

// submitList validates locally and only then calls the server
func (v ListsView) submitList() (tea.Model, tea.Cmd) {
	if v.saving {
		return v, nil
	}
	title, desc, err := v.form.values()
	if err != nil {
		v.form.err = model.TitleRequiredMessage
		v.form = v.form.setFocus(0)
		return v, nil
	}
	v.form.err = ""
	v.form.busy = true
	v.saving = true

	svc, seq := v.svc, v.formSeq
	id := v.editingListID
	if id != "" {
		return v, func() tea.Msg {
			l, err := svc.UpdateTaskList(context.Background(), id, title, desc)
			return listSavedMsg{seq: seq, list: l, err: err}
		}
	}
	return v, func() tea.Msg {
		l, err := svc.CreateTaskList(context.Background(), title, desc)
		return listSavedMsg{seq: seq, list: l, created: true, err: err}
	}
}

func (v ListsView) confirmDelete() (tea.Model, tea.Cmd) {
	if v.deletingListID == "" || v.deleting {
		return v, nil
	}
	v.confirm.busy = true
	v.deleting = true
	svc, seq := v.svc, v.confirmSeq
	id := v.deletingListID
	return v, func() tea.Msg {
		return listDeletedMsg{seq: seq, id: id, err: svc.DeleteTaskList(context.Background(), id)}
	}
}

func (v ListsView) selected() (model.TaskList, bool) {
	if v.cursor < 0 || v.cursor >= len(v.lists) {
		return model.TaskList{}, false
	}
	return v.lists[v.cursor], true
}

func (v *ListsView) moveCursor(delta int) {
	v.cursor += delta
	v.clampCursor()
}

func (v *ListsView) clampCursor() {
	if v.cursor >= len(v.lists) {
		v.cursor = len(v.lists) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.ensureCursorVisible()
}

// visibleCardCount returns how many cards fit below the page heading
func (v ListsView) visibleCardCount() int {
	available := (v.height - 4) / cardHeight
	if available < 1 {
		available = 1
	}
	return available
}

// ensureCursorVisible adjusts scrollOffset to keep cursor in view
func (v *ListsView) ensureCursorVisible() {
	visible := v.visibleCardCount()
	if v.cursor < v.scrollOffset {
		v.scrollOffset = v.cursor
	}
	if v.cursor >= v.scrollOffset+visible {
		v.scrollOffset = v.cursor - visible + 1
	}
	maxOffset := max(0, len(v.lists)-visible)
	v.scrollOffset = min(max(0, v.scrollOffset), maxOffset)
}

func (v ListsView) modalContent() (string, string) {
	switch v.overlays.Top() {
	case overlayListForm:
		return v.form.heading(), v.form.View()
	case overlayDeleteList:
		return v.confirm.heading(), v.confirm.View()
	}
	return "", ""
}

func (v ListsView) modalRect() widgets.Rect {
	title, body := v.modalContent()
	_, rect := widgets.RenderModal(v.width, v.height, title, body)
	return rect
}

// View renders the lists page
func (v ListsView) View() string {
	if v.overlays.Locked() {
		title, body := v.modalContent()
		out, _ := widgets.RenderModal(v.width, v.height, title, body)
		return out
	}

	styles := theme.Current.Styles
	page := viewmodel.BuildListsPage(v.lists, v.now())

	var b strings.Builder
	b.WriteString(styles.Title.Render("Task Lists"))
	b.WriteString("  ")
	b.WriteString(styles.CountLabel.Render(page.CountLabel))
	b.WriteString("\n")

	if page.Empty {
		b.WriteString(styles.Empty.Render("Nothing here yet. Press n to create your first list."))
		return b.String()
	}

	b.WriteString(styles.StatChip.Render(styles.StatValue.Render(itoa(page.TotalLists)) + " total lists"))
	b.WriteString("\n\n")

	cardWidth := min(max(v.width-2, 20), 72)
	end := min(len(page.Cards), v.scrollOffset+v.visibleCardCount())
	for i := v.scrollOffset; i < end; i++ {
		b.WriteString(v.renderCard(page.Cards[i], i == v.cursor, cardWidth))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v ListsView) renderCard(card viewmodel.ListCard, selected bool, width int) string {
	styles := theme.Current.Styles

	desc := styles.CardDesc.Render(truncate(card.Description, width-4))
	if card.IsPlaceholder {
		desc = styles.Placeholder.Render(card.Description)
	}
	meta := ""
	if card.Created != "" {
		meta = styles.Meta.Render("◷ " + card.Created)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.CardTitle.Render(truncate(card.Title, width-4)),
		desc,
		meta,
	)
	style := styles.Card
	if selected {
		style = styles.CardSelected
	}
	return style.Width(width - 2).Render(body)
}
