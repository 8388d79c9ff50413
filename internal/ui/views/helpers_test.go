package views

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/taskflow/internal/ui/widgets"
)

// keyMsg builds the key message a terminal would send for s
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// isViewMsg reports whether msg is handled by the views themselves
func isViewMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case listsLoadedMsg, listSavedMsg, listDeletedMsg,
		listInfoLoadedMsg, tasksLoadedMsg, taskToggledMsg,
		taskSavedMsg, taskDeletedMsg, currentListSavedMsg:
		return true
	}
	return false
}

// pump runs cmd and everything it leads to, feeding view messages back into m.
// Messages addressed to the root model are returned in arrival order.
func pump[M tea.Model](t *testing.T, m M, cmd tea.Cmd) (M, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 1000 {
			t.Fatal("pump: command loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			if !isViewMsg(msg) {
				out = append(out, msg)
				continue
			}
			next, follow := m.Update(msg)
			m = next.(M)
			queue = append(queue, follow)
		}
	}
	return m, out
}

// press sends keys one at a time and pumps after each
func press[M tea.Model](t *testing.T, m M, keys ...string) (M, []tea.Msg) {
	t.Helper()
	var out []tea.Msg
	for _, k := range keys {
		next, cmd := m.Update(keyMsg(k))
		m = next.(M)
		var msgs []tea.Msg
		m, msgs = pump(t, m, cmd)
		out = append(out, msgs...)
	}
	return m, out
}

func toasts(msgs []tea.Msg) []widgets.ToastMsg {
	var out []widgets.ToastMsg
	for _, msg := range msgs {
		if toast, ok := msg.(widgets.ToastMsg); ok {
			out = append(out, toast)
		}
	}
	return out
}

func hasToast(msgs []tea.Msg, kind widgets.ToastKind, text string) bool {
	for _, toast := range toasts(msgs) {
		if toast.Kind == kind && toast.Text == text {
			return true
		}
	}
	return false
}

func navigations(msgs []tea.Msg) []string {
	var out []string
	for _, msg := range msgs {
		if nav, ok := msg.(NavigateMsg); ok {
			out = append(out, nav.Path)
		}
	}
	return out
}

func loadingStates(msgs []tea.Msg) []bool {
	var out []bool
	for _, msg := range msgs {
		if l, ok := msg.(widgets.LoadingMsg); ok {
			out = append(out, l.On)
		}
	}
	return out
}
