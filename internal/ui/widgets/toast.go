// Package widgets holds the shared UI pieces both pages use: toasts, the loading bar and modal overlays.
package widgets

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/ui/theme"
)

const (
	// ToastVisible is how long a toast stays fully visible.
	ToastVisible = 3000 * time.Millisecond
	// ToastFade is how long a toast fades before it is removed.
	ToastFade = 300 * time.Millisecond
)

// ToastKind selects the icon and color of a toast
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// Icon returns the glyph shown before the message
func (k ToastKind) Icon() string {
	if k == ToastError {
		return "✗"
	}
	return "✓"
}

func (k ToastKind) String() string {
	if k == ToastError {
		return "error"
	}
	return "success"
}

// ToastMsg asks the root model to show a toast
type ToastMsg struct {
	Text string
	Kind ToastKind
}

// Success returns a command that shows a success toast
func Success(text string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Text: text, Kind: ToastSuccess}
	}
}

// Error returns a command that shows an error toast
func Error(text string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Text: text, Kind: ToastError}
	}
}

// Toast is one visible notification
type Toast struct {
	ID     int
	Text   string
	Kind   ToastKind
	Fading bool
}

type toastFadeMsg struct{ id int }

type toastExpireMsg struct{ id int }

// Toaster stacks toasts and retires them on timers
type Toaster struct {
	toasts  []Toast
	nextID  int
	visible time.Duration
	fade    time.Duration
}

// NewToaster creates a toaster with the standard timings
func NewToaster() Toaster {
	return Toaster{visible: ToastVisible, fade: ToastFade}
}

// Update handles toast messages and their timers
func (t Toaster) Update(msg tea.Msg) (Toaster, tea.Cmd) {
	switch msg := msg.(type) {
	case ToastMsg:
		t.nextID++
		id := t.nextID
		t.toasts = append(append([]Toast(nil), t.toasts...), Toast{ID: id, Text: msg.Text, Kind: msg.Kind})
		return t, tea.Tick(t.visible, func(time.Time) tea.Msg {
			return toastFadeMsg{id: id}
		})

	case toastFadeMsg:
		found := false
		toasts := append([]Toast(nil), t.toasts...)
		for i := range toasts {
			if toasts[i].ID == msg.id {
				toasts[i].Fading = true
				found = true
			}
		}
		t.toasts = toasts
		if !found {
			return t, nil
		}
		return t, tea.Tick(t.fade, func(time.Time) tea.Msg {
			return toastExpireMsg{id: msg.id}
		})

	case toastExpireMsg:
		t.toasts = t.without(msg.id)
	}
	return t, nil
}

// Dismiss removes every toast immediately
func (t Toaster) Dismiss() Toaster {
	t.toasts = nil
	return t
}

// Toasts returns the toasts currently shown, oldest first
func (t Toaster) Toasts() []Toast {
	return t.toasts
}

func (t Toaster) without(id int) []Toast {
	out := make([]Toast, 0, len(t.toasts))
	for _, toast := range t.toasts {
		if toast.ID != id {
			out = append(out, toast)
		}
	}
	return out
}

// View renders the stack right-aligned within width
func (t Toaster) View(width int) string {
	if len(t.toasts) == 0 {
		return ""
	}
	styles := theme.Current.Styles

	lines := make([]string, 0, len(t.toasts))
	for _, toast := range t.toasts {
		style := styles.ToastSuccess
		if toast.Kind == ToastError {
			style = styles.ToastError
		}
		if toast.Fading {
			style = styles.ToastFading
		}
		lines = append(lines, style.Render(toast.Kind.Icon()+" "+toast.Text))
	}
	stack := lipgloss.JoinVertical(lipgloss.Right, lines...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, strings.TrimRight(stack, "\n"))
}
