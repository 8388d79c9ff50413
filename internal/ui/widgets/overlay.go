package widgets

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/ui/theme"
)

// Overlays is the set of open modal overlays, most recent last.
// While any is open the page behind it ignores navigation keys.
type Overlays struct {
	open []string
}

// Open shows the named overlay
func (o Overlays) Open(name string) Overlays {
	if o.IsOpen(name) {
		return o
	}
	o.open = append(append([]string(nil), o.open...), name)
	return o
}

// Close hides the named overlay
func (o Overlays) Close(name string) Overlays {
	out := make([]string, 0, len(o.open))
	for _, n := range o.open {
		if n != name {
			out = append(out, n)
		}
	}
	o.open = out
	return o
}

// CloseAll hides every overlay
func (o Overlays) CloseAll() Overlays {
	o.open = nil
	return o
}

// IsOpen reports whether the named overlay is shown
func (o Overlays) IsOpen(name string) bool {
	for _, n := range o.open {
		if n == name {
			return true
		}
	}
	return false
}

// Locked reports whether background navigation is blocked
func (o Overlays) Locked() bool {
	return len(o.open) > 0
}

// Top returns the most recently opened overlay, or ""
func (o Overlays) Top() string {
	if len(o.open) == 0 {
		return ""
	}
	return o.open[len(o.open)-1]
}

// Rect is a screen region in cells
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell at x, y is inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// CenteredRect returns where a box of the given size lands when centered in the area
func CenteredRect(areaW, areaH, boxW, boxH int) Rect {
	x := (areaW - boxW) / 2
	y := (areaH - boxH) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return Rect{X: x, Y: y, W: boxW, H: boxH}
}

// IsBackdropClick reports whether msg is a left click outside box
func IsBackdropClick(msg tea.MouseMsg, box Rect) bool {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	return !box.Contains(msg.X, msg.Y)
}

// RenderModal frames body as a modal and centers it in the area.
// It returns the rendered area and the box's position within it.
func RenderModal(areaW, areaH int, title, body string) (string, Rect) {
	styles := theme.Current.Styles
	box := styles.Modal.Render(lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitle.Render(title),
		body,
	))
	rect := CenteredRect(areaW, areaH, lipgloss.Width(box), lipgloss.Height(box))
	if areaW <= 0 || areaH <= 0 {
		return box, Rect{W: rect.W, H: rect.H}
	}
	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box), rect
}
