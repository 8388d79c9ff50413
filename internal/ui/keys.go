package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings shown in the footer and help screen.
// The pages match keys themselves; these bindings describe them and drive the global ones.
type KeyMap struct {
	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Open   key.Binding
	Back   key.Binding

	// List and task actions
	Add      key.Binding
	Edit     key.Binding
	EditList key.Binding
	Delete   key.Binding
	Toggle   key.Binding
	Filter   key.Binding
	Reload   key.Binding

	// Modals
	Submit     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	CycleValue key.Binding
	Cancel     key.Binding

	// General
	Help         key.Binding
	ThemeCycle   key.Binding
	DismissToast key.Binding
	Quit         key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),

		Add: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "new"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		EditList: key.NewBinding(
			key.WithKeys("E"),
			key.WithHelp("E", "edit list"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "toggle done"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f", "1", "2", "3"),
			key.WithHelp("f/1-3", "filter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),

		Submit: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "save"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev field"),
		),
		CycleValue: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("←/→", "change"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ThemeCycle: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "theme"),
		),
		DismissToast: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("C-x", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns short help bindings (for status bar)
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns full help bindings (for help view)
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.Open, k.Back},
		{k.Add, k.Edit, k.EditList, k.Delete, k.Toggle, k.Filter, k.Reload},
		{k.Submit, k.NextField, k.PrevField, k.CycleValue, k.Cancel},
		{k.Help, k.ThemeCycle, k.DismissToast, k.Quit},
	}
}

// listsHints are the footer hints on the lists page
func (k KeyMap) listsHints() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Add, k.Edit, k.Delete, k.Reload, k.Help, k.Quit}
}

// tasksHints are the footer hints on a list's page
func (k KeyMap) tasksHints() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Add, k.Edit, k.EditList, k.Delete, k.Filter, k.Back, k.Help}
}

// modalHints are the footer hints while a modal is open
func (k KeyMap) modalHints() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.CycleValue, k.Cancel}
}
