package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/model"
)

// Theme defines the color scheme and styles for the UI
type Theme struct {
	Name string

	// Base colors
	Background lipgloss.Color
	Foreground lipgloss.Color
	Subtle     lipgloss.Color
	Highlight  lipgloss.Color
	Border     lipgloss.Color

	// Semantic colors
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Info      lipgloss.Color

	// Priority colors
	PriorityLow    lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityHigh   lipgloss.Color

	// Status colors
	StatusOpen   lipgloss.Color
	StatusClosed lipgloss.Color
}

// Styles holds pre-computed lipgloss styles based on theme
type Styles struct {
	// Base styles
	App        lipgloss.Style
	Header     lipgloss.Style
	Breadcrumb lipgloss.Style
	Footer     lipgloss.Style

	// Page heading
	Eyebrow     lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
	CountLabel  lipgloss.Style

	// Cards on the lists page
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	CardDesc     lipgloss.Style
	Placeholder  lipgloss.Style
	Meta         lipgloss.Style

	// Stats and filters
	StatChip     lipgloss.Style
	StatValue    lipgloss.Style
	FilterButton lipgloss.Style
	FilterActive lipgloss.Style

	// Task rows
	TaskNormal      lipgloss.Style
	TaskSelected    lipgloss.Style
	TaskDone        lipgloss.Style
	TaskDesc        lipgloss.Style
	Checkbox        lipgloss.Style
	CheckboxChecked lipgloss.Style
	Tag             lipgloss.Style
	DueDate         lipgloss.Style

	// Modals and forms
	Modal          lipgloss.Style
	ModalTitle     lipgloss.Style
	FieldLabel     lipgloss.Style
	FieldError     lipgloss.Style
	Input          lipgloss.Style
	InputFocused   lipgloss.Style
	Button         lipgloss.Style
	ButtonPrimary  lipgloss.Style
	ButtonDanger   lipgloss.Style
	ButtonDisabled lipgloss.Style

	// Toasts
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastFading  lipgloss.Style

	// Help styles
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style

	// Empty state
	Empty lipgloss.Style
}

// NewStyles creates styles from a theme
func NewStyles(t Theme) Styles {
	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	button := lipgloss.NewStyle().
		Padding(0, 2).
		MarginRight(1)

	return Styles{
		App: lipgloss.NewStyle().
			Foreground(t.Foreground),

		Header: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Padding(0, 1),

		Breadcrumb: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Footer: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		Eyebrow: lipgloss.NewStyle().
			Foreground(t.Secondary).
			Bold(true),

		Title: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		Description: lipgloss.NewStyle().
			Foreground(t.Subtle),

		CountLabel: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true),

		Card: card,

		CardSelected: card.
			BorderForeground(t.Primary),

		CardTitle: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		CardDesc: lipgloss.NewStyle().
			Foreground(t.Foreground),

		Placeholder: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true),

		Meta: lipgloss.NewStyle().
			Foreground(t.Subtle),

		StatChip: lipgloss.NewStyle().
			Foreground(t.Subtle).
			MarginRight(2),

		StatValue: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Bold(true),

		FilterButton: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Padding(0, 1),

		FilterActive: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true).
			Padding(0, 1),

		TaskNormal: lipgloss.NewStyle().
			Foreground(t.Foreground),

		TaskSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TaskDone: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Strikethrough(true),

		TaskDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Checkbox: lipgloss.NewStyle().
			Foreground(t.StatusOpen),

		CheckboxChecked: lipgloss.NewStyle().
			Foreground(t.StatusClosed),

		Tag: lipgloss.NewStyle().
			Foreground(t.Info).
			MarginRight(1),

		DueDate: lipgloss.NewStyle().
			Foreground(t.Warning),

		Modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(1, 2),

		ModalTitle: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			MarginBottom(1),

		FieldLabel: lipgloss.NewStyle().
			Foreground(t.Subtle),

		FieldError: lipgloss.NewStyle().
			Foreground(t.Error),

		Input: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Primary).
			Padding(0, 1),

		Button: button.
			Foreground(t.Foreground).
			Background(t.Highlight),

		ButtonPrimary: button.
			Foreground(t.Background).
			Background(t.Primary).
			Bold(true),

		ButtonDanger: button.
			Foreground(t.Background).
			Background(t.Error).
			Bold(true),

		ButtonDisabled: button.
			Foreground(t.Subtle).
			Background(t.Highlight),

		ToastSuccess: lipgloss.NewStyle().
			Foreground(t.Success).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Success).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			Foreground(t.Error).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Error).
			Padding(0, 1),

		ToastFading: lipgloss.NewStyle().
			Foreground(t.Subtle).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Subtle).
			Padding(0, 1),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		HelpDesc: lipgloss.NewStyle().
			Foreground(t.Subtle),

		Empty: lipgloss.NewStyle().
			Foreground(t.Subtle).
			Italic(true).
			Padding(1, 2),
	}
}

// PriorityStyle returns the tag style for a priority
func (s Styles) PriorityStyle(t Theme, p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return s.Tag.Foreground(t.PriorityHigh)
	case model.PriorityMedium:
		return s.Tag.Foreground(t.PriorityMedium)
	case model.PriorityLow:
		return s.Tag.Foreground(t.PriorityLow)
	default:
		return s.Tag
	}
}

// StatusStyle returns the tag style for a status
func (s Styles) StatusStyle(t Theme, st model.Status) lipgloss.Style {
	switch st {
	case model.StatusOpen:
		return s.Tag.Foreground(t.StatusOpen)
	case model.StatusClosed:
		return s.Tag.Foreground(t.StatusClosed)
	default:
		return s.Tag
	}
}

// Current holds the current active theme and styles
var Current = struct {
	Theme  Theme
	Styles Styles
}{
	Theme:  Nord,
	Styles: NewStyles(Nord),
}

// SetTheme changes the current theme
func SetTheme(t Theme) {
	Current.Theme = t
	Current.Styles = NewStyles(t)
}

// Available returns all available themes
func Available() []Theme {
	return []Theme{
		Nord,
		Dracula,
		Gruvbox,
		Catppuccin,
	}
}

// Names returns the names of all available themes
func Names() []string {
	themes := Available()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name
func ByName(name string) (Theme, bool) {
	for _, t := range Available() {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Next returns the theme after name, wrapping around
func Next(name string) Theme {
	themes := Available()
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
