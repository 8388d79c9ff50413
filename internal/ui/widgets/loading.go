package widgets

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/taskflow/internal/ui/theme"
)

const (
	loadingStarted  = 0.75
	loadingFinished = 1.0
	// LoadingReset is how long a finished bar stays full before it empties.
	LoadingReset = 300 * time.Millisecond
)

// LoadingMsg turns the loading bar on or off
type LoadingMsg struct {
	On bool
}

// StartLoading returns a command that starts the loading bar
func StartLoading() tea.Cmd {
	return func() tea.Msg { return LoadingMsg{On: true} }
}

// FinishLoading returns a command that completes the loading bar
func FinishLoading() tea.Cmd {
	return func() tea.Msg { return LoadingMsg{On: false} }
}

type loadingResetMsg struct{ gen int }

// LoadingBar is a thin progress bar under the header
type LoadingBar struct {
	bar     progress.Model
	percent float64
	gen     int
	reset   time.Duration
}

// NewLoadingBar creates an empty loading bar
func NewLoadingBar() LoadingBar {
	bar := progress.New(
		progress.WithSolidFill(string(theme.Current.Theme.Primary)),
		progress.WithoutPercentage(),
	)
	bar.Full = '━'
	bar.Empty = ' '
	return LoadingBar{bar: bar, reset: LoadingReset}
}

// SetWidth sizes the bar
func (l LoadingBar) SetWidth(width int) LoadingBar {
	l.bar.Width = width
	return l
}

// Percent returns the current fill, between 0 and 1
func (l LoadingBar) Percent() float64 {
	return l.percent
}

// Update handles loading messages and the reset timer
func (l LoadingBar) Update(msg tea.Msg) (LoadingBar, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadingMsg:
		l.gen++
		if msg.On {
			l.percent = loadingStarted
			return l, nil
		}
		l.percent = loadingFinished
		gen := l.gen
		return l, tea.Tick(l.reset, func(time.Time) tea.Msg {
			return loadingResetMsg{gen: gen}
		})

	case loadingResetMsg:
		// A newer start or finish supersedes this reset.
		if msg.gen == l.gen {
			l.percent = 0
		}
	}
	return l, nil
}

// View renders the bar at its current fill
func (l LoadingBar) View() string {
	l.bar.FullColor = string(theme.Current.Theme.Primary)
	return l.bar.ViewAs(l.percent)
}
