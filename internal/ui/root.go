package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/taskflow/internal/logging"
	"github.com/dori/taskflow/internal/notify"
	"github.com/dori/taskflow/internal/service"
	"github.com/dori/taskflow/internal/ui/theme"
	"github.com/dori/taskflow/internal/ui/views"
	"github.com/dori/taskflow/internal/ui/widgets"
	"github.com/dori/taskflow/internal/viewmodel"
)

// headerHeight is the title line plus the loading bar
const headerHeight = 2

// footerHeight reserves one toast line and one hint line
const footerHeight = 2

// Options wires the root model to its collaborators
type Options struct {
	Service  service.Service
	Notifier *notify.Notifier
	Logger   *logging.Logger
	// Route is the first page shown, "/" when empty
	Route string
}

// RootModel owns routing, the header and the footer. Pages render in between.
type RootModel struct {
	svc      service.Service
	notifier *notify.Notifier
	logger   *logging.Logger
	keys     KeyMap
	help     help.Model
	width    int
	height   int

	page        Page
	route       string
	listsView   views.ListsView
	tasksView   views.TasksView
	toaster     widgets.Toaster
	loading     widgets.LoadingBar
	helpVisible bool
}

// NewRootModel creates a new root model
func NewRootModel(opts Options) RootModel {
	h := help.New()
	h.ShowAll = false

	m := RootModel{
		svc:      opts.Service,
		notifier: opts.Notifier,
		logger:   opts.Logger,
		keys:     DefaultKeyMap(),
		help:     h,
		toaster:  widgets.NewToaster(),
		loading:  widgets.NewLoadingBar(),
	}
	m.page, m.route = pageFor(opts.Route)
	switch m.page {
	case PageTasks:
		m.tasksView = views.NewTasksView(m.svc, m.route)
	default:
		m.listsView = views.NewListsView(m.svc)
	}
	return m
}

// Init loads the first page
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(viewmodel.AppName), m.currentInit())
}

// Route returns the active route
func (m RootModel) Route() string {
	return m.route
}

// Page returns the active page
func (m RootModel) Page() Page {
	return m.page
}

// Toasts returns the toasts on screen
func (m RootModel) Toasts() []widgets.Toast {
	return m.toaster.Toasts()
}

// Loading returns the loading bar fill
func (m RootModel) Loading() float64 {
	return m.loading.Percent()
}

func (m RootModel) currentInit() tea.Cmd {
	if m.page == PageTasks {
		return m.tasksView.Init()
	}
	return m.listsView.Init()
}

func (m RootModel) isInputMode() bool {
	if m.page == PageTasks {
		return m.tasksView.IsInputMode()
	}
	return m.listsView.IsInputMode()
}

func (m RootModel) contentHeight() int {
	return max(0, m.height-headerHeight-footerHeight)
}

// navigate swaps in a fresh page for path and starts its loads
func (m RootModel) navigate(path string) (RootModel, tea.Cmd) {
	m.page, m.route = pageFor(path)
	m.helpVisible = false
	m.logger.Debug("navigate", "route", m.route)

	switch m.page {
	case PageTasks:
		m.tasksView = views.NewTasksView(m.svc, m.route).SetSize(m.width, m.contentHeight())
		return m, m.tasksView.Init()
	default:
		m.listsView = views.NewListsView(m.svc).SetSize(m.width, m.contentHeight())
		return m, tea.Batch(tea.SetWindowTitle(viewmodel.AppName), m.listsView.Init())
	}
}

// mirror forwards a toast to the desktop when notifications are enabled
func (m RootModel) mirror(msg widgets.ToastMsg) tea.Cmd {
	if !m.notifier.IsEnabled() {
		return nil
	}
	n, logger := m.notifier, m.logger
	return func() tea.Msg {
		if err := n.Toast(msg.Text, msg.Kind == widgets.ToastError); err != nil {
			logger.Warn("desktop notification failed", "err", err)
		}
		return nil
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Toast and loading timers are addressed to the widgets, whatever the page.
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Update(msg)
	cmds = append(cmds, cmd)
	m.loading, cmd = m.loading.Update(msg)
	cmds = append(cmds, cmd)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.loading = m.loading.SetWidth(msg.Width)
		m.listsView = m.listsView.SetSize(m.width, m.contentHeight())
		m.tasksView = m.tasksView.SetSize(m.width, m.contentHeight())
		return m, tea.Batch(cmds...)

	case views.NavigateMsg:
		next, cmd := m.navigate(msg.Path)
		return next, tea.Batch(append(cmds, cmd)...)

	case widgets.ToastMsg:
		if msg.Kind == widgets.ToastError {
			m.logger.Warn("toast", "text", msg.Text)
		}
		return m, tea.Batch(append(cmds, m.mirror(msg))...)

	case widgets.LoadingMsg:
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		// Pages lay out from their own top edge.
		msg.Y -= headerHeight
		cmds = append(cmds, m.delegate(msg))
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		inputMode := m.isInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !inputMode {
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.ThemeCycle):
			next := theme.Next(theme.Current.Theme.Name)
			theme.SetTheme(next)
			return m, widgets.Success("Theme: " + next.Name)

		case key.Matches(msg, m.keys.DismissToast):
			m.toaster = m.toaster.Dismiss()
			return m, nil
		}

		if !inputMode {
			if key.Matches(msg, m.keys.Help) {
				m.helpVisible = !m.helpVisible
				m.help.ShowAll = m.helpVisible
				return m, nil
			}
			if m.helpVisible && msg.String() == "esc" {
				m.helpVisible = false
				m.help.ShowAll = false
				return m, nil
			}
		}
	}

	cmds = append(cmds, m.delegate(msg))
	return m, tea.Batch(cmds...)
}

// delegate hands msg to the active page
func (m *RootModel) delegate(msg tea.Msg) tea.Cmd {
	switch m.page {
	case PageTasks:
		next, cmd := m.tasksView.Update(msg)
		m.tasksView = next.(views.TasksView)
		return cmd
	default:
		next, cmd := m.listsView.Update(msg)
		m.listsView = next.(views.ListsView)
		return cmd
	}
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	footer := m.renderFooter()

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else if m.page == PageTasks {
		content = m.tasksView.View()
	} else {
		content = m.listsView.View()
	}
	content = fitHeight(content, contentHeight)

	return strings.Join([]string{header, content, footer}, "\n")
}

// fitHeight pads or cuts s to exactly h lines
func fitHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// breadcrumb returns the trail shown after the app name
func (m RootModel) breadcrumb() string {
	if m.page != PageTasks {
		return PageLists.String()
	}
	crumb := PageLists.String() + " › "
	if h, ok := m.tasksView.Header(); ok {
		return crumb + h.Breadcrumb
	}
	return crumb + "…"
}

// renderHeader renders the title line and the loading bar
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render(viewmodel.AppName)
	crumb := styles.Breadcrumb.Render(m.breadcrumb())
	themeIndicator := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1).
		Render("theme: " + t.Name)

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, crumb)
	gap := max(0, m.width-lipgloss.Width(leftSide)-lipgloss.Width(themeIndicator))
	line := leftSide + strings.Repeat(" ", gap) + themeIndicator

	return line + "\n" + m.loading.View()
}

// renderFooter renders the toast stack above context-aware key hints
func (m RootModel) renderFooter() string {
	var bindings []key.Binding
	switch {
	case m.isInputMode():
		bindings = m.keys.modalHints()
	case m.page == PageTasks:
		bindings = m.keys.tasksHints()
	default:
		bindings = m.keys.listsHints()
	}

	toasts := m.toaster.View(m.width)
	hints := m.help.ShortHelpView(bindings)
	if toasts == "" {
		return "\n" + hints
	}
	return toasts + "\n" + hints
}

// renderHelp renders the full key reference
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles
	var b strings.Builder
	b.WriteString(styles.Title.Render(viewmodel.AppName + " Help"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(styles.HelpDesc.Render("Press ? or esc to close · themes: " + strings.Join(theme.Names(), ", ")))
	return b.String()
}
