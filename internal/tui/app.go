// Package tui is the interactive host: a query box over the launcher's
// item lists with drill-down navigation.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hellausefulsoftware/hublaunch/internal/menu"
)

// Runner is the part of the router the TUI drives
type Runner interface {
	Run(ctx context.Context, input string, modifier bool) ([]menu.Item, error)
	Dispatch(ctx context.Context, action, argument string, modifier bool) ([]menu.Item, error)
	Select(ctx context.Context, item menu.Item, modifier bool) ([]menu.Item, error)
}

// KeyMap defines keybindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	Modifier key.Binding
	Back     key.Binding
	Quit     key.Binding
	Help     key.Binding
}

// DefaultKeyMap returns the default keybindings. Printable keys are left
// to the query box.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Modifier: key.NewBinding(
			key.WithKeys("alt+enter"),
			key.WithHelp("alt+enter", "open directly"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
	}
}

// Options controls how the TUI starts
type Options struct {
	// Query is routed as soon as the TUI starts
	Query string
	// Action, when set, is dispatched instead of routing Query
	Action   string
	Argument string
	// Timeout bounds each request; zero means no bound
	Timeout time.Duration
}

// App is the main TUI application
type App struct {
	runner   Runner
	session  *Session
	opts     Options
	theme    *ColorblindFriendlyTheme
	keyMap   KeyMap
	help     help.Model
	screen   Screen
	width    int
	height   int
	ready    bool
	showHelp bool
}

// NewApp creates a new TUI application
func NewApp(runner Runner, session *Session, opts Options) *App {
	theme := NewTheme()
	helpModel := help.New()
	helpModel.Styles.ShortKey = theme.Bold
	helpModel.Styles.ShortDesc = theme.Text
	helpModel.Styles.ShortSeparator = theme.Faint
	helpModel.Styles.FullKey = theme.Bold
	helpModel.Styles.FullDesc = theme.Text
	helpModel.Styles.FullSeparator = theme.Faint

	app := &App{
		runner:  runner,
		session: session,
		opts:    opts,
		theme:   theme,
		keyMap:  DefaultKeyMap(),
		help:    helpModel,
	}
	app.screen = NewLauncherScreen(app)
	return app
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.screen.Init()
}

// Update handles UI updates
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, a.keyMap.Quit):
			return a, tea.Quit
		case key.Matches(msg, a.keyMap.Help):
			a.showHelp = !a.showHelp
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.ready = true
	}

	newScreen, cmd := a.screen.Update(msg)
	if s, ok := newScreen.(Screen); ok && s != a.screen {
		a.screen = s
	}
	return a, cmd
}

// View renders the UI
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	content := a.screen.View()
	if a.showHelp {
		helpView := a.help.ShortHelpView(a.screen.ShortHelp())
		return lipgloss.JoinVertical(lipgloss.Left, content, "\n", helpView)
	}
	return content
}

func (a *App) requestContext() (context.Context, context.CancelFunc) {
	if a.opts.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), a.opts.Timeout)
}

// itemsMsg carries the result of a router call back into the update loop
type itemsMsg struct {
	// title labels the level pushed for drill-down results
	title string
	// query is the routed input, empty for dispatched actions
	query    string
	routed   bool
	modifier bool
	items    []menu.Item
	err      error
}

func (a *App) route(query string, modifier bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		items, err := a.runner.Run(ctx, query, modifier)
		return itemsMsg{query: query, routed: true, modifier: modifier, items: items, err: err}
	}
}

func (a *App) dispatch(title, action, argument string, modifier bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		items, err := a.runner.Dispatch(ctx, action, argument, modifier)
		if err != nil {
			err = fmt.Errorf("action %s failed: %w", action, err)
		}
		return itemsMsg{title: title, modifier: modifier, items: items, err: err}
	}
}

func (a *App) selectItem(item menu.Item, modifier bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.requestContext()
		defer cancel()
		items, err := a.runner.Select(ctx, item, modifier)
		return itemsMsg{title: item.Title, modifier: modifier, items: items, err: err}
	}
}

// Run runs the TUI application until the user quits or an action
// dismisses the launcher
func Run(runner Runner, session *Session, opts Options) error {
	p := tea.NewProgram(NewApp(runner, session, opts), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
