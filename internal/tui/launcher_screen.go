package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hellausefulsoftware/hublaunch/internal/host"
	"github.com/hellausefulsoftware/hublaunch/internal/menu"
)

// level is one list in the drill-down stack
type level struct {
	title string
	items []menu.Item
}

// LauncherScreen routes the query box and navigates the resulting items.
// The bottom level holds the routed results; deeper levels come from
// deferred items and are filtered by the query box.
type LauncherScreen struct {
	BaseScreen
	input       textinput.Model
	levels      []level
	routedQuery string
	cursor      int
	loading     bool
	err         error
	notes       []host.Notification
}

// NewLauncherScreen creates a new launcher screen
func NewLauncherScreen(app *App) *LauncherScreen {
	input := textinput.New()
	input.Prompt = "› "
	input.Placeholder = "user, owner/repo, owner/repo#123, sha or link"
	input.PromptStyle = app.theme.Prompt
	input.SetValue(app.opts.Query)
	input.Focus()

	return &LauncherScreen{
		BaseScreen: NewBaseScreen(app, "GitHub"),
		input:      input,
	}
}

// Init routes the initial query, then dispatches the initial action if any
func (m *LauncherScreen) Init() tea.Cmd {
	m.loading = true
	route := m.app.route(m.app.opts.Query, false)
	if m.app.opts.Action == "" {
		return tea.Batch(textinput.Blink, route)
	}
	return tea.Batch(textinput.Blink, tea.Sequence(route,
		m.app.dispatch(m.app.opts.Action, m.app.opts.Action, m.app.opts.Argument, false)))
}

// drilled reports whether a deferred item's list is showing
func (m *LauncherScreen) drilled() bool {
	return len(m.levels) > 1
}

// visible returns the items of the top level, filtered by the query box
// once drilled in
func (m *LauncherScreen) visible() []menu.Item {
	if len(m.levels) == 0 {
		return nil
	}
	top := m.levels[len(m.levels)-1]
	if m.drilled() {
		return menu.Filter(top.items, strings.TrimSpace(m.input.Value()))
	}
	return top.items
}

// Update handles UI updates for the launcher
func (m *LauncherScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.app.keyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.app.keyMap.Down):
			if m.cursor < len(m.visible())-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.app.keyMap.Select), key.Matches(msg, m.app.keyMap.Modifier):
			return m, m.activate(key.Matches(msg, m.app.keyMap.Modifier))
		case key.Matches(msg, m.app.keyMap.Back):
			return m, m.back()
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.drilled() && m.input.Value() != before {
			m.cursor = 0
		}
		return m, cmd

	case itemsMsg:
		return m, m.receive(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// activate routes an edited query, otherwise selects the highlighted item
func (m *LauncherScreen) activate(modifier bool) tea.Cmd {
	if m.loading {
		return nil
	}
	query := strings.TrimSpace(m.input.Value())
	if !m.drilled() && (query != m.routedQuery || len(m.levels) == 0) {
		m.loading = true
		return m.app.route(query, modifier)
	}

	items := m.visible()
	if m.cursor >= len(items) {
		return nil
	}
	m.loading = true
	return m.app.selectItem(items[m.cursor], modifier)
}

// back pops a drilled level, clears the query, or quits from an empty root
func (m *LauncherScreen) back() tea.Cmd {
	m.err = nil
	switch {
	case m.drilled():
		m.levels = m.levels[:len(m.levels)-1]
		m.cursor = 0
		if m.drilled() {
			m.input.SetValue("")
		} else {
			m.input.SetValue(m.routedQuery)
		}
	case m.input.Value() != "":
		m.input.SetValue("")
	default:
		return tea.Quit
	}
	return nil
}

func (m *LauncherScreen) receive(msg itemsMsg) tea.Cmd {
	m.loading = false
	m.notes = append(m.notes, m.app.session.Drain()...)
	if msg.err != nil {
		m.err = msg.err
		return nil
	}
	m.err = nil

	if m.app.session.Dismissed() {
		return tea.Quit
	}
	if msg.items == nil {
		return nil
	}

	if msg.routed {
		title := msg.query
		if title == "" {
			title = "GitHub"
		}
		m.levels = []level{{title: title, items: msg.items}}
		m.routedQuery = msg.query
		m.cursor = 0
		if msg.modifier && len(msg.items) == 1 && msg.items[0].IsTerminal() {
			m.loading = true
			return m.app.selectItem(msg.items[0], true)
		}
		return nil
	}

	m.levels = append(m.levels, level{title: msg.title, items: msg.items})
	m.input.SetValue("")
	m.cursor = 0
	return nil
}

// listHeight is the number of item rows that fit on screen
func (m *LauncherScreen) listHeight() int {
	if h := m.app.height - 12 - len(m.notes); h > 3 {
		return h
	}
	return 3
}

// View renders the launcher
func (m *LauncherScreen) View() string {
	theme := m.app.theme
	s := m.RenderTitle() + "\n"

	if m.drilled() {
		crumbs := make([]string, 0, len(m.levels))
		for _, l := range m.levels {
			crumbs = append(crumbs, l.title)
		}
		s += theme.Breadcrumb.Render(strings.Join(crumbs, " › ")) + "\n"
	}
	s += m.input.View() + "\n\n"

	switch {
	case m.loading:
		s += theme.Faint.Render("Loading…") + "\n"
	case m.err != nil:
		s += theme.ErrorText.Render("Error: "+m.err.Error()) + "\n"
	}

	items := m.visible()
	if len(items) == 0 && !m.loading && len(m.levels) > 0 {
		s += theme.Faint.Render("No results") + "\n"
	}

	start := 0
	if h := m.listHeight(); m.cursor >= h {
		start = m.cursor - h + 1
	}
	for i := start; i < len(items) && i < start+m.listHeight(); i++ {
		item := items[i]
		cursor := " "
		style := theme.UnselectedItem
		if i == m.cursor {
			cursor = ">"
			style = theme.SelectedItem
		}

		line := cursor + " " + style.Render(item.Title)
		if item.ActionReturnsItems {
			line += theme.DrillMarker.Render(" ›")
		}
		if item.Subtitle != "" {
			line += "  " + theme.ItemSubtitle.Render(item.Subtitle)
		}
		s += line + "\n"
	}

	if len(m.notes) > 0 {
		s += "\n"
		for _, n := range m.notes {
			s += theme.Notification.Render(n.Title) + " " + theme.Text.Render(n.Body) + "\n"
		}
	}

	s += "\n" + m.RenderFooter()
	return lipgloss.NewStyle().Width(m.app.width).Align(lipgloss.Left).Render(s)
}

// ShortHelp returns keybindings to be shown in the help menu
func (m *LauncherScreen) ShortHelp() []key.Binding {
	return []key.Binding{
		m.app.keyMap.Up,
		m.app.keyMap.Down,
		m.app.keyMap.Select,
		m.app.keyMap.Modifier,
		m.app.keyMap.Back,
		m.app.keyMap.Help,
		m.app.keyMap.Quit,
	}
}
