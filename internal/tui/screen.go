package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Screen is a view the App delegates updates and rendering to
type Screen interface {
	Init() tea.Cmd
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
	ShortHelp() []key.Binding
}

// BaseScreen carries the App and title shared by screens
type BaseScreen struct {
	app   *App
	title string
}

// NewBaseScreen creates a new base screen
func NewBaseScreen(app *App, title string) BaseScreen {
	return BaseScreen{app: app, title: title}
}

// RenderTitle renders the screen title
func (b *BaseScreen) RenderTitle() string {
	return b.app.theme.Title.Render(b.title)
}

// RenderFooter renders the key hint line
func (b *BaseScreen) RenderFooter() string {
	return b.app.theme.Faint.Render("enter select • alt+enter open directly • esc back • f1 help • ctrl+c quit")
}
