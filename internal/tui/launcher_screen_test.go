package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hellausefulsoftware/hublaunch/internal/host"
	"github.com/hellausefulsoftware/hublaunch/internal/menu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	session  *Session
	routes   map[string][]menu.Item
	actions  map[string][]menu.Item
	err      error
	queries  []string
	selected []menu.Item
}

func (f *fakeRunner) Run(_ context.Context, input string, _ bool) ([]menu.Item, error) {
	f.queries = append(f.queries, input)
	return f.routes[input], f.err
}

func (f *fakeRunner) Dispatch(_ context.Context, action, _ string, _ bool) ([]menu.Item, error) {
	return f.actions[action], f.err
}

func (f *fakeRunner) Select(ctx context.Context, item menu.Item, modifier bool) ([]menu.Item, error) {
	f.selected = append(f.selected, item)
	if item.IsTerminal() {
		f.session.Dismiss()
		return nil, nil
	}
	return f.Dispatch(ctx, item.Action, item.ActionArgument, modifier)
}

func rootItems() []menu.Item {
	return []menu.Item{
		menu.Link("View Repository", menu.IconRepo, "https://github.com/rails/rails"),
		menu.Drill("View Issues", menu.IconIssue, "openRepositoryIssues", "rails/rails"),
	}
}

func issueItems() []menu.Item {
	all := menu.Link("View All Issues", menu.IconIssue, "https://github.com/rails/rails/issues")
	all.Pinned = true
	return []menu.Item{
		all,
		menu.Link("Fix routing", menu.IconIssue, "https://github.com/rails/rails/issues/1"),
		menu.Link("Speed up boot", menu.IconIssue, "https://github.com/rails/rails/issues/2"),
	}
}

func newTestApp(t *testing.T) (*App, *LauncherScreen, *fakeRunner) {
	t.Helper()
	session := NewSession()
	runner := &fakeRunner{
		session: session,
		routes:  map[string][]menu.Item{"rails/rails": rootItems()},
		actions: map[string][]menu.Item{"openRepositoryIssues": issueItems()},
	}
	app := NewApp(runner, session, Options{})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	screen, ok := app.screen.(*LauncherScreen)
	require.True(t, ok)
	return app, screen, runner
}

// press sends a key and feeds any router result back into the app
func press(t *testing.T, app *App, msg tea.KeyMsg) tea.Msg {
	t.Helper()
	_, cmd := app.Update(msg)
	if cmd == nil {
		return nil
	}
	out := cmd()
	if items, ok := out.(itemsMsg); ok {
		_, next := app.Update(items)
		if next != nil {
			return next()
		}
		return nil
	}
	return out
}

var (
	enterKey    = tea.KeyMsg{Type: tea.KeyEnter}
	modifierKey = tea.KeyMsg{Type: tea.KeyEnter, Alt: true}
	escKey      = tea.KeyMsg{Type: tea.KeyEsc}
	downKey     = tea.KeyMsg{Type: tea.KeyDown}
)

func typeText(app *App, text string) {
	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func TestEnterRoutesEditedQuery(t *testing.T) {
	app, screen, runner := newTestApp(t)

	typeText(app, "rails/rails")
	press(t, app, enterKey)

	assert.Equal(t, []string{"rails/rails"}, runner.queries)
	assert.Equal(t, "rails/rails", screen.routedQuery)
	assert.Equal(t, rootItems(), screen.visible())
	assert.Contains(t, app.View(), "View Issues")
}

func TestDrillFilterAndBack(t *testing.T) {
	app, screen, runner := newTestApp(t)
	typeText(app, "rails/rails")
	press(t, app, enterKey)

	press(t, app, downKey)
	press(t, app, enterKey)
	require.Len(t, runner.selected, 1)
	assert.Equal(t, "openRepositoryIssues", runner.selected[0].Action)
	require.True(t, screen.drilled())
	assert.Empty(t, screen.input.Value())
	assert.Len(t, screen.visible(), 3)
	assert.Contains(t, app.View(), "rails/rails › View Issues")

	typeText(app, "boot")
	got := screen.visible()
	require.Len(t, got, 2)
	assert.Equal(t, "View All Issues", got[0].Title)
	assert.Equal(t, "Speed up boot", got[1].Title)

	press(t, app, escKey)
	assert.False(t, screen.drilled())
	assert.Equal(t, "rails/rails", screen.input.Value())
	assert.Equal(t, []string{"rails/rails"}, runner.queries, "popping must not re-route")
}

func TestSelectingLinkQuitsWhenDismissed(t *testing.T) {
	app, _, runner := newTestApp(t)
	typeText(app, "rails/rails")
	press(t, app, enterKey)

	out := press(t, app, enterKey)
	require.Len(t, runner.selected, 1)
	assert.Equal(t, "https://github.com/rails/rails", runner.selected[0].URL)
	assert.IsType(t, tea.QuitMsg{}, out)
}

func TestModifierOpensSingleResult(t *testing.T) {
	app, _, runner := newTestApp(t)
	runner.routes["@rails"] = []menu.Item{menu.Link("@rails", menu.IconPerson, "https://github.com/rails")}

	typeText(app, "@rails")
	_, cmd := app.Update(modifierKey)
	require.NotNil(t, cmd)
	_, cmd = app.Update(cmd())
	require.NotNil(t, cmd, "expected the lone link to be selected")
	cmd()

	require.Len(t, runner.selected, 1)
	assert.Equal(t, "https://github.com/rails", runner.selected[0].URL)
}

func TestRouterErrorIsShown(t *testing.T) {
	app, screen, runner := newTestApp(t)
	runner.err = errors.New("rate limited")

	typeText(app, "rails/rails")
	press(t, app, enterKey)

	require.Error(t, screen.err)
	assert.Contains(t, app.View(), "rate limited")

	press(t, app, escKey)
	assert.NoError(t, screen.err)
}

func TestNotificationsAreShown(t *testing.T) {
	app, screen, _ := newTestApp(t)
	app.session.Notify(host.Notification{Title: "Unable to shorten", Body: "https://github.com/rails"})

	app.Update(itemsMsg{title: "Shorten link"})

	require.Len(t, screen.notes, 1)
	assert.Contains(t, app.View(), "Unable to shorten")
	assert.Empty(t, app.session.Drain())
}

func TestBackQuitsFromEmptyRoot(t *testing.T) {
	app, screen, _ := newTestApp(t)
	typeText(app, "x")

	assert.Nil(t, press(t, app, escKey))
	assert.Empty(t, screen.input.Value())
	assert.IsType(t, tea.QuitMsg{}, press(t, app, escKey))
}

func TestHelpToggle(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.Update(tea.KeyMsg{Type: tea.KeyF1})
	assert.True(t, app.showHelp)
	assert.Contains(t, app.View(), "open directly")
}

func TestSession(t *testing.T) {
	s := NewSession()
	assert.False(t, s.Dismissed())

	s.Notify(host.Notification{Title: "a"})
	s.Notify(host.Notification{Title: "b"})
	assert.Len(t, s.Drain(), 2)
	assert.Empty(t, s.Drain())

	s.Dismiss()
	assert.True(t, s.Dismissed())
}
