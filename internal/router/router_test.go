package router

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hellausefulsoftware/hublaunch/internal/auth"
	"github.com/hellausefulsoftware/hublaunch/internal/builder"
	"github.com/hellausefulsoftware/hublaunch/internal/common/vcs"
	"github.com/hellausefulsoftware/hublaunch/internal/common/vcs/vcstest"
	"github.com/hellausefulsoftware/hublaunch/internal/entity"
	"github.com/hellausefulsoftware/hublaunch/internal/host"
	"github.com/hellausefulsoftware/hublaunch/internal/menu"
	"github.com/hellausefulsoftware/hublaunch/internal/prefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taskTemplate = "things:///add?show-quick-entry=true&title=%s&notes=%s"

type fakeHost struct {
	opened    []string
	clipboard string
	clipErr   error
	notes     []host.Notification
	dismissed int
	short     string
	shortErr  error
}

func (f *fakeHost) OpenURL(rawURL string) error {
	f.opened = append(f.opened, rawURL)
	return nil
}

func (f *fakeHost) ReadString() (string, error) { return f.clipboard, f.clipErr }

func (f *fakeHost) WriteString(text string) error {
	f.clipboard = text
	return nil
}

func (f *fakeHost) Notify(n host.Notification) { f.notes = append(f.notes, n) }

func (f *fakeHost) Dismiss() { f.dismissed++ }

func (f *fakeHost) Shorten(context.Context, string) (string, error) { return f.short, f.shortErr }

type fixture struct {
	router *Router
	source *vcstest.Service
	store  *prefs.MemoryStore
	host   *fakeHost
}

func newFixture(source *vcstest.Service, seed map[string]string) *fixture {
	store := prefs.NewMemoryStore(seed)
	h := &fakeHost{}
	hs := host.Host{Opener: h, Clipboard: h, Notifier: h, Dismisser: h, Shortener: h}
	r := New(Options{
		Builder:        builder.New(source, "https://www.google.com/search?q=%s"),
		Source:         source,
		Prefs:          store,
		Flow:           auth.NewFlow(store, source, h, h),
		Host:           hs,
		TaskManagerURL: taskTemplate,
	})
	return &fixture{router: r, source: source, store: store, host: h}
}

func titles(items []menu.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func TestRunEmptyInputReturnsDefaultMenu(t *testing.T) {
	f := newFixture(&vcstest.Service{}, map[string]string{prefs.KeyViewerHandle: "octocat"})

	items, err := f.router.Run(context.Background(), "   ", false)
	require.NoError(t, err)
	if diff := cmp.Diff(f.router.DefaultMenu(), items); diff != "" {
		t.Errorf("default menu mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{
		"My Open Pull Requests", "My Assigned Issues", "My Issues",
		"My Repositories", "My Gists", "Settings",
	}, titles(items))
	for _, item := range items[:5] {
		assert.Equal(t, "octocat", item.ActionArgument)
		assert.True(t, item.ActionReturnsItems)
	}
	assert.Equal(t, builder.ActionSettingsMenu, items[5].Action)
	assert.Empty(t, f.source.Calls())
}

func TestRunDefaultMenuTitleMatch(t *testing.T) {
	f := newFixture(&vcstest.Service{}, map[string]string{prefs.KeyViewerHandle: "octocat"})

	items, err := f.router.Run(context.Background(), "my gists", false)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "My Gists", items[0].Title)
	assert.Equal(t, menu.Item{
		Title:               "@my gists",
		Subtitle:            "Looking for the user @my gists?",
		AlwaysShowsSubtitle: true,
		Icon:                menu.IconPerson,
		Action:              builder.ActionAccountMenu,
		ActionArgument:      "my gists",
	}, items[1])

	items, err = f.router.Run(context.Background(), "issues", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"My Assigned Issues", "My Issues", "@issues"}, titles(items))
}

func TestRunExactTitleAddsOneHandleItem(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)

	for _, item := range f.router.DefaultMenu() {
		items, err := f.router.Run(context.Background(), item.Title, false)
		require.NoError(t, err)
		require.Len(t, items, 2, item.Title)
		assert.Equal(t, item.Title, items[0].Title)
		assert.Equal(t, "@"+item.Title, items[1].Title)
	}
}

func TestRunClassifiedInput(t *testing.T) {
	source := &vcstest.Service{
		Issues:       map[string]vcs.Issue{"rails/rails#1": vcstest.Issue("rails", "rails", 1, "First")},
		AccountRepos: map[string][]vcs.Repository{"rails": {vcstest.Repo("rails", "rails"), vcstest.Repo("rails", "webpacker")}},
	}
	f := newFixture(source, nil)
	ctx := context.Background()

	tests := []struct {
		input string
		want  []string
	}{
		{"https://github.com/rails/rails/pull/1", []string{"Shorten link", "Add to things"}},
		{"rails/rails#1", []string{"First"}},
		{"rails/rails/issues/1", []string{"First"}},
		{"rails/rails#", []string{}},
		{"rails/web", []string{"View All Repositories", "webpacker"}},
		{"rails/rails pull", []string{"View Pull Requests"}},
		{"911a93ac", []string{"Search for commit: 911a93ac"}},
		{"rails", []string{"View Profile", "View Repositories", "View Issues", "View Pull Requests", "View Gists", "View Projects"}},
		{"rails gists", []string{"View Gists"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			items, err := f.router.Run(ctx, tt.input, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(items))
		})
	}
}

func TestRunMissOpensLiteralPath(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)

	tests := []struct {
		input string
		want  string
	}{
		{"rails/rails/issues", "https://github.com/rails/rails/issues"},
		{"rails is great", "https://github.com/rails%20is%20great"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			items, err := f.router.Run(context.Background(), tt.input, false)
			require.NoError(t, err)
			require.Len(t, items, 1)
			assert.Equal(t, tt.want, items[0].URL)
			assert.Equal(t, tt.input, items[0].Title)
			assert.True(t, items[0].IsTerminal())
		})
	}
}

func TestRunModifier(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)
	ctx := context.Background()

	items, err := f.router.Run(ctx, "rails", true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://github.com/rails", items[0].URL)

	items, err = f.router.Run(ctx, "rails/rails", true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://github.com/rails/rails", items[0].URL)
	assert.Empty(t, f.source.Calls())
}

func TestDispatchTable(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)

	got := f.router.Actions()
	sort.Strings(got)
	want := []string{
		"addToThings", "openAccountAssignedIssues", "openAccountGists", "openAccountIssues",
		"openAccountMenu", "openAccountPullRequests", "openAccountRepositories",
		"openOrganizationProjects", "openRepositoryIssues", "openRepositoryMenu",
		"openRepositoryPullRequests", "openSettingsMenu", "setToken", "shortenLink",
	}
	assert.Equal(t, want, got)
}

func TestDispatch(t *testing.T) {
	source := &vcstest.Service{
		RepositoryIssues: map[string][]vcs.Issue{"rails/rails": {vcstest.Issue("rails", "rails", 1, "Bug")}},
		Projects:         map[string][]vcs.Project{"github": {{Name: "Roadmap", URL: "https://github.com/orgs/github/projects/1"}}},
	}
	f := newFixture(source, nil)
	ctx := context.Background()

	items, err := f.router.Dispatch(ctx, builder.ActionRepositoryIssues, "rails/rails", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"View All Issues", "Bug"}, titles(items))

	items, err = f.router.Dispatch(ctx, builder.ActionRepositoryMenu, "rails/rails", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"View Repository", "View Issues", "View Pull Requests"}, titles(items))

	items, err = f.router.Dispatch(ctx, builder.ActionOrganizationProjects, "github", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"View All Projects", "Roadmap"}, titles(items))
	assert.Equal(t, "https://github.com/orgs/github/projects", items[0].URL)

	items, err = f.router.Dispatch(ctx, builder.ActionAccountGists, "octocat", true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://gist.github.com/octocat", items[0].URL)

	items, err = f.router.Dispatch(ctx, builder.ActionAccountMenu, "octocat", true)
	require.NoError(t, err)
	assert.Equal(t, []menu.Item{menu.Link("@octocat", menu.IconPerson, "https://github.com/octocat")}, items)
}

func TestDispatchErrors(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)
	ctx := context.Background()

	_, err := f.router.Dispatch(ctx, "openNothing", "x", false)
	assert.ErrorIs(t, err, ErrUnknownAction)

	_, err = f.router.Dispatch(ctx, builder.ActionRepositoryIssues, "no-separator", false)
	assert.ErrorIs(t, err, entity.ErrInvalidNameWithOwner)
}

func TestSettingsMenuReadsClipboard(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)
	f.host.clipboard = "  ghp_secret\n"

	items, err := f.router.Dispatch(context.Background(), builder.ActionSettingsMenu, "", false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, builder.ActionSetToken, items[0].Action)
	assert.Equal(t, "ghp_secret", items[0].ActionArgument)

	f.host.clipErr = errors.New("no clipboard")
	items, err = f.router.Dispatch(context.Background(), builder.ActionSettingsMenu, "", false)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSetTokenAction(t *testing.T) {
	source := &vcstest.Service{Identities: map[string]string{"good": "octocat"}}
	f := newFixture(source, map[string]string{prefs.KeyToken: "old"})
	ctx := context.Background()

	items, err := f.router.Dispatch(ctx, builder.ActionSetToken, "bad", false)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Equal(t, "bad", prefs.Token(f.store))
	assert.Empty(t, prefs.ViewerHandle(f.store))

	items, err = f.router.Dispatch(ctx, builder.ActionSetToken, "good", false)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Equal(t, "good", prefs.Token(f.store))
	assert.Equal(t, "octocat", prefs.ViewerHandle(f.store))
	assert.Equal(t, "👋 Hi @octocat", f.host.notes[len(f.host.notes)-1].Title)
}

func TestRunWithURL(t *testing.T) {
	source := &vcstest.Service{Identities: map[string]string{"abc": "octocat"}}
	f := newFixture(source, nil)
	ctx := context.Background()

	items, err := f.router.RunWithURL(ctx, "hublaunch://action/setToken?token=abc", false)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Equal(t, "abc", prefs.Token(f.store))
	assert.Equal(t, "octocat", prefs.ViewerHandle(f.store))

	items, err = f.router.RunWithURL(ctx, "https://github.com/rails/rails", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Shorten link", "Add to things"}, titles(items))
}

func TestShortenLink(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)
	f.host.short = "https://is.gd/abc"

	items, err := f.router.Dispatch(context.Background(), builder.ActionShortenLink, "https://github.com/rails/rails", false)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Equal(t, "https://is.gd/abc", f.host.clipboard)
	assert.Equal(t, []host.Notification{{Title: "Copied https://is.gd/abc to your clipboard"}}, f.host.notes)
	assert.Equal(t, 1, f.host.dismissed)
}

func TestShortenLinkFailure(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)
	f.host.clipboard = "unchanged"
	f.host.shortErr = errors.New("offline")

	items, err := f.router.Dispatch(context.Background(), builder.ActionShortenLink, "https://github.com/rails/rails", false)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Equal(t, "unchanged", f.host.clipboard)
	assert.Len(t, f.host.notes, 1)
	assert.Zero(t, f.host.dismissed)
}

func TestAddToThings(t *testing.T) {
	source := &vcstest.Service{
		Issues:       map[string]vcs.Issue{"rails/rails#7": vcstest.Issue("rails", "rails", 7, "Fix bug")},
		Repositories: map[string]vcs.Repository{"rails/rails": vcstest.Repo("rails", "rails")},
	}
	ctx := context.Background()

	tests := []struct {
		name string
		link string
		want string
	}{
		{
			"pull request",
			"https://github.com/rails/rails/pull/7",
			"things:///add?show-quick-entry=true&title=Review%20%22Fix%20bug%22&notes=https%3A%2F%2Fgithub.com%2Frails%2Frails%2Fpull%2F7",
		},
		{
			"repository",
			"https://github.com/rails/rails",
			"things:///add?show-quick-entry=true&title=Review%20%22rails%2Frails%22&notes=https%3A%2F%2Fgithub.com%2Frails%2Frails",
		},
		{
			"unresolved",
			"https://github.com/rails/rails/pull/999",
			"things:///add?show-quick-entry=true" +
				"&title=Review%20%22https%3A%2F%2Fgithub.com%2Frails%2Frails%2Fpull%2F999%22" +
				"&notes=https%3A%2F%2Fgithub.com%2Frails%2Frails%2Fpull%2F999",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(source, nil)
			items, err := f.router.Dispatch(ctx, builder.ActionAddToThings, tt.link, false)
			require.NoError(t, err)
			assert.Nil(t, items)
			assert.Equal(t, []string{tt.want}, f.host.opened)
		})
	}
}

func TestSelect(t *testing.T) {
	f := newFixture(&vcstest.Service{}, nil)
	ctx := context.Background()

	items, err := f.router.Select(ctx, menu.Link("View Profile", menu.IconPerson, "https://github.com/octocat"), false)
	require.NoError(t, err)
	assert.Nil(t, items)
	assert.Equal(t, []string{"https://github.com/octocat"}, f.host.opened)
	assert.Equal(t, 1, f.host.dismissed)

	items, err = f.router.Select(ctx, menu.Drill("View Repository", menu.IconRepo, builder.ActionRepositoryMenu, "rails/rails"), false)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	_, err = f.router.Select(ctx, menu.Item{Title: "broken"}, false)
	assert.ErrorIs(t, err, menu.ErrNoTarget)
}
