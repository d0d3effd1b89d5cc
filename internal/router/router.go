// Package router is the launcher entry point. It turns raw input into a
// menu and dispatches deferred actions to their handlers by name.
package router

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/hellausefulsoftware/hublaunch/internal/auth"
	"github.com/hellausefulsoftware/hublaunch/internal/builder"
	"github.com/hellausefulsoftware/hublaunch/internal/classify"
	"github.com/hellausefulsoftware/hublaunch/internal/common/vcs"
	"github.com/hellausefulsoftware/hublaunch/internal/entity"
	"github.com/hellausefulsoftware/hublaunch/internal/host"
	"github.com/hellausefulsoftware/hublaunch/internal/logging"
	"github.com/hellausefulsoftware/hublaunch/internal/menu"
	"github.com/hellausefulsoftware/hublaunch/internal/prefs"
)

// ErrUnknownAction is returned by Dispatch for an action name with no handler
var ErrUnknownAction = errors.New("unknown action")

// handler runs one action. Terminal handlers return nil items.
type handler func(ctx context.Context, argument string, modifier bool) ([]menu.Item, error)

// Options configures a Router
type Options struct {
	Builder *builder.Builder
	Source  vcs.Service
	Prefs   prefs.Store
	Flow    *auth.Flow
	Host    host.Host
	// TaskManagerURL is a template with two %s verbs: title then notes
	TaskManagerURL string
}

// Router routes launcher input and actions
type Router struct {
	builder        *builder.Builder
	source         vcs.Service
	prefs          prefs.Store
	flow           *auth.Flow
	host           host.Host
	taskManagerURL string
	handlers       map[string]handler
}

// New creates a Router
func New(opts Options) *Router {
	r := &Router{
		builder:        opts.Builder,
		source:         opts.Source,
		prefs:          opts.Prefs,
		flow:           opts.Flow,
		host:           opts.Host,
		taskManagerURL: opts.TaskManagerURL,
	}

	r.handlers = map[string]handler{
		builder.ActionAccountMenu:            r.accountHandler(r.openAccountMenu),
		builder.ActionAccountRepositories:    r.accountHandler(r.openAccountRepositories),
		builder.ActionAccountIssues:          r.accountHandler(r.builder.AccountIssues),
		builder.ActionAccountAssignedIssues:  r.accountHandler(r.builder.AccountAssignedIssues),
		builder.ActionAccountPullRequests:    r.accountHandler(r.builder.AccountPullRequests),
		builder.ActionAccountGists:           r.accountHandler(r.openAccountGists),
		builder.ActionOrganizationProjects:   r.openOrganizationProjects,
		builder.ActionRepositoryMenu:         r.repositoryHandler(r.openRepositoryMenu),
		builder.ActionRepositoryIssues:       r.repositoryHandler(r.builder.RepositoryIssues),
		builder.ActionRepositoryPullRequests: r.repositoryHandler(r.builder.RepositoryPullRequests),
		builder.ActionSettingsMenu:           r.openSettingsMenu,
		builder.ActionSetToken:               r.setToken,
		builder.ActionShortenLink:            r.shortenLink,
		builder.ActionAddToThings:            r.addToThings,
	}
	return r
}

// Actions lists the action names Dispatch accepts
func (r *Router) Actions() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	return names
}

// DefaultMenu returns the entries shown for empty input, bound to the stored viewer
func (r *Router) DefaultMenu() []menu.Item {
	handle := prefs.ViewerHandle(r.prefs)
	return []menu.Item{
		menu.Drill("My Open Pull Requests", menu.IconPullRequest, builder.ActionAccountPullRequests, handle),
		menu.Drill("My Assigned Issues", menu.IconThings, builder.ActionAccountAssignedIssues, handle),
		menu.Drill("My Issues", menu.IconIssue, builder.ActionAccountIssues, handle),
		menu.Drill("My Repositories", menu.IconRepo, builder.ActionAccountRepositories, handle),
		menu.Drill("My Gists", menu.IconGist, builder.ActionAccountGists, handle),
		menu.Drill("Settings", menu.IconGear, builder.ActionSettingsMenu, ""),
	}
}

// conflictingHandleItem offers input as an account handle
func conflictingHandleItem(input string) menu.Item {
	return menu.Item{
		Title:               "@" + input,
		Subtitle:            "Looking for the user @" + input + "?",
		AlwaysShowsSubtitle: true,
		Icon:                menu.IconPerson,
		Action:              builder.ActionAccountMenu,
		ActionArgument:      input,
	}
}

// Run classifies raw input and builds its menu
func (r *Router) Run(ctx context.Context, input string, modifier bool) ([]menu.Item, error) {
	input = strings.TrimSpace(input)
	logger := logging.WithField("input", input)

	if input == "" {
		return r.DefaultMenu(), nil
	}

	q := strings.ToLower(input)
	var matched []menu.Item
	for _, item := range r.DefaultMenu() {
		if strings.Contains(strings.ToLower(item.Title), q) {
			matched = append(matched, item)
		}
	}
	if len(matched) > 0 {
		logger.Debug("Input matches default menu", "matches", len(matched))
		return append(matched, conflictingHandleItem(input)), nil
	}

	result := classify.Classify(input)
	logger.Debug("Classified input", "kind", result.Kind.String(), "hint", result.Hint)

	switch ref := result.Reference.(type) {
	case entity.Issue:
		return r.builder.IssueMenu(ctx, ref, modifier), nil
	case entity.Repository:
		return r.builder.RepositoryReference(ctx, ref, result.Hint, modifier), nil
	case entity.Commit:
		return r.builder.CommitPullRequests(ctx, ref), nil
	case entity.Account:
		return r.builder.AccountMenu(ref, result.Hint, modifier), nil
	}

	if result.Kind == classify.KindLink {
		return r.builder.LinkActions(result.Input), nil
	}
	return []menu.Item{menu.Link(result.Input, menu.IconLink, entity.LiteralURL(result.Input))}, nil
}

// RunWithURL handles a URL handed to the launcher. A setToken deep link runs
// the token flow with its token parameter; anything else is treated as input.
func (r *Router) RunWithURL(ctx context.Context, rawURL string, modifier bool) ([]menu.Item, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err == nil {
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		if strings.HasSuffix(path, builder.ActionSetToken) {
			return r.setToken(ctx, u.Query().Get("token"), modifier)
		}
	}
	return r.Run(ctx, rawURL, modifier)
}

// Dispatch runs a named action with the argument its item carried
func (r *Router) Dispatch(ctx context.Context, action, argument string, modifier bool) ([]menu.Item, error) {
	h, ok := r.handlers[action]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}

	logging.WithAction(action, argument).Debug("Dispatching action", "modifier", modifier)
	return h(ctx, argument, modifier)
}

// Select acts on a chosen item: terminal items are opened and end the
// interaction, deferred items are dispatched.
func (r *Router) Select(ctx context.Context, item menu.Item, modifier bool) ([]menu.Item, error) {
	if err := item.Validate(); err != nil {
		return nil, fmt.Errorf("cannot select %q: %w", item.Title, err)
	}
	if item.IsTerminal() {
		if err := r.host.Opener.OpenURL(item.URL); err != nil {
			return nil, err
		}
		r.dismiss()
		return nil, nil
	}
	return r.Dispatch(ctx, item.Action, item.ActionArgument, modifier)
}

func (r *Router) dismiss() {
	if r.host.Dismisser != nil {
		r.host.Dismisser.Dismiss()
	}
}

func (r *Router) accountHandler(build func(context.Context, entity.Account, bool) []menu.Item) handler {
	return func(ctx context.Context, argument string, modifier bool) ([]menu.Item, error) {
		return build(ctx, entity.Account{Login: argument}, modifier), nil
	}
}

func (r *Router) repositoryHandler(build func(context.Context, entity.Repository, bool) []menu.Item) handler {
	return func(ctx context.Context, argument string, modifier bool) ([]menu.Item, error) {
		repo, err := entity.ParseNameWithOwner(argument)
		if err != nil {
			return nil, fmt.Errorf("bad repository argument: %w", err)
		}
		return build(ctx, repo, modifier), nil
	}
}

func (r *Router) openAccountMenu(_ context.Context, account entity.Account, modifier bool) []menu.Item {
	return r.builder.AccountMenu(account, "", modifier)
}

func (r *Router) openAccountRepositories(ctx context.Context, account entity.Account, modifier bool) []menu.Item {
	return r.builder.AccountRepositories(ctx, account, "", modifier)
}

func (r *Router) openRepositoryMenu(_ context.Context, repo entity.Repository, modifier bool) []menu.Item {
	return r.builder.RepositoryMenu(repo, "", modifier)
}

func (r *Router) openAccountGists(ctx context.Context, account entity.Account, modifier bool) []menu.Item {
	return r.builder.AccountGists(ctx, entity.Gist{Login: account.Login}, modifier)
}

func (r *Router) openOrganizationProjects(ctx context.Context, argument string, modifier bool) ([]menu.Item, error) {
	return r.builder.OrganizationProjects(ctx, entity.Project{Login: argument}, modifier), nil
}

func (r *Router) openSettingsMenu(_ context.Context, _ string, _ bool) ([]menu.Item, error) {
	text, err := r.host.Clipboard.ReadString()
	if err != nil {
		logging.Warn("Failed to read clipboard", "error", err)
	}
	return r.builder.SettingsMenu(strings.TrimSpace(text)), nil
}

func (r *Router) setToken(ctx context.Context, token string, _ bool) ([]menu.Item, error) {
	state := r.flow.SetToken(ctx, token)
	logging.Debug("Token flow finished", "state", state.String())
	return nil, nil
}

func (r *Router) shortenLink(ctx context.Context, link string, _ bool) ([]menu.Item, error) {
	short, err := r.host.Shortener.Shorten(ctx, link)
	if err != nil {
		logging.Warn("Failed to shorten link", "link", link, "error", err)
		r.host.Notifier.Notify(host.Notification{Title: "Unable to shorten " + link, Body: err.Error()})
		return nil, nil
	}

	if err := r.host.Clipboard.WriteString(short); err != nil {
		return nil, fmt.Errorf("failed to copy short link: %w", err)
	}
	r.host.Notifier.Notify(host.Notification{Title: "Copied " + short + " to your clipboard"})
	r.dismiss()
	return nil, nil
}

func (r *Router) addToThings(ctx context.Context, link string, _ bool) ([]menu.Item, error) {
	title := r.resourceTitle(ctx, link)
	if err := r.host.Opener.OpenURL(host.TaskURL(r.taskManagerURL, title, link)); err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}
	return nil, nil
}
