// Package builder turns references into menus. Builders are pure functions
// of their reference, hint and modifier flag plus whatever the data source
// returns; a failed fetch is logged and treated as no records.
package builder

import (
	"context"
	"slices"
	"strings"

	"github.com/hellausefulsoftware/hublaunch/internal/common/vcs"
	"github.com/hellausefulsoftware/hublaunch/internal/entity"
	"github.com/hellausefulsoftware/hublaunch/internal/logging"
	"github.com/hellausefulsoftware/hublaunch/internal/menu"
)

// Action names carried by deferred items
const (
	ActionAccountMenu            = "openAccountMenu"
	ActionAccountRepositories    = "openAccountRepositories"
	ActionAccountIssues          = "openAccountIssues"
	ActionAccountAssignedIssues  = "openAccountAssignedIssues"
	ActionAccountPullRequests    = "openAccountPullRequests"
	ActionAccountGists           = "openAccountGists"
	ActionOrganizationProjects   = "openOrganizationProjects"
	ActionRepositoryMenu         = "openRepositoryMenu"
	ActionRepositoryIssues       = "openRepositoryIssues"
	ActionRepositoryPullRequests = "openRepositoryPullRequests"
	ActionSettingsMenu           = "openSettingsMenu"
	ActionSetToken               = "setToken"
	ActionShortenLink            = "shortenLink"
	ActionAddToThings            = "addToThings"
)

// Site-wide listings of the signed-in viewer
const (
	allIssuesURL         = "https://github.com/issues"
	allAssignedIssuesURL = "https://github.com/issues/assigned"
	allPullRequestsURL   = "https://github.com/pulls"
)

// Builder composes menus from references
type Builder struct {
	source          vcs.Service
	commitSearchURL string
}

// New creates a Builder. commitSearchURL is a template with one %s that
// receives a commit SHA.
func New(source vcs.Service, commitSearchURL string) *Builder {
	return &Builder{source: source, commitSearchURL: commitSearchURL}
}

// AccountMenu lists the destinations for an account
func (b *Builder) AccountMenu(account entity.Account, hint string, modifier bool) []menu.Item {
	if modifier {
		return []menu.Item{menu.Link(account.Handle(), menu.IconPerson, account.ProfileURL())}
	}

	profile := menu.Link("View Profile", menu.IconPerson, account.ProfileURL())
	profile.Subtitle = account.Handle()
	profile.AlwaysShowsSubtitle = true

	items := []menu.Item{
		profile,
		menu.Drill("View Repositories", menu.IconRepo, ActionAccountRepositories, account.Login),
		menu.Drill("View Issues", menu.IconIssue, ActionAccountIssues, account.Login),
		menu.Drill("View Pull Requests", menu.IconPullRequest, ActionAccountPullRequests, account.Login),
		menu.Drill("View Gists", menu.IconGist, ActionAccountGists, account.Login),
		menu.Drill("View Projects", menu.IconProject, ActionOrganizationProjects, account.Login),
	}
	return menu.Filter(items, hint)
}

// RepositoryMenu lists the destinations for a repository. No remote call is made.
func (b *Builder) RepositoryMenu(repo entity.Repository, hint string, modifier bool) []menu.Item {
	if modifier {
		return []menu.Item{menu.Link(repo.NameWithOwner(), menu.IconRepo, repo.URL())}
	}

	view := menu.Link("View Repository", menu.IconRepo, repo.URL())
	view.Subtitle = repo.NameWithOwner()
	view.AlwaysShowsSubtitle = true

	items := []menu.Item{
		view,
		menu.Drill("View Issues", menu.IconIssue, ActionRepositoryIssues, repo.NameWithOwner()),
		menu.Drill("View Pull Requests", menu.IconPullRequest, ActionRepositoryPullRequests, repo.NameWithOwner()),
	}
	return menu.Filter(items, hint)
}

// RepositoryReference handles typed owner/name input. A named repository
// with a hint opens its own menu filtered by the hint; anything else lists
// the owner's repositories filtered by the (possibly empty) name.
func (b *Builder) RepositoryReference(ctx context.Context, repo entity.Repository, hint string, modifier bool) []menu.Item {
	if modifier {
		if repo.Name == "" {
			return []menu.Item{menu.Link(repo.Owner.Handle(), menu.IconRepos, repo.Owner.RepositoriesURL())}
		}
		return []menu.Item{menu.Link(repo.NameWithOwner(), menu.IconRepo, repo.URL())}
	}

	if repo.Name != "" && hint != "" {
		return b.RepositoryMenu(repo, hint, false)
	}
	return b.AccountRepositories(ctx, repo.Owner, repo.Name, false)
}

// AccountRepositories lists the repositories of account whose name contains
// filter. A repository named exactly filter moves to the top; the rest keep
// the order the source returned them in.
func (b *Builder) AccountRepositories(ctx context.Context, account entity.Account, filter string, modifier bool) []menu.Item {
	viewAll := menu.Link("View All Repositories", menu.IconRepos, account.RepositoriesURL())
	if modifier {
		return []menu.Item{viewAll}
	}
	viewAll.Pinned = true

	repos, err := b.source.ListAccountRepositories(ctx, account.Login)
	if err != nil {
		logging.Warn("Failed to list repositories", "login", account.Login, "error", err)
	}

	if filter != "" {
		q := strings.ToLower(filter)
		repos = slices.DeleteFunc(repos, func(r vcs.Repository) bool {
			return !strings.Contains(strings.ToLower(r.GetName()), q)
		})
		slices.SortStableFunc(repos, func(a, c vcs.Repository) int {
			switch {
			case a.GetName() == filter && c.GetName() != filter:
				return -1
			case a.GetName() != filter && c.GetName() == filter:
				return 1
			}
			return 0
		})
	}

	items := make([]menu.Item, 0, len(repos)+1)
	items = append(items, viewAll)
	for _, repo := range repos {
		items = append(items, repositoryDrillItem(repo))
	}
	return items
}

// RepositoryIssues lists the open issues of repo
func (b *Builder) RepositoryIssues(ctx context.Context, repo entity.Repository, modifier bool) []menu.Item {
	viewAll := menu.Link("View All Issues", menu.IconIssue, repo.IssuesURL())
	if modifier {
		return []menu.Item{viewAll}
	}

	issues, err := b.source.ListRepositoryIssues(ctx, repo.Owner.Login, repo.Name)
	if err != nil {
		logging.Warn("Failed to list repository issues", "repository", repo.NameWithOwner(), "error", err)
	}
	return withIssues(viewAll, issues)
}

// RepositoryPullRequests lists the open pull requests of repo
func (b *Builder) RepositoryPullRequests(ctx context.Context, repo entity.Repository, modifier bool) []menu.Item {
	viewAll := menu.Link("View All Pull Requests", menu.IconPullRequest, repo.PullRequestsURL())
	if modifier {
		return []menu.Item{viewAll}
	}

	prs, err := b.source.ListRepositoryPullRequests(ctx, repo.Owner.Login, repo.Name)
	if err != nil {
		logging.Warn("Failed to list repository pull requests", "repository", repo.NameWithOwner(), "error", err)
	}
	return withPullRequests(viewAll, prs)
}

// AccountIssues lists open issues opened by account
func (b *Builder) AccountIssues(ctx context.Context, account entity.Account, modifier bool) []menu.Item {
	viewAll := menu.Link("View All Issues", menu.IconIssue, allIssuesURL)
	if modifier {
		return []menu.Item{viewAll}
	}

	issues, err := b.source.ListAccountIssues(ctx, account.Login)
	if err != nil {
		logging.Warn("Failed to list account issues", "login", account.Login, "error", err)
	}
	return withIssues(viewAll, issues)
}

// AccountAssignedIssues lists open issues assigned to account
func (b *Builder) AccountAssignedIssues(ctx context.Context, account entity.Account, modifier bool) []menu.Item {
	viewAll := menu.Link("View All Issues Assigned To Me", menu.IconIssue, allAssignedIssuesURL)
	if modifier {
		return []menu.Item{viewAll}
	}

	issues, err := b.source.ListAccountAssignedIssues(ctx, account.Login)
	if err != nil {
		logging.Warn("Failed to list assigned issues", "login", account.Login, "error", err)
	}
	return withIssues(viewAll, issues)
}

// AccountPullRequests lists open pull requests opened by account
func (b *Builder) AccountPullRequests(ctx context.Context, account entity.Account, modifier bool) []menu.Item {
	viewAll := menu.Link("View All Pull Requests", menu.IconPullRequest, allPullRequestsURL)
	if modifier {
		return []menu.Item{viewAll}
	}

	prs, err := b.source.ListAccountPullRequests(ctx, account.Login)
	if err != nil {
		logging.Warn("Failed to list account pull requests", "login", account.Login, "error", err)
	}
	return withPullRequests(viewAll, prs)
}

// AccountGists lists the public gists referenced by ref
func (b *Builder) AccountGists(ctx context.Context, ref entity.Gist, modifier bool) []menu.Item {
	viewAll := menu.Link("View All Gists", menu.IconGist, ref.URL())
	if modifier {
		return []menu.Item{viewAll}
	}

	gists, err := b.source.ListAccountGists(ctx, ref.Login)
	if err != nil {
		logging.Warn("Failed to list gists", "login", ref.Login, "error", err)
	}

	items := make([]menu.Item, 0, len(gists)+1)
	items = append(items, viewAll)
	for _, gist := range gists {
		items = append(items, gistItem(gist))
	}
	return items
}

// OrganizationProjects lists the open project boards referenced by ref
func (b *Builder) OrganizationProjects(ctx context.Context, ref entity.Project, modifier bool) []menu.Item {
	viewAll := menu.Link("View All Projects", menu.IconProject, ref.URL())
	if modifier {
		return []menu.Item{viewAll}
	}

	projects, err := b.source.ListOrganizationProjects(ctx, ref.Login)
	if err != nil {
		logging.Warn("Failed to list projects", "login", ref.Login, "error", err)
	}

	items := make([]menu.Item, 0, len(projects)+1)
	items = append(items, viewAll)
	for _, project := range projects {
		items = append(items, projectItem(project))
	}
	return items
}

// IssueMenu resolves a single issue or pull request. A reference without a
// number yields an empty menu.
func (b *Builder) IssueMenu(ctx context.Context, ref entity.Issue, modifier bool) []menu.Item {
	if !ref.HasNumber() {
		return []menu.Item{}
	}
	if modifier {
		return []menu.Item{menu.Link(ref.String(), menu.IconIssue, ref.URL())}
	}

	repo := ref.Repository
	issue, err := b.source.GetIssue(ctx, repo.Owner.Login, repo.Name, ref.Number)
	if err != nil {
		logging.Warn("Failed to get issue", "issue", ref.String(), "error", err)
		return []menu.Item{}
	}
	return []menu.Item{issueItem(issue)}
}

// CommitPullRequests lists the pull requests containing commit. With none,
// it falls back to a web search for the SHA.
func (b *Builder) CommitPullRequests(ctx context.Context, commit entity.Commit) []menu.Item {
	prs, err := b.source.ListCommitPullRequests(ctx, commit.SHA)
	if err != nil {
		logging.Warn("Failed to list commit pull requests", "sha", commit.SHA, "error", err)
	}

	if len(prs) == 0 {
		return []menu.Item{
			menu.Link("Search for commit: "+commit.SHA, menu.IconCommit, commit.SearchURL(b.commitSearchURL)),
		}
	}

	items := make([]menu.Item, 0, len(prs))
	for _, pr := range prs {
		items = append(items, pullRequestItem(pr))
	}
	return items
}

// SettingsMenu offers the clipboard text as the new access token
func (b *Builder) SettingsMenu(clipboard string) []menu.Item {
	return []menu.Item{
		menu.Deferred("Set GitHub access token from clipboard", menu.IconKey, ActionSetToken, clipboard),
	}
}

// LinkActions lists what can be done with a GitHub link
func (b *Builder) LinkActions(link string) []menu.Item {
	return []menu.Item{
		menu.Deferred("Shorten link", menu.IconLink, ActionShortenLink, link),
		menu.Deferred("Add to things", menu.IconThings, ActionAddToThings, link),
	}
}
