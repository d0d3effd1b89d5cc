// Package github implements the remote data source on top of the GitHub REST API
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/google/go-github/v45/github"
	"github.com/hellausefulsoftware/hublaunch/internal/common/vcs"
	"github.com/hellausefulsoftware/hublaunch/internal/logging"
	"golang.org/x/oauth2"
)

// perPage bounds every list call to a single page
const perPage = 100

// TokenFunc returns the access token to use for the next request
type TokenFunc func() string

// Client implements vcs.Service against the GitHub REST API
type Client struct {
	baseURL *url.URL
	token   TokenFunc

	mu          sync.Mutex
	cached      *github.Client
	cachedToken string
}

var _ vcs.Service = (*Client)(nil)

// NewClient creates a new GitHub client. apiURL is the REST root (with a
// trailing slash); token is consulted before every request so a token set
// during the process lifetime takes effect immediately.
func NewClient(apiURL string, token TokenFunc) (*Client, error) {
	baseURL, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid github api url: %w", err)
	}
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{baseURL: baseURL, token: token}, nil
}

// api returns a go-github client authenticated with the current token
func (c *Client) api() *github.Client {
	token := c.token()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.cachedToken == token {
		return c.cached
	}
	c.cached = c.clientFor(token)
	c.cachedToken = token
	return c.cached
}

// clientFor builds a go-github client for token. An empty token yields an
// anonymous client.
func (c *Client) clientFor(token string) *github.Client {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	client.BaseURL = c.baseURL
	client.UploadURL = c.baseURL
	return client
}

// logAPIError records rate limit details for a failed call
func logAPIError(op string, resp *github.Response, err error) {
	if resp != nil {
		logging.Warn("GitHub API error",
			"op", op,
			"status", resp.Status,
			"rate_limit", resp.Rate.Limit,
			"rate_remaining", resp.Rate.Remaining,
			"error", err)
		return
	}
	logging.Warn("GitHub API error", "op", op, "error", err)
}

// GetIssue retrieves a single issue or pull request
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (vcs.Issue, error) {
	issue, resp, err := c.api().Issues.Get(ctx, owner, repo, number)
	if err != nil {
		logAPIError("get issue", resp, err)
		return nil, fmt.Errorf("error getting issue: %w", err)
	}

	return convertIssue(issue, owner, repo), nil
}

// ListRepositoryIssues lists open issues of a repository, excluding pull requests
func (c *Client) ListRepositoryIssues(ctx context.Context, owner, repo string) ([]vcs.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	issues, resp, err := c.api().Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		logAPIError("list repository issues", resp, err)
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	var result []vcs.Issue
	for _, issue := range issues {
		if issue.IsPullRequest() {
			continue
		}
		result = append(result, convertIssue(issue, owner, repo))
	}
	return result, nil
}

// ListAccountIssues lists open issues opened by login
func (c *Client) ListAccountIssues(ctx context.Context, login string) ([]vcs.Issue, error) {
	return c.searchIssues(ctx, fmt.Sprintf("is:open is:issue author:%s archived:false", login))
}

// ListAccountAssignedIssues lists open issues assigned to login
func (c *Client) ListAccountAssignedIssues(ctx context.Context, login string) ([]vcs.Issue, error) {
	return c.searchIssues(ctx, fmt.Sprintf("is:open is:issue assignee:%s archived:false", login))
}

func (c *Client) searchIssues(ctx context.Context, query string) ([]vcs.Issue, error) {
	found, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}

	var issues []vcs.Issue
	for _, issue := range found {
		owner, repo, ok := ownerRepoFromHTMLURL(issue.GetHTMLURL())
		if !ok {
			logging.Warn("Skipping issue with invalid URL", "url", issue.GetHTMLURL())
			continue
		}
		issues = append(issues, convertIssue(issue, owner, repo))
	}
	return issues, nil
}

// search runs an issue search and returns the first page of results
func (c *Client) search(ctx context.Context, query string) ([]*github.Issue, error) {
	logging.Debug("Searching issues", "query", query)

	opts := &github.SearchOptions{
		Sort:  "updated",
		Order: "desc",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	result, resp, err := c.api().Search.Issues(ctx, query, opts)
	if err != nil {
		logAPIError("search issues", resp, err)
		return nil, fmt.Errorf("error searching for issues: %w", err)
	}
	return result.Issues, nil
}

// GetRepository retrieves a single repository
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (vcs.Repository, error) {
	repository, resp, err := c.api().Repositories.Get(ctx, owner, repo)
	if err != nil {
		logAPIError("get repository", resp, err)
		return nil, fmt.Errorf("error getting repository: %w", err)
	}
	return convertRepository(repository), nil
}

// ListAccountRepositories lists the public repositories of login, most recently updated first
func (c *Client) ListAccountRepositories(ctx context.Context, login string) ([]vcs.Repository, error) {
	opts := &github.RepositoryListOptions{
		Sort: "updated",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	repos, resp, err := c.api().Repositories.List(ctx, login, opts)
	if err != nil {
		logAPIError("list repositories", resp, err)
		return nil, fmt.Errorf("failed to list repositories: %w", err)
	}

	result := make([]vcs.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, convertRepository(repo))
	}
	return result, nil
}

// ListRepositoryPullRequests lists open pull requests of a repository
func (c *Client) ListRepositoryPullRequests(ctx context.Context, owner, repo string) ([]vcs.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	prs, resp, err := c.api().PullRequests.List(ctx, owner, repo, opts)
	if err != nil {
		logAPIError("list pull requests", resp, err)
		return nil, fmt.Errorf("failed to list PRs: %w", err)
	}

	result := make([]vcs.PullRequest, 0, len(prs))
	for _, pr := range prs {
		result = append(result, convertPullRequest(pr, owner, repo))
	}
	return result, nil
}

// ListAccountPullRequests lists open pull requests opened by login
func (c *Client) ListAccountPullRequests(ctx context.Context, login string) ([]vcs.PullRequest, error) {
	return c.searchPullRequests(ctx, fmt.Sprintf("is:open is:pr author:%s archived:false", login))
}

// ListCommitPullRequests lists pull requests containing the commit sha
func (c *Client) ListCommitPullRequests(ctx context.Context, sha string) ([]vcs.PullRequest, error) {
	return c.searchPullRequests(ctx, fmt.Sprintf("%s is:pr", sha))
}

func (c *Client) searchPullRequests(ctx context.Context, query string) ([]vcs.PullRequest, error) {
	found, err := c.search(ctx, query)
	if err != nil {
		return nil, err
	}

	var prs []vcs.PullRequest
	for _, issue := range found {
		if !issue.IsPullRequest() {
			continue
		}
		owner, repo, ok := ownerRepoFromHTMLURL(issue.GetHTMLURL())
		if !ok {
			logging.Warn("Skipping pull request with invalid URL", "url", issue.GetHTMLURL())
			continue
		}
		prs = append(prs, convertSearchPullRequest(issue, owner, repo))
	}
	return prs, nil
}

// ListAccountGists lists the public gists of login
func (c *Client) ListAccountGists(ctx context.Context, login string) ([]vcs.Gist, error) {
	opts := &github.GistListOptions{
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	gists, resp, err := c.api().Gists.List(ctx, login, opts)
	if err != nil {
		logAPIError("list gists", resp, err)
		return nil, fmt.Errorf("failed to list gists: %w", err)
	}

	result := make([]vcs.Gist, 0, len(gists))
	for _, gist := range gists {
		result = append(result, convertGist(gist))
	}
	return result, nil
}

// ListOrganizationProjects lists the open project boards of an organization
func (c *Client) ListOrganizationProjects(ctx context.Context, login string) ([]vcs.Project, error) {
	opts := &github.ProjectListOptions{
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: perPage,
		},
	}

	projects, resp, err := c.api().Organizations.ListProjects(ctx, login, opts)
	if err != nil {
		logAPIError("list projects", resp, err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	result := make([]vcs.Project, 0, len(projects))
	for _, project := range projects {
		result = append(result, vcs.Project{
			Number: project.GetNumber(),
			Name:   project.GetName(),
			Body:   project.GetBody(),
			State:  project.GetState(),
			URL:    project.GetHTMLURL(),
		})
	}
	return result, nil
}

// VerifyIdentity resolves token to the login it belongs to
func (c *Client) VerifyIdentity(ctx context.Context, token string) (string, error) {
	user, resp, err := c.clientFor(token).Users.Get(ctx, "")
	if err != nil {
		logAPIError("verify identity", resp, err)
		return "", fmt.Errorf("failed to get user info: %w", err)
	}
	if user.GetLogin() == "" {
		return "", vcs.ErrNoIdentity
	}
	return user.GetLogin(), nil
}
