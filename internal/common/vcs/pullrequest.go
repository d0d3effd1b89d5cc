package vcs

// PullRequest represents a pull request as returned by the remote source
type PullRequest interface {
	GetOwner() string
	GetRepo() string
	GetNumber() int
	GetTitle() string
	GetState() string
	GetIsDraft() bool
	GetUser() string
	GetURL() string
}

// BasePullRequest provides a common implementation of PullRequest
type BasePullRequest struct {
	Owner   string
	Repo    string
	Number  int
	Title   string
	State   string
	IsDraft bool
	User    string
	URL     string
}

// GetOwner returns the repository owner
func (p *BasePullRequest) GetOwner() string { return p.Owner }

// GetRepo returns the repository name
func (p *BasePullRequest) GetRepo() string { return p.Repo }

// GetNumber returns the PR number
func (p *BasePullRequest) GetNumber() int { return p.Number }

// GetTitle returns the PR title
func (p *BasePullRequest) GetTitle() string { return p.Title }

// GetState returns the PR state (open/closed/merged)
func (p *BasePullRequest) GetState() string { return p.State }

// GetIsDraft returns whether the PR is a draft
func (p *BasePullRequest) GetIsDraft() bool { return p.IsDraft }

// GetUser returns the username of the PR creator
func (p *BasePullRequest) GetUser() string { return p.User }

// GetURL returns the PR URL
func (p *BasePullRequest) GetURL() string { return p.URL }
