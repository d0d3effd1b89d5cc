// Package vcs defines the remote data source the menu builders read from
package vcs

import (
	"context"
	"errors"
)

// ErrNoIdentity is returned when a token does not resolve to a login
var ErrNoIdentity = errors.New("no identity for token")

// Service is the remote data source. Every call is a single attempt; callers
// treat any error as "no data" except for VerifyIdentity.
type Service interface {
	// Issue operations
	GetIssue(ctx context.Context, owner, repo string, number int) (Issue, error)
	ListRepositoryIssues(ctx context.Context, owner, repo string) ([]Issue, error)
	ListAccountIssues(ctx context.Context, login string) ([]Issue, error)
	ListAccountAssignedIssues(ctx context.Context, login string) ([]Issue, error)

	// Repository operations
	GetRepository(ctx context.Context, owner, repo string) (Repository, error)
	ListAccountRepositories(ctx context.Context, login string) ([]Repository, error)

	// PR operations
	ListRepositoryPullRequests(ctx context.Context, owner, repo string) ([]PullRequest, error)
	ListAccountPullRequests(ctx context.Context, login string) ([]PullRequest, error)
	ListCommitPullRequests(ctx context.Context, sha string) ([]PullRequest, error)

	// Gists and projects
	ListAccountGists(ctx context.Context, login string) ([]Gist, error)
	ListOrganizationProjects(ctx context.Context, login string) ([]Project, error)

	// Authentication
	VerifyIdentity(ctx context.Context, token string) (string, error)
}
