// Package vcstest provides an in-memory vcs.Service for tests
package vcstest

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/hellausefulsoftware/hublaunch/internal/common/vcs"
)

// ErrNotFound is returned for records the fake does not hold
var ErrNotFound = errors.New("not found")

// Service is a vcs.Service backed by maps. Keys are logins, "owner/repo"
// slugs, "owner/repo#n" references or commit SHAs depending on the call.
// When Err is set every call fails with it.
type Service struct {
	Issues           map[string]vcs.Issue
	RepositoryIssues map[string][]vcs.Issue
	AccountIssues    map[string][]vcs.Issue
	AssignedIssues   map[string][]vcs.Issue
	Repositories     map[string]vcs.Repository
	AccountRepos     map[string][]vcs.Repository
	RepositoryPRs    map[string][]vcs.PullRequest
	AccountPRs       map[string][]vcs.PullRequest
	CommitPRs        map[string][]vcs.PullRequest
	Gists            map[string][]vcs.Gist
	Projects         map[string][]vcs.Project
	Identities       map[string]string
	Err              error

	mu    sync.Mutex
	calls []string
}

var _ vcs.Service = (*Service)(nil)

// Calls returns the names of the methods invoked so far
func (s *Service) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *Service) record(name string) error {
	s.mu.Lock()
	s.calls = append(s.calls, name)
	s.mu.Unlock()
	return s.Err
}

// GetIssue returns Issues["owner/repo#n"]
func (s *Service) GetIssue(_ context.Context, owner, repo string, number int) (vcs.Issue, error) {
	if err := s.record("GetIssue"); err != nil {
		return nil, err
	}
	issue, ok := s.Issues[vcs.Reference(owner, repo, number)]
	if !ok {
		return nil, ErrNotFound
	}
	return issue, nil
}

// ListRepositoryIssues returns RepositoryIssues["owner/repo"]
func (s *Service) ListRepositoryIssues(_ context.Context, owner, repo string) ([]vcs.Issue, error) {
	if err := s.record("ListRepositoryIssues"); err != nil {
		return nil, err
	}
	return s.RepositoryIssues[owner+"/"+repo], nil
}

// ListAccountIssues returns AccountIssues[login]
func (s *Service) ListAccountIssues(_ context.Context, login string) ([]vcs.Issue, error) {
	if err := s.record("ListAccountIssues"); err != nil {
		return nil, err
	}
	return s.AccountIssues[login], nil
}

// ListAccountAssignedIssues returns AssignedIssues[login]
func (s *Service) ListAccountAssignedIssues(_ context.Context, login string) ([]vcs.Issue, error) {
	if err := s.record("ListAccountAssignedIssues"); err != nil {
		return nil, err
	}
	return s.AssignedIssues[login], nil
}

// GetRepository returns Repositories["owner/repo"]
func (s *Service) GetRepository(_ context.Context, owner, repo string) (vcs.Repository, error) {
	if err := s.record("GetRepository"); err != nil {
		return nil, err
	}
	r, ok := s.Repositories[owner+"/"+repo]
	if !ok {
		return nil, ErrNotFound
	}
	return r, nil
}

// ListAccountRepositories returns a copy of AccountRepos[login]
func (s *Service) ListAccountRepositories(_ context.Context, login string) ([]vcs.Repository, error) {
	if err := s.record("ListAccountRepositories"); err != nil {
		return nil, err
	}
	return append([]vcs.Repository(nil), s.AccountRepos[login]...), nil
}

// ListRepositoryPullRequests returns RepositoryPRs["owner/repo"]
func (s *Service) ListRepositoryPullRequests(_ context.Context, owner, repo string) ([]vcs.PullRequest, error) {
	if err := s.record("ListRepositoryPullRequests"); err != nil {
		return nil, err
	}
	return s.RepositoryPRs[owner+"/"+repo], nil
}

// ListAccountPullRequests returns AccountPRs[login]
func (s *Service) ListAccountPullRequests(_ context.Context, login string) ([]vcs.PullRequest, error) {
	if err := s.record("ListAccountPullRequests"); err != nil {
		return nil, err
	}
	return s.AccountPRs[login], nil
}

// ListCommitPullRequests returns CommitPRs[sha]
func (s *Service) ListCommitPullRequests(_ context.Context, sha string) ([]vcs.PullRequest, error) {
	if err := s.record("ListCommitPullRequests"); err != nil {
		return nil, err
	}
	return s.CommitPRs[sha], nil
}

// ListAccountGists returns Gists[login]
func (s *Service) ListAccountGists(_ context.Context, login string) ([]vcs.Gist, error) {
	if err := s.record("ListAccountGists"); err != nil {
		return nil, err
	}
	return s.Gists[login], nil
}

// ListOrganizationProjects returns Projects[login]
func (s *Service) ListOrganizationProjects(_ context.Context, login string) ([]vcs.Project, error) {
	if err := s.record("ListOrganizationProjects"); err != nil {
		return nil, err
	}
	return s.Projects[login], nil
}

// VerifyIdentity returns Identities[token]
func (s *Service) VerifyIdentity(_ context.Context, token string) (string, error) {
	if err := s.record("VerifyIdentity"); err != nil {
		return "", err
	}
	login, ok := s.Identities[token]
	if !ok {
		return "", vcs.ErrNoIdentity
	}
	return login, nil
}

// Repo builds a repository record
func Repo(owner, name string) vcs.Repository {
	return &vcs.BaseRepository{Owner: owner, Name: name, URL: "https://github.com/" + owner + "/" + name}
}

// PR builds an open pull request record
func PR(owner, repo string, number int, title string) vcs.PullRequest {
	return &vcs.BasePullRequest{
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Title:  title,
		State:  "open",
		URL:    "https://github.com/" + owner + "/" + repo + "/pull/" + strconv.Itoa(number),
	}
}

// Issue builds an open issue record
func Issue(owner, repo string, number int, title string) vcs.Issue {
	return &vcs.BaseIssue{
		Owner:  owner,
		Repo:   repo,
		Number: number,
		Title:  title,
		State:  "open",
		URL:    "https://github.com/" + owner + "/" + repo + "/issues/" + strconv.Itoa(number),
	}
}

