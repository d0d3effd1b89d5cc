// Package vcs defines the remote data source the menu builders read from
package vcs

import (
	"fmt"
)

// Issue represents an issue as returned by the remote source
type Issue interface {
	GetOwner() string
	GetRepo() string
	GetNumber() int
	GetTitle() string
	GetState() string
	GetUser() string
	GetURL() string
	GetIsPullRequest() bool
}

// BaseIssue provides a common implementation of Issue
type BaseIssue struct {
	Owner         string
	Repo          string
	Number        int
	Title         string
	State         string
	User          string
	URL           string
	IsPullRequest bool
}

// GetOwner returns the repository owner
func (i *BaseIssue) GetOwner() string { return i.Owner }

// GetRepo returns the repository name
func (i *BaseIssue) GetRepo() string { return i.Repo }

// GetNumber returns the issue number
func (i *BaseIssue) GetNumber() int { return i.Number }

// GetTitle returns the issue title
func (i *BaseIssue) GetTitle() string { return i.Title }

// GetState returns the issue state (open/closed)
func (i *BaseIssue) GetState() string { return i.State }

// GetUser returns the issue creator username
func (i *BaseIssue) GetUser() string { return i.User }

// GetURL returns the issue URL
func (i *BaseIssue) GetURL() string { return i.URL }

// GetIsPullRequest reports whether the issue is backed by a pull request
func (i *BaseIssue) GetIsPullRequest() bool { return i.IsPullRequest }

// Reference formats owner/repo#number
func Reference(owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s#%d", owner, repo, number)
}
