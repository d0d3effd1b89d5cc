// Package entity defines the typed references a launcher query resolves to.
// References hold only what was captured from the input text; anything
// fetched from GitHub lives elsewhere.
package entity

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const webURL = "https://github.com"

// ErrInvalidNameWithOwner is returned when a slug has no owner/name separator
var ErrInvalidNameWithOwner = errors.New("invalid nameWithOwner")

// Kind identifies a reference variant
type Kind string

// Reference kinds
const (
	KindAccount      Kind = "account"
	KindRepository   Kind = "repository"
	KindIssue        Kind = "issue"
	KindCommit       Kind = "commit"
	KindGist         Kind = "gist"
	KindOrganization Kind = "organization"
	KindProject      Kind = "project"
)

// Reference is implemented by every entity variant
type Reference interface {
	Kind() Kind
	String() string
	reference()
}

// Account is a user or organization login
type Account struct {
	Login string
}

// Kind returns KindAccount
func (Account) Kind() Kind { return KindAccount }

func (Account) reference() {}

func (a Account) String() string { return a.Login }

// Handle returns the login prefixed with @
func (a Account) Handle() string { return "@" + a.Login }

// ProfileURL returns the account's profile page
func (a Account) ProfileURL() string { return webURL + "/" + a.Login }

// RepositoriesURL returns the account's repositories tab
func (a Account) RepositoriesURL() string { return a.ProfileURL() + "?tab=repositories" }

// Repository is an owner/name pair. Name is empty for partial input like "rails/".
type Repository struct {
	Owner Account
	Name  string
}

// Kind returns KindRepository
func (Repository) Kind() Kind { return KindRepository }

func (Repository) reference() {}

func (r Repository) String() string { return r.NameWithOwner() }

// NameWithOwner returns the owner/name slug
func (r Repository) NameWithOwner() string { return r.Owner.Login + "/" + r.Name }

// URL returns the repository page
func (r Repository) URL() string { return webURL + "/" + r.NameWithOwner() }

// IssuesURL returns the repository's issue list
func (r Repository) IssuesURL() string { return r.URL() + "/issues" }

// PullRequestsURL returns the repository's pull request list
func (r Repository) PullRequestsURL() string { return r.URL() + "/pulls" }

// ParseNameWithOwner rebuilds a Repository from an owner/name slug
func ParseNameWithOwner(slug string) (Repository, error) {
	i := strings.LastIndex(slug, "/")
	if i < 0 {
		return Repository{}, fmt.Errorf("%w: %q", ErrInvalidNameWithOwner, slug)
	}
	return Repository{Owner: Account{Login: slug[:i]}, Name: slug[i+1:]}, nil
}

// Issue references an issue or pull request. Number is 0 when the input had none.
type Issue struct {
	Repository Repository
	Number     int
	Hint       string
}

// Kind returns KindIssue
func (Issue) Kind() Kind { return KindIssue }

func (Issue) reference() {}

func (i Issue) String() string {
	if i.Number == 0 {
		return i.Repository.NameWithOwner() + "#"
	}
	return i.Repository.NameWithOwner() + "#" + strconv.Itoa(i.Number)
}

// HasNumber reports whether a concrete issue number was captured
func (i Issue) HasNumber() bool { return i.Number > 0 }

// URL returns the issue page. GitHub redirects to the pull request when needed.
func (i Issue) URL() string {
	return i.Repository.URL() + "/issues/" + strconv.Itoa(i.Number)
}

// Commit is a possibly abbreviated commit SHA
type Commit struct {
	SHA string
}

// Kind returns KindCommit
func (Commit) Kind() Kind { return KindCommit }

func (Commit) reference() {}

func (c Commit) String() string { return c.SHA }

// SearchURL fills template (which must contain one %s) with the escaped SHA
func (c Commit) SearchURL(template string) string {
	return fmt.Sprintf(template, url.QueryEscape(c.SHA))
}

// Gist references the gists of a login
type Gist struct {
	Login string
}

// Kind returns KindGist
func (Gist) Kind() Kind { return KindGist }

func (Gist) reference() {}

func (g Gist) String() string { return g.Login }

// URL returns the gist listing of the login
func (g Gist) URL() string { return "https://gist.github.com/" + g.Login }

// Organization is an organization login
type Organization struct {
	Login string
}

// Kind returns KindOrganization
func (Organization) Kind() Kind { return KindOrganization }

func (Organization) reference() {}

func (o Organization) String() string { return o.Login }

// ProjectsURL returns the organization's project board listing
func (o Organization) ProjectsURL() string { return webURL + "/orgs/" + o.Login + "/projects" }

// Project references the projects owned by a login
type Project struct {
	Login string
}

// Kind returns KindProject
func (Project) Kind() Kind { return KindProject }

func (Project) reference() {}

func (p Project) String() string { return p.Login }

// URL returns the project listing of the owning organization
func (p Project) URL() string { return Organization{Login: p.Login}.ProjectsURL() }

// LiteralURL turns unmatched input into a github.com path, escaping each
// segment so spaces and query characters stay in the path
func LiteralURL(input string) string {
	segments := strings.Split(strings.TrimLeft(input, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return webURL + "/" + strings.Join(segments, "/")
}
