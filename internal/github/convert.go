package github

import (
	"net/url"
	"sort"
	"strings"

	"github.com/google/go-github/v45/github"
	"github.com/hellausefulsoftware/hublaunch/internal/common/vcs"
)

func convertIssue(issue *github.Issue, owner, repo string) vcs.Issue {
	return &vcs.BaseIssue{
		Owner:         owner,
		Repo:          repo,
		Number:        issue.GetNumber(),
		Title:         issue.GetTitle(),
		State:         issue.GetState(),
		User:          issue.GetUser().GetLogin(),
		URL:           issue.GetHTMLURL(),
		IsPullRequest: issue.IsPullRequest(),
	}
}

func convertPullRequest(pr *github.PullRequest, owner, repo string) vcs.PullRequest {
	return &vcs.BasePullRequest{
		Owner:   owner,
		Repo:    repo,
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		State:   pr.GetState(),
		IsDraft: pr.GetDraft(),
		User:    pr.GetUser().GetLogin(),
		URL:     pr.GetHTMLURL(),
	}
}

// convertSearchPullRequest maps a search hit, which is an issue with pull
// request links. Search hits do not carry the draft flag.
func convertSearchPullRequest(issue *github.Issue, owner, repo string) vcs.PullRequest {
	return &vcs.BasePullRequest{
		Owner:  owner,
		Repo:   repo,
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		State:  issue.GetState(),
		User:   issue.GetUser().GetLogin(),
		URL:    issue.GetHTMLURL(),
	}
}

func convertRepository(repo *github.Repository) vcs.Repository {
	return &vcs.BaseRepository{
		Owner:           repo.GetOwner().GetLogin(),
		Name:            repo.GetName(),
		URL:             repo.GetHTMLURL(),
		Description:     repo.GetDescription(),
		IsPrivate:       repo.GetPrivate(),
		IsFork:          repo.GetFork(),
		StargazersCount: repo.GetStargazersCount(),
	}
}

func convertGist(gist *github.Gist) vcs.Gist {
	names := make([]string, 0, len(gist.Files))
	for name := range gist.Files {
		names = append(names, string(name))
	}
	sort.Strings(names)

	g := vcs.Gist{
		ID:          gist.GetID(),
		Description: gist.GetDescription(),
		URL:         gist.GetHTMLURL(),
		Public:      gist.GetPublic(),
	}
	if len(names) > 0 {
		g.FirstFile = names[0]
	}
	return g
}

// ownerRepoFromHTMLURL extracts owner and repo from https://host/owner/repo/...
func ownerRepoFromHTMLURL(htmlURL string) (string, string, bool) {
	u, err := url.Parse(htmlURL)
	if err != nil {
		return "", "", false
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
