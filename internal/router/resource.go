package router

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/hellausefulsoftware/hublaunch/internal/logging"
)

// resourceTitle names the GitHub resource behind link. Issues and pull
// requests use their title, repositories their owner/name slug. Anything
// that cannot be resolved is named by the link itself.
func (r *Router) resourceTitle(ctx context.Context, link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if !strings.HasSuffix(u.Host, "github.com") || strings.HasPrefix(u.Host, "gist.") || len(parts) < 2 {
		return link
	}
	owner, repo := parts[0], parts[1]

	if len(parts) >= 4 && (parts[2] == "issues" || parts[2] == "pull") {
		number, err := strconv.Atoi(parts[3])
		if err != nil {
			return link
		}
		issue, err := r.source.GetIssue(ctx, owner, repo, number)
		if err != nil {
			logging.Warn("Failed to resolve issue title", "link", link, "error", err)
			return link
		}
		return issue.GetTitle()
	}

	if len(parts) == 2 {
		repository, err := r.source.GetRepository(ctx, owner, repo)
		if err != nil {
			logging.Warn("Failed to resolve repository", "link", link, "error", err)
			return link
		}
		return repository.GetNameWithOwner()
	}

	return link
}
