package builder

import (
	"github.com/hellausefulsoftware/hublaunch/internal/common/vcs"
	"github.com/hellausefulsoftware/hublaunch/internal/menu"
)

func issueItem(issue vcs.Issue) menu.Item {
	icon := menu.IconIssue
	if issue.GetIsPullRequest() {
		icon = menu.IconPullRequest
	}
	item := menu.Link(issue.GetTitle(), icon, issue.GetURL())
	item.Subtitle = vcs.Reference(issue.GetOwner(), issue.GetRepo(), issue.GetNumber())
	return item
}

func pullRequestItem(pr vcs.PullRequest) menu.Item {
	item := menu.Link(pr.GetTitle(), menu.IconPullRequest, pr.GetURL())
	item.Subtitle = vcs.Reference(pr.GetOwner(), pr.GetRepo(), pr.GetNumber())
	if pr.GetIsDraft() {
		item.Subtitle += " (draft)"
	}
	return item
}

// repositoryDrillItem opens the repository's own menu instead of its page
func repositoryDrillItem(repo vcs.Repository) menu.Item {
	item := menu.Drill(repo.GetName(), menu.IconRepo, ActionRepositoryMenu, repo.GetNameWithOwner())
	item.Subtitle = repo.GetDescription()
	return item
}

func gistItem(gist vcs.Gist) menu.Item {
	return menu.Link(gist.DisplayTitle(), menu.IconGist, gist.URL)
}

func projectItem(project vcs.Project) menu.Item {
	item := menu.Link(project.Name, menu.IconProject, project.URL)
	item.Subtitle = project.Body
	return item
}

func withIssues(first menu.Item, issues []vcs.Issue) []menu.Item {
	items := make([]menu.Item, 0, len(issues)+1)
	items = append(items, first)
	for _, issue := range issues {
		items = append(items, issueItem(issue))
	}
	return items
}

func withPullRequests(first menu.Item, prs []vcs.PullRequest) []menu.Item {
	items := make([]menu.Item, 0, len(prs)+1)
	items = append(items, first)
	for _, pr := range prs {
		items = append(items, pullRequestItem(pr))
	}
	return items
}
