// Package menu defines the items returned to the launcher host
package menu

import (
	"errors"
	"strings"
)

// Icon names understood by the host
const (
	IconPerson      = "personTemplate.png"
	IconRepo        = "repoTemplate.png"
	IconRepos       = "reposTemplate.png"
	IconIssue       = "issueTemplate.png"
	IconPullRequest = "pullRequestTemplate.png"
	IconGist        = "gistTemplate.png"
	IconProject     = "projectTemplate.png"
	IconCommit      = "commitTemplate.png"
	IconGear        = "gearTemplate.png"
	IconKey         = "keyTemplate.png"
	IconLink        = "linkTemplate.png"
	IconThings      = "thingsTemplate.png"
)

var (
	// ErrNoTarget is returned by Validate when an item has neither URL nor action
	ErrNoTarget = errors.New("menu item has neither url nor action")
	// ErrBothTargets is returned by Validate when an item has both URL and action
	ErrBothTargets = errors.New("menu item has both url and action")
)

// Item is a single selectable menu entry. Exactly one of URL and Action is set.
type Item struct {
	Title               string `json:"title"`
	Subtitle            string `json:"subtitle,omitempty"`
	AlwaysShowsSubtitle bool   `json:"alwaysShowsSubtitle,omitempty"`
	Icon                string `json:"icon,omitempty"`
	URL                 string `json:"url,omitempty"`
	Action              string `json:"action,omitempty"`
	ActionArgument      string `json:"actionArgument,omitempty"`
	ActionReturnsItems  bool   `json:"actionReturnsItems,omitempty"`

	// Pinned items are kept by Filter regardless of the query
	Pinned bool `json:"-"`
}

// Link creates a terminal item that opens url
func Link(title, icon, url string) Item {
	return Item{Title: title, Icon: icon, URL: url}
}

// Drill creates a deferred item whose action returns another list of items
func Drill(title, icon, action, argument string) Item {
	return Item{
		Title:              title,
		Icon:               icon,
		Action:             action,
		ActionArgument:     argument,
		ActionReturnsItems: true,
	}
}

// Deferred creates a deferred item whose action performs a side effect
func Deferred(title, icon, action, argument string) Item {
	return Item{Title: title, Icon: icon, Action: action, ActionArgument: argument}
}

// IsTerminal reports whether selecting the item opens a URL
func (i Item) IsTerminal() bool {
	return i.URL != ""
}

// Filterable reports whether Filter may drop the item
func (i Item) Filterable() bool {
	return !i.Pinned
}

// Validate checks that exactly one of URL and Action is set
func (i Item) Validate() error {
	switch {
	case i.URL == "" && i.Action == "":
		return ErrNoTarget
	case i.URL != "" && i.Action != "":
		return ErrBothTargets
	}
	return nil
}

// Filter keeps pinned items and items whose title contains query, ignoring case.
// An empty query returns items unchanged.
func Filter(items []Item, query string) []Item {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if !item.Filterable() || strings.Contains(strings.ToLower(item.Title), q) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
