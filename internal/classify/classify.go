// Package classify turns free launcher input into a typed reference.
// Rules are tried in order and the first match wins.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hellausefulsoftware/hublaunch/internal/entity"
)

// Kind tells the router which builder handles a result
type Kind int

// Result kinds
const (
	KindMiss Kind = iota
	KindLink
	KindIssue
	KindRepository
	KindCommit
	KindAccount
)

func (k Kind) String() string {
	switch k {
	case KindLink:
		return "link"
	case KindIssue:
		return "issue"
	case KindRepository:
		return "repository"
	case KindCommit:
		return "commit"
	case KindAccount:
		return "account"
	}
	return "miss"
}

// Result is the outcome of classifying one input
type Result struct {
	Kind Kind
	// Input is the trimmed text that was classified
	Input string
	// Reference is nil for KindLink and KindMiss
	Reference entity.Reference
	// Hint is the optional trailing token used to filter the resulting menu
	Hint string
}

// Rule pairs a pattern with the constructor for its result
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Build   func(input string, match []string) Result
}

var rules = []Rule{
	{
		Name:    "link",
		Pattern: regexp.MustCompile(`^https?://((www|gist|raw|developer)\.)?github\.(io|com)`),
		Build: func(input string, _ []string) Result {
			return Result{Kind: KindLink, Input: input}
		},
	},
	{
		Name:    "issue",
		Pattern: regexp.MustCompile(`^([\w.-]+)/([\w.-]+)(?:#|/issues/|/pull/)(\d+)?\s*([\w-]+)?$`),
		Build: func(input string, m []string) Result {
			// A number too large for int is treated like a missing one
			number, _ := strconv.Atoi(m[3])
			return Result{
				Kind:  KindIssue,
				Input: input,
				Reference: entity.Issue{
					Repository: entity.Repository{Owner: entity.Account{Login: m[1]}, Name: m[2]},
					Number:     number,
					Hint:       m[4],
				},
				Hint: m[4],
			}
		},
	},
	{
		Name:    "repository",
		Pattern: regexp.MustCompile(`^([\w.-]+)/([\w.-]+)?\s*([\w-]+)?$`),
		Build: func(input string, m []string) Result {
			return Result{
				Kind:      KindRepository,
				Input:     input,
				Reference: entity.Repository{Owner: entity.Account{Login: m[1]}, Name: m[2]},
				Hint:      m[3],
			}
		},
	},
	{
		Name:    "commit",
		Pattern: regexp.MustCompile(`^[0-9a-f]{5,40}$`),
		Build: func(input string, m []string) Result {
			return Result{Kind: KindCommit, Input: input, Reference: entity.Commit{SHA: m[0]}}
		},
	},
	{
		Name:    "account",
		Pattern: regexp.MustCompile(`^([\w-]+)\s*([\w-]+)?$`),
		Build: func(input string, m []string) Result {
			return Result{
				Kind:      KindAccount,
				Input:     input,
				Reference: entity.Account{Login: m[1]},
				Hint:      m[2],
			}
		},
	},
}

// Rules returns the rule cascade in evaluation order
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// Classify runs input through the rule cascade. Input matching no rule
// yields a KindMiss result carrying the trimmed text.
func Classify(input string) Result {
	input = strings.TrimSpace(input)
	for _, rule := range rules {
		if m := rule.Pattern.FindStringSubmatch(input); m != nil {
			return rule.Build(input, m)
		}
	}
	return Result{Kind: KindMiss, Input: input}
}
