package assistant

import (
	"regexp"
	"strings"

	"cooking-assistant-be/pkg/store"
)

// Action is the resolved kind of a query.
type Action string

const (
	ActionModify Action = "MODIFY"
	ActionReset  Action = "RESET"
	ActionSelect Action = "SELECT"
	ActionRefine Action = "REFINE"
	ActionSearch Action = "SEARCH"
)

// Request is one user turn as received from the client.
type Request struct {
	Query          string
	IsFollowUp     bool
	IsModification bool
	CurrentRecipe  *store.Recipe
}

// Intent is the classified request. Target is only meaningful for
// ActionSelect.
type Intent struct {
	Action Action
	Query  string
	Target int
}

var resetKeywords = []string{"reset", "start over", "clear session", "new session", "begin again"}

var refinementPhrases = []string{
	"make it", "add", "prefer", "more", "less", "quick",
	"spicy", "healthy", "without", "with", "vegan", "vegetarian",
}

var (
	selectionPattern = regexp.MustCompile(`(recipe|choose|select|first|second|third|1|2|3)`)

	// checked in order, the first match wins
	ordinalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(1|first)\b`),
		regexp.MustCompile(`\b(2|second)\b`),
		regexp.MustCompile(`\b(3|third)\b`),
	}
)

type rule struct {
	action Action
	match  func(query string, req Request) bool
}

// rules are evaluated top to bottom. ActionSearch is the fallthrough.
var rules = []rule{
	{ActionModify, func(_ string, req Request) bool {
		return req.IsModification && req.CurrentRecipe.Present()
	}},
	{ActionReset, func(query string, _ Request) bool {
		return containsAny(query, resetKeywords)
	}},
	{ActionSelect, func(query string, req Request) bool {
		return req.IsFollowUp && selectionPattern.MatchString(query)
	}},
	{ActionRefine, func(query string, req Request) bool {
		return req.IsFollowUp || containsAny(query, refinementPhrases)
	}},
}

// NormalizeQuery trims and lower-cases a raw query.
func NormalizeQuery(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Classify resolves a request to exactly one intent.
func Classify(req Request) Intent {
	query := NormalizeQuery(req.Query)
	for _, r := range rules {
		if !r.match(query, req) {
			continue
		}
		intent := Intent{Action: r.action, Query: query}
		if r.action == ActionSelect {
			intent.Target = SelectionIndex(query)
		}
		return intent
	}
	return Intent{Action: ActionSearch, Query: query}
}

// SelectionIndex maps an ordinal in the query to a zero-based result
// position, defaulting to the first result.
func SelectionIndex(query string) int {
	for i, p := range ordinalPatterns {
		if p.MatchString(query) {
			return i
		}
	}
	return 0
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
