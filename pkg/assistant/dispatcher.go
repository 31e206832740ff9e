// Package assistant interprets a conversational query against the session
// state and routes it to search, selection, modification or reset.
package assistant

import (
	"context"
	"fmt"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/apperr"
	"cooking-assistant-be/pkg/recipe"
	"cooking-assistant-be/pkg/store"
)

const ResetMessage = "Session cleared. Ready to start fresh!"

var (
	errNoSession  = apperr.Configuration("Session middleware not installed")
	errNoResults  = apperr.Lookup("No current results in session")
	errOutOfRange = apperr.Lookup("Selected recipe index out of range")
)

type RecipeSearcher interface {
	Search(ctx context.Context, query string) ([]store.Recipe, error)
}

type RecipeFormatter interface {
	Format(ctx context.Context, raw store.Recipe) (store.Recipe, bool)
}

type RecipeModifier interface {
	Modify(ctx context.Context, original store.Recipe, modification string) (store.Recipe, *recipe.ModificationError)
}

// Outcome is what a dispatched request produced. The session passed to
// Dispatch has already been updated to match it.
type Outcome struct {
	Intent   Intent
	Results  []store.Recipe
	IsDetail bool
	Reset    bool
}

type Dispatcher struct {
	searcher  RecipeSearcher
	formatter RecipeFormatter
	modifier  RecipeModifier
	logger    logger.ILogger
}

func NewDispatcher(searcher RecipeSearcher, formatter RecipeFormatter, modifier RecipeModifier, log logger.ILogger) *Dispatcher {
	return &Dispatcher{
		searcher:  searcher,
		formatter: formatter,
		modifier:  modifier,
		logger:    log,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, session *store.Session, req Request) (*Outcome, error) {
	if session == nil {
		return nil, errNoSession
	}
	session.EnsureDefaults()

	intent := Classify(req)
	d.logger.Debug("Dispatcher", "Query classified", map[string]interface{}{
		"action": string(intent.Action),
		"query":  intent.Query,
		"target": intent.Target,
	})

	switch intent.Action {
	case ActionModify:
		return d.modify(ctx, session, intent, *req.CurrentRecipe), nil
	case ActionReset:
		session.Reset()
		return &Outcome{Intent: intent, Reset: true}, nil
	case ActionSelect:
		return d.selectResult(ctx, session, intent)
	default:
		return d.search(ctx, session, intent)
	}
}

// Modify applies a standalone modification request. Unlike the search path
// a failure is returned to the caller instead of being folded into notes.
func (d *Dispatcher) Modify(ctx context.Context, session *store.Session, original store.Recipe, modification string) (store.Recipe, *recipe.ModificationError) {
	modified, modErr := d.modifier.Modify(ctx, original, modification)
	if modErr != nil {
		return store.Recipe{}, modErr
	}

	formatted, _ := d.formatter.Format(ctx, modified)
	if session != nil {
		session.EnsureDefaults()
		session.ModifiedRecipes[original.Key()] = formatted
	}
	return formatted, nil
}

func (d *Dispatcher) modify(ctx context.Context, session *store.Session, intent Intent, current store.Recipe) *Outcome {
	modified, modErr := d.modifier.Modify(ctx, current, intent.Query)
	if modErr != nil {
		modified = current
		modified.Notes = fmt.Sprintf("Modification failed: %s", modErr.Message)
	}

	formatted, _ := d.formatter.Format(ctx, modified)
	session.ModifiedRecipes[current.Key()] = formatted

	return &Outcome{
		Intent:   intent,
		Results:  []store.Recipe{formatted},
		IsDetail: true,
	}
}

func (d *Dispatcher) selectResult(ctx context.Context, session *store.Session, intent Intent) (*Outcome, error) {
	if len(session.CurrentResults) == 0 {
		return nil, errNoResults
	}
	if intent.Target >= len(session.CurrentResults) {
		return nil, errOutOfRange
	}

	formatted, _ := d.formatter.Format(ctx, session.CurrentResults[intent.Target])
	return &Outcome{
		Intent:   intent,
		Results:  []store.Recipe{formatted},
		IsDetail: true,
	}, nil
}

func (d *Dispatcher) search(ctx context.Context, session *store.Session, intent Intent) (*Outcome, error) {
	var combined string
	if intent.Action == ActionRefine {
		session.Preferences = joinNonEmpty(session.Preferences, intent.Query)
		combined = joinNonEmpty(session.Ingredients, session.Preferences)
	} else {
		session.Ingredients = intent.Query
		session.Preferences = ""
		combined = intent.Query
	}

	results, err := d.searcher.Search(ctx, combined)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []store.Recipe{}
	}
	session.CurrentResults = results

	return &Outcome{
		Intent:  intent,
		Results: results,
	}, nil
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
