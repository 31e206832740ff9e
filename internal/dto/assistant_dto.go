package dto

import (
	"time"

	"cooking-assistant-be/pkg/store"
)

type SearchRequest struct {
	Query          string        `json:"query"`
	IsFollowUp     bool          `json:"is_follow_up"`
	IsModification bool          `json:"is_modification"`
	CurrentRecipe  *store.Recipe `json:"current_recipe"`
}

type ModifyRequest struct {
	Recipe       *store.Recipe `json:"recipe" validate:"required"`
	Modification string        `json:"modification" validate:"required"`
}

type SearchResponse struct {
	Results    []store.Recipe `json:"results"`
	IsRecipe   bool           `json:"is_recipe"`
	IsDetail   bool           `json:"is_detail"`
	Session    store.Snapshot `json:"session"`
	Processing bool           `json:"processing"`
}

type ResetResponse struct {
	Message    string         `json:"message"`
	Reset      bool           `json:"reset"`
	Session    store.Snapshot `json:"session"`
	Processing bool           `json:"processing"`
}

// SearchResult carries exactly one of the two /search/ payloads.
type SearchResult struct {
	Search *SearchResponse
	Reset  *ResetResponse
}

// Body returns whichever payload is set.
func (r *SearchResult) Body() interface{} {
	if r.Reset != nil {
		return r.Reset
	}
	return r.Search
}

type StatsResponse struct {
	Total          int64            `json:"total"`
	ByType         map[string]int64 `json:"by_type"`
	LastActivityAt *time.Time       `json:"last_activity_at"`
}
