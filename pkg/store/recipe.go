package store

import (
	"bytes"
	"encoding/json"
	"hash/fnv"
	"strconv"
	"strings"
)

// Recipe is a catalog or LLM-produced recipe. Decoding is lenient: the
// catalog and the language model both emit free text where lists are
// expected, numbers as strings, and so on.
type Recipe struct {
	ID           string   `json:"id,omitempty"`
	Title        string   `json:"title" validate:"required"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Minutes      *float64 `json:"minutes,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

// Key identifies a recipe inside Session.ModifiedRecipes. Recipes without
// an id fall back to a decimal FNV-1a hash of the title, so two recipes
// sharing a title share a slot.
func (r Recipe) Key() string {
	if r.ID != "" {
		return r.ID
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(r.Title))
	return strconv.FormatUint(h.Sum64(), 10)
}

// Present reports whether r carries a recipe. An empty object sent by a
// client counts as absent.
func (r *Recipe) Present() bool {
	return r != nil && r.Title != ""
}

// Core returns the fields that define whether a recipe changed.
func (r Recipe) Core() RecipeCore {
	return RecipeCore{
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
	}
}

type RecipeCore struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

func (c RecipeCore) Equal(other RecipeCore) bool {
	a, errA := json.Marshal(c)
	b, errB := json.Marshal(other)
	return errA == nil && errB == nil && bytes.Equal(a, b)
}

func (r *Recipe) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           json.RawMessage `json:"id"`
		Title        json.RawMessage `json:"title"`
		Ingredients  json.RawMessage `json:"ingredients"`
		Instructions json.RawMessage `json:"instructions"`
		Minutes      json.RawMessage `json:"minutes"`
		Notes        json.RawMessage `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.ID, _ = scalarString(raw.ID)
	r.Title, _ = scalarString(raw.Title)
	r.Ingredients = lines(raw.Ingredients)
	r.Instructions = lines(raw.Instructions)
	r.Minutes = number(raw.Minutes)
	r.Notes = text(raw.Notes)
	return nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// scalarString renders a JSON string, number or bool as text.
func scalarString(raw json.RawMessage) (string, bool) {
	if isNull(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String(), true
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b), true
	}
	return "", false
}

// lines accepts a string (kept whole, normalized later) or an array of
// scalars.
func lines(raw json.RawMessage) []string {
	if isNull(raw) {
		return nil
	}
	if s, ok := scalarString(raw); ok {
		return []string{s}
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := scalarString(item); ok {
			out = append(out, s)
			continue
		}
		out = append(out, string(bytes.TrimSpace(item)))
	}
	return out
}

func number(raw json.RawMessage) *float64 {
	if isNull(raw) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return &f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		fields := strings.Fields(s)
		if len(fields) > 0 {
			if v, err := strconv.ParseFloat(fields[0], 64); err == nil {
				return &v
			}
		}
	}
	return nil
}

func text(raw json.RawMessage) string {
	if s, ok := scalarString(raw); ok {
		return s
	}
	if parts := lines(raw); len(parts) > 0 {
		return strings.Join(parts, "\n")
	}
	return ""
}
