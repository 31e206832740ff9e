package assistant

import (
	"testing"

	"cooking-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	current := &store.Recipe{Title: "Chili"}

	tests := []struct {
		name   string
		req    Request
		action Action
		target int
	}{
		{"fresh search", Request{Query: "  Chicken Rice "}, ActionSearch, 0},
		{"refinement phrase", Request{Query: "make it spicier"}, ActionRefine, 0},
		{"follow-up without selection words", Request{Query: "garlic", IsFollowUp: true}, ActionRefine, 0},
		{"reset", Request{Query: "Start Over please"}, ActionReset, 0},
		{"reset wins over follow-up", Request{Query: "reset", IsFollowUp: true}, ActionReset, 0},
		{"modification wins over reset", Request{Query: "reset the salt", IsModification: true, CurrentRecipe: current}, ActionModify, 0},
		{"modification needs a recipe", Request{Query: "vegan", IsModification: true}, ActionRefine, 0},
		{"empty current recipe counts as absent", Request{Query: "vegan", IsModification: true, CurrentRecipe: &store.Recipe{}}, ActionRefine, 0},
		{"empty current recipe falls through to reset", Request{Query: "start over", IsModification: true, CurrentRecipe: &store.Recipe{Notes: "x"}}, ActionReset, 0},
		{"select second", Request{Query: "choose the second recipe", IsFollowUp: true}, ActionSelect, 1},
		{"select third by digit", Request{Query: "show 3", IsFollowUp: true}, ActionSelect, 2},
		{"select defaults to first", Request{Query: "that recipe", IsFollowUp: true}, ActionSelect, 0},
		{"selection words need follow-up", Request{Query: "first recipe"}, ActionSearch, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.req)
			assert.Equal(t, tt.action, got.Action)
			assert.Equal(t, tt.target, got.Target)
		})
	}
}

func TestClassify_NormalizesQuery(t *testing.T) {
	got := Classify(Request{Query: "  Chicken RICE\n"})
	assert.Equal(t, "chicken rice", got.Query)
}

func TestSelectionIndex(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"first", 0},
		{"1", 0},
		{"the second one", 1},
		{"number 2", 1},
		{"third", 2},
		{"recipe 3", 2},
		{"1 or 2", 0},
		{"second or first", 0},
		{"recipe", 0},
		{"12", 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectionIndex(tt.query))
		})
	}
}
