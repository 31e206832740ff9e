package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"numbered with newlines", "1. Boil water\n2. Add rice", []string{"1. Boil water", "2. Add rice"}},
		{"inline numbering", "1. Chop onions 2. Fry them 3. Serve", []string{"1. Chop onions", "2. Fry them", "3. Serve"}},
		{"plain lines", "Mix\n\nBake\n", []string{"1. Mix", "2. Bake"}},
		{"empty", "   ", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSteps(tt.text))
		})
	}
}

func TestNormalizeSteps(t *testing.T) {
	assert.Equal(t,
		[]string{"1. Boil water", "2. Add rice"},
		NormalizeSteps([]string{"Boil water", "2) Add rice"}))

	assert.Equal(t,
		[]string{"1. Preheat oven to 350F", "2. Bake"},
		NormalizeSteps([]string{"3. Preheat oven to 350F", " ", "Bake"}))

	assert.Equal(t, []string{}, NormalizeSteps(nil))
}

func TestSplitIngredients(t *testing.T) {
	assert.Equal(t,
		[]string{"2 cups rice", "1 egg", "salt"},
		SplitIngredients([]string{"2 cups rice\n 1 egg \n\n", "salt"}))
}
