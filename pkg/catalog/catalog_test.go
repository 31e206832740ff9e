package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.json")
	data := `[
		{"id": 11, "title": "Chicken Rice", "ingredients": "chicken\nrice", "instructions": "1. Cook rice\n2. Add chicken", "minutes": "35"},
		{"title": "Tomato Soup", "ingredients": ["tomato", "salt"], "instructions": ["Simmer"], "notes": ["serve hot", "add basil"]}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	first, ok := c.Get(0)
	require.True(t, ok)
	assert.Equal(t, "11", first.ID)
	assert.Equal(t, []string{"chicken\nrice"}, first.Ingredients)
	require.NotNil(t, first.Minutes)
	assert.Equal(t, 35.0, *first.Minutes)

	second, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "serve hot\nadd basil", second.Notes)

	_, ok = c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(-1)
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "read recipe metadata")

	_, err = Parse([]byte(`{"title": "not an array"}`))
	assert.ErrorContains(t, err, "decode recipe metadata")
}
