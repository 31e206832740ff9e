// Package catalog holds the recipe metadata that parallels the vector index:
// entry i describes the recipe embedded at index position i.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"cooking-assistant-be/pkg/store"
)

type Catalog struct {
	recipes []store.Recipe
}

func New(recipes []store.Recipe) *Catalog {
	return &Catalog{recipes: recipes}
}

// Load reads the metadata file, a JSON array of recipe objects.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read recipe metadata: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var recipes []store.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, fmt.Errorf("decode recipe metadata: %w", err)
	}
	return New(recipes), nil
}

// Get returns the recipe at an index position. Positions outside the
// catalog report false.
func (c *Catalog) Get(position int) (store.Recipe, bool) {
	if position < 0 || position >= len(c.recipes) {
		return store.Recipe{}, false
	}
	return c.recipes[position], true
}

func (c *Catalog) Len() int {
	return len(c.recipes)
}

// All returns the recipes in index order. The slice must not be modified.
func (c *Catalog) All() []store.Recipe {
	return c.recipes
}
