package recipe

import (
	"context"
	"errors"
	"testing"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/apperr"
	"cooking-assistant-be/pkg/llm"
	"cooking-assistant-be/pkg/llm/mock"
	"cooking-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_FallbackOnServiceFailure(t *testing.T) {
	provider := mock.Failing(apperr.ExternalService("API request failed", errors.New("timeout")))
	f := NewFormatter(provider, logger.NewNopLogger())

	minutes := 25.0
	raw := store.Recipe{
		ID:           "9",
		Title:        "Plain Rice",
		Ingredients:  []string{"1 cup rice\n2 cups water"},
		Instructions: []string{"1. Boil water\n2. Add rice"},
		Minutes:      &minutes,
		Notes:        "fluffy",
	}

	got, ok := f.Format(context.Background(), raw)

	assert.False(t, ok)
	assert.Equal(t, []string{"1. Boil water", "2. Add rice"}, got.Instructions)
	assert.Equal(t, []string{"1 cup rice", "2 cups water"}, got.Ingredients)
	assert.Equal(t, &minutes, got.Minutes)
	assert.Equal(t, "fluffy", got.Notes)
	assert.Equal(t, "9", got.ID)
}

func TestFormatter_ModelPath(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"bare json", `{"title":"Rice","ingredients":["rice"],"instructions":["Boil","Serve"],"minutes":10}`},
		{"json fence", "```json\n{\"title\":\"Rice\",\"ingredients\":[\"rice\"],\"instructions\":\"1. Boil\\n2. Serve\",\"minutes\":\"10\"}\n```"},
		{"plain fence", "```\n{\"title\":\"Rice\",\"ingredients\":\"rice\",\"instructions\":[\"1. Boil\",\"2. Serve\"],\"minutes\":10}\n```"},
		{"surrounding prose", "Here you go: {\"title\":\"Rice\",\"ingredients\":[\"rice\"],\"instructions\":[\"Boil\",\"Serve\"],\"minutes\":10} Enjoy!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := mock.NewProvider(mock.Reply{Content: tt.reply})
			f := NewFormatter(provider, logger.NewNopLogger())

			got, ok := f.Format(context.Background(), store.Recipe{ID: "3", Title: "rice thing"})

			require.True(t, ok)
			assert.Equal(t, "Rice", got.Title)
			assert.Equal(t, []string{"rice"}, got.Ingredients)
			assert.Equal(t, []string{"1. Boil", "2. Serve"}, got.Instructions)
			require.NotNil(t, got.Minutes)
			assert.Equal(t, 10.0, *got.Minutes)
			assert.Equal(t, "3", got.ID, "id carried over from the raw recipe")
		})
	}
}

func TestFormatter_RequestShape(t *testing.T) {
	provider := mock.NewProvider(mock.Reply{Content: `{"title":"A","ingredients":[],"instructions":[]}`})
	f := NewFormatter(provider, logger.NewNopLogger())

	f.Format(context.Background(), store.Recipe{Title: "Pancakes"})

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.True(t, calls[0].Options.JSONMode)
	require.Len(t, calls[0].Messages, 2)
	assert.Equal(t, llm.RoleSystem, calls[0].Messages[0].Role)
	assert.Contains(t, calls[0].Messages[1].Content, `"title": "Pancakes"`)
}

func TestFormatter_FallbackOnInvalidReply(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"not json", "I cannot help with that"},
		{"missing keys", `{"title":"Rice"}`},
		{"broken json", `{"title": "Rice", "ingredients": [}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFormatter(mock.NewProvider(mock.Reply{Content: tt.reply}), logger.NewNopLogger())

			got, ok := f.Format(context.Background(), store.Recipe{
				Title:        "Rice",
				Instructions: []string{"Boil\nServe"},
			})

			assert.False(t, ok)
			assert.Equal(t, []string{"1. Boil", "2. Serve"}, got.Instructions)
			assert.Equal(t, []string{}, got.Ingredients)
		})
	}
}
