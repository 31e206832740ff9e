package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/llm/mock"
	"cooking-assistant-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var curry = store.Recipe{
	ID:           "11",
	Title:        "Chicken Curry",
	Ingredients:  []string{"chicken", "curry paste"},
	Instructions: []string{"1. Cook chicken", "2. Add paste"},
}

func TestModifier_Success(t *testing.T) {
	reply := "```json\n" + `{"title":"Vegan Curry","ingredients":["tofu","curry paste"],"instructions":["1. Cook tofu","2. Add paste"],"notes":"swapped chicken for tofu"}` + "\n```"
	provider := mock.NewProvider(mock.Reply{Content: reply})
	m := NewModifier(provider, logger.NewNopLogger())

	got, mErr := m.Modify(context.Background(), curry, "vegan")

	require.Nil(t, mErr)
	assert.Equal(t, "Vegan Curry", got.Title)
	assert.Equal(t, []string{"tofu", "curry paste"}, got.Ingredients)
	assert.Equal(t, "11", got.ID)

	calls := provider.Calls()
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].Messages[1].Content, "Modify this recipe to be vegan.")
}

func TestModifier_RejectsNoOp(t *testing.T) {
	reply := `{"title":"Chicken Curry","ingredients":["chicken","curry paste"],"instructions":["1. Cook chicken","2. Add paste"],"notes":"no change needed"}`
	m := NewModifier(mock.NewProvider(mock.Reply{Content: reply}), logger.NewNopLogger())

	_, mErr := m.Modify(context.Background(), curry, "spicier")

	require.NotNil(t, mErr)
	assert.Equal(t, "Couldn't modify recipe: Recipe was not actually modified", mErr.Message)
	require.NotNil(t, mErr.RawResponse)
	assert.Equal(t, reply, *mErr.RawResponse)
}

func TestModifier_TruncatesRawResponse(t *testing.T) {
	reply := strings.Repeat("x", 800)
	m := NewModifier(mock.NewProvider(mock.Reply{Content: reply}), logger.NewNopLogger())

	_, mErr := m.Modify(context.Background(), curry, "quicker")

	require.NotNil(t, mErr)
	require.NotNil(t, mErr.RawResponse)
	assert.Len(t, *mErr.RawResponse, 500)
}

func TestModifier_ServiceFailureHasNoRawResponse(t *testing.T) {
	m := NewModifier(mock.Failing(errors.New("API request failed: timeout")), logger.NewNopLogger())

	_, mErr := m.Modify(context.Background(), curry, "vegan")

	require.NotNil(t, mErr)
	assert.Equal(t, "Couldn't modify recipe: API request failed: timeout", mErr.Error())
	assert.Nil(t, mErr.RawResponse)
}
