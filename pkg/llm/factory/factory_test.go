package factory

import (
	"testing"

	"cooking-assistant-be/pkg/llm/ollama"
	"cooking-assistant-be/pkg/llm/openrouter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "openrouter", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &openrouter.Provider{}, p)

	p, err = NewLLMProvider(Config{Provider: "ollama", Model: "llama3"})
	require.NoError(t, err)
	assert.IsType(t, &ollama.OllamaProvider{}, p)

	_, err = NewLLMProvider(Config{Provider: "gpt-local"})
	assert.EqualError(t, err, "unsupported LLM provider: gpt-local")
}
