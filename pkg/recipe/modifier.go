package recipe

import (
	"context"
	"errors"
	"fmt"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/llm"
	"cooking-assistant-be/pkg/store"
)

const rawResponseLimit = 500

var errNotModified = errors.New("Recipe was not actually modified")

// ModificationError is returned to clients as-is, so it carries the
// truncated model reply for diagnostics.
type ModificationError struct {
	Message     string  `json:"error"`
	RawResponse *string `json:"raw_response"`
}

func (e *ModificationError) Error() string {
	return e.Message
}

type Modifier struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewModifier(llmProvider llm.LLMProvider, log logger.ILogger) *Modifier {
	return &Modifier{
		llmProvider: llmProvider,
		logger:      log,
	}
}

// Modify asks the model for a revised recipe. The result is not formatted;
// callers pass it through the Formatter.
func (m *Modifier) Modify(ctx context.Context, original store.Recipe, modification string) (store.Recipe, *ModificationError) {
	prompt, err := modifyPrompt(original, modification)
	if err != nil {
		return store.Recipe{}, m.fail(original, err, nil)
	}

	reply, err := m.llmProvider.Chat(ctx, chefMessages(prompt), llm.WithJSONMode())
	if err != nil {
		return store.Recipe{}, m.fail(original, err, nil)
	}

	modified, err := decodeReply(reply)
	if err != nil {
		return store.Recipe{}, m.fail(original, err, &reply)
	}

	if modified.Core().Equal(original.Core()) {
		return store.Recipe{}, m.fail(original, errNotModified, &reply)
	}

	if modified.ID == "" {
		modified.ID = original.ID
	}
	return modified, nil
}

func (m *Modifier) fail(original store.Recipe, cause error, reply *string) *ModificationError {
	m.logger.Warn("Modifier", "Recipe modification error", map[string]interface{}{
		"title": original.Title,
		"error": cause.Error(),
	})

	out := &ModificationError{Message: fmt.Sprintf("Couldn't modify recipe: %s", cause.Error())}
	if reply != nil {
		raw := *reply
		if runes := []rune(raw); len(runes) > rawResponseLimit {
			raw = string(runes[:rawResponseLimit])
		}
		out.RawResponse = &raw
	}
	return out
}
