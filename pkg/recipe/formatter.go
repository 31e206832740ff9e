package recipe

import (
	"context"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/llm"
	"cooking-assistant-be/pkg/store"
)

// Formatter canonicalizes recipes. It asks the language model first and
// falls back to the local transform, so it never fails.
type Formatter struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewFormatter(llmProvider llm.LLMProvider, log logger.ILogger) *Formatter {
	return &Formatter{
		llmProvider: llmProvider,
		logger:      log,
	}
}

// Format returns the canonical recipe and whether the model produced it.
func (f *Formatter) Format(ctx context.Context, raw store.Recipe) (store.Recipe, bool) {
	formatted, err := f.formatWithModel(ctx, raw)
	if err != nil {
		f.logger.Warn("Formatter", "Recipe formatting error, using local transform", map[string]interface{}{
			"title": raw.Title,
			"error": err.Error(),
		})
		return Normalize(raw), false
	}
	return Normalize(formatted), true
}

func (f *Formatter) formatWithModel(ctx context.Context, raw store.Recipe) (store.Recipe, error) {
	prompt, err := formatPrompt(raw)
	if err != nil {
		return store.Recipe{}, err
	}

	reply, err := f.llmProvider.Chat(ctx, chefMessages(prompt), llm.WithJSONMode())
	if err != nil {
		return store.Recipe{}, err
	}

	formatted, err := decodeReply(reply)
	if err != nil {
		return store.Recipe{}, err
	}

	if formatted.ID == "" {
		formatted.ID = raw.ID
	}
	return formatted, nil
}
