package llm

import (
	"context"
	"time"

	"cooking-assistant-be/internal/pkg/logger"
)

// TracedProvider logs every exchange with the wrapped provider.
type TracedProvider struct {
	next   LLMProvider
	logger logger.ILogger
}

func NewTracedProvider(next LLMProvider, log logger.ILogger) *TracedProvider {
	return &TracedProvider{next: next, logger: log}
}

func (p *TracedProvider) Chat(ctx context.Context, history []Message, options ...Option) (string, error) {
	start := time.Now()
	reply, err := p.next.Chat(ctx, history, options...)

	details := map[string]interface{}{
		"messages":    history,
		"json_mode":   Apply(Options{}, options...).JSONMode,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		details["error"] = err.Error()
		p.logger.Warn("LLM", "Chat failed", details)
		return reply, err
	}
	details["reply"] = reply
	p.logger.Debug("LLM", "Chat completed", details)
	return reply, nil
}

func (p *TracedProvider) Generate(ctx context.Context, prompt string, options ...Option) (string, error) {
	return p.Chat(ctx, []Message{{Role: RoleUser, Content: prompt}}, options...)
}
