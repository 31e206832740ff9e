// Package mock provides a scripted LLMProvider for tests.
package mock

import (
	"context"
	"errors"
	"sync"

	"cooking-assistant-be/pkg/llm"
)

// Reply is one scripted response.
type Reply struct {
	Content string
	Err     error
}

// Provider returns scripted replies in order and records every call.
// Once the script is exhausted it repeats the last reply.
type Provider struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Call
}

type Call struct {
	Messages []llm.Message
	Options  llm.Options
}

var _ llm.LLMProvider = (*Provider)(nil)

func NewProvider(replies ...Reply) *Provider {
	return &Provider{replies: replies}
}

// Failing returns a provider whose every call fails with err.
func Failing(err error) *Provider {
	if err == nil {
		err = errors.New("mock: failure")
	}
	return NewProvider(Reply{Err: err})
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls = append(p.calls, Call{Messages: history, Options: llm.Apply(llm.Options{}, options...)})

	if len(p.replies) == 0 {
		return "", errors.New("mock: no scripted reply")
	}
	idx := len(p.calls) - 1
	if idx >= len(p.replies) {
		idx = len(p.replies) - 1
	}
	r := p.replies[idx]
	return r.Content, r.Err
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func (p *Provider) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Call, len(p.calls))
	copy(out, p.calls)
	return out
}
