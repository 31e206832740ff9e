package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cooking-assistant-be/pkg/apperr"
	"cooking-assistant-be/pkg/llm"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "mistralai/mistral-7b-instruct"
	DefaultTimeout = 30 * time.Second

	appTitle = "Cooking Assistant"
)

// Provider talks to the OpenRouter chat-completions endpoint (OpenAI compatible).
// One attempt per call, no retries.
type Provider struct {
	apiKey   string
	baseURL  string
	referer  string
	defaults llm.Options
	client   *http.Client
}

// Ensure Provider implements LLMProvider
var _ llm.LLMProvider = (*Provider)(nil)

type Config struct {
	APIKey      string
	BaseURL     string
	Referer     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func NewProvider(cfg Config) *Provider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Referer == "" {
		cfg.Referer = "http://localhost:8000"
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Provider{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		referer: cfg.Referer,
		defaults: llm.Options{
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		},
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []llm.Message   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *Provider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	if p.apiKey == "" {
		return "", apperr.Configuration("OpenRouter API key not configured")
	}

	opts := llm.Apply(p.defaults, options...)

	reqBody := chatRequest{
		Model:       opts.Model,
		Messages:    history,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if opts.JSONMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := p.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("HTTP-Referer", p.referer)
	req.Header.Set("X-Title", appTitle)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", apperr.ExternalService("API request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.ExternalService("API request failed", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperr.ExternalService("API request failed",
			fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(bodyBytes), 200)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", apperr.ExternalService("API request failed", fmt.Errorf("decode response: %w", err))
	}
	if chatResp.Error != nil {
		return "", apperr.ExternalService("API request failed", fmt.Errorf("openrouter: %s", chatResp.Error.Message))
	}
	if len(chatResp.Choices) == 0 {
		return "", apperr.ExternalService("API request failed", fmt.Errorf("empty choices"))
	}

	content := chatResp.Choices[0].Message.Content
	if opts.JSONMode && !strings.HasPrefix(strings.TrimSpace(content), "{") {
		return "", fmt.Errorf("response is not in JSON format")
	}
	return content, nil
}

func (p *Provider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
