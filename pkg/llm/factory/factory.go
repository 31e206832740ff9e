package factory

import (
	"fmt"
	"time"

	"cooking-assistant-be/pkg/llm"
	"cooking-assistant-be/pkg/llm/ollama"
	"cooking-assistant-be/pkg/llm/openrouter"
)

type Config struct {
	Provider    string // "openrouter" | "ollama"
	Model       string
	BaseURL     string
	APIKey      string
	Referer     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "openrouter", "":
		return openrouter.NewProvider(openrouter.Config{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Referer:     cfg.Referer,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
			Timeout:     cfg.Timeout,
		}), nil
	case "ollama":
		return ollama.NewOllamaProvider(cfg.BaseURL, cfg.Model, cfg.Temperature, cfg.MaxTokens, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
