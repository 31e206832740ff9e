package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	geminiModel   = "gemini-embedding-001"
)

// GeminiProvider calls embedContent with outputDimensionality set to the
// recipe index dimension. Truncated Gemini vectors are not unit length, so
// they are normalized here.
type GeminiProvider struct {
	ApiKey     string
	BaseURL    string
	Model      string
	Dimensions int
	Client     *http.Client
}

func NewGeminiProvider(apiKey string, dimensions int) EmbeddingProvider {
	return &GeminiProvider{
		ApiKey:     apiKey,
		BaseURL:    geminiBaseURL,
		Model:      geminiModel,
		Dimensions: dimensions,
		Client:     &http.Client{Timeout: 30 * time.Second},
	}
}

type geminiRequestPart struct {
	Text string `json:"text"`
}

type geminiRequestContent struct {
	Parts []geminiRequestPart `json:"parts"`
}

type geminiRequest struct {
	Model                string               `json:"model"`
	Content              geminiRequestContent `json:"content"`
	TaskType             string               `json:"taskType,omitempty"`
	OutputDimensionality int                  `json:"outputDimensionality,omitempty"`
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) (*EmbeddingResponse, error) {
	if p.ApiKey == "" {
		return nil, fmt.Errorf("GOOGLE_GEMINI_API_KEY is not set")
	}

	payload, err := json.Marshal(geminiRequest{
		Model:                "models/" + p.Model,
		Content:              geminiRequestContent{Parts: []geminiRequestPart{{Text: text}}},
		TaskType:             taskType,
		OutputDimensionality: p.Dimensions,
	})
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/models/%s:embedContent", p.BaseURL, p.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(body))
	}

	var out EmbeddingResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	values := out.Embedding.Values
	if p.Dimensions > 0 && len(values) != p.Dimensions {
		return nil, fmt.Errorf("gemini returned %d dimensions, want %d", len(values), p.Dimensions)
	}

	out.Embedding.Values = normalizeVector(values)
	return &out, nil
}
