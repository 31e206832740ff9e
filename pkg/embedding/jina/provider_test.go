package jina

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"cooking-assistant-be/pkg/embedding"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJinaProvider_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body embeddingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"tomato soup"}, body.Input)
		assert.Equal(t, "retrieval.query", body.Task)
		assert.Equal(t, 2, body.Dimensions)
		assert.True(t, body.Normalized)

		_, _ = w.Write([]byte(`{"data":[{"index":0,"embedding":[0.6,0.8]}]}`))
	}))
	defer srv.Close()

	p := NewJinaProvider("key", srv.URL, 2)
	res, err := p.Generate(context.Background(), "tomato soup", embedding.TaskRetrievalQuery)

	require.NoError(t, err)
	assert.Equal(t, []float32{0.6, 0.8}, res.Embedding.Values)
}

func TestJinaProvider_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error", http.StatusUnauthorized, `{"detail":"bad key"}`, "status 401"},
		{"empty data", http.StatusOK, `{"data":[]}`, "empty embeddings"},
		{"wrong dimension", http.StatusOK, `{"data":[{"index":0,"embedding":[1,0,0]}]}`, "3 dimensions, want 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewJinaProvider("key", srv.URL, 2).Generate(context.Background(), "x", "")
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestJinaProvider_MissingKey(t *testing.T) {
	_, err := NewJinaProvider("", "http://unused", 2).Generate(context.Background(), "x", "")
	assert.ErrorContains(t, err, "JINA_API_KEY")
}
