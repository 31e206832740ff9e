package search

import (
	"context"
	"errors"
	"testing"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/catalog"
	"cooking-assistant-be/pkg/embedding"
	"cooking-assistant-be/pkg/store"
	"cooking-assistant-be/pkg/vectorindex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	texts []string
	err   error
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{1, 0}},
	}, nil
}

type fakeIndex struct {
	hits []vectorindex.Hit
	k    int
}

func (f *fakeIndex) Search(ctx context.Context, vector []float32, k int) ([]vectorindex.Hit, error) {
	f.k = k
	return f.hits, nil
}

func (f *fakeIndex) Dimension() int { return 2 }

type upperFormatter struct{}

func (upperFormatter) Format(ctx context.Context, raw store.Recipe) (store.Recipe, bool) {
	raw.Notes = "formatted"
	return raw, false
}

func TestSearcher_Search(t *testing.T) {
	cat := catalog.New([]store.Recipe{
		{Title: "Chicken Rice"},
		{Title: "Tomato Soup"},
		{Title: "Fried Rice"},
	})
	idx := &fakeIndex{hits: []vectorindex.Hit{
		{Position: 2}, {Position: 7}, {Position: 0},
	}}
	emb := &fakeEmbedder{}

	s := NewSearcher(emb, idx, cat, upperFormatter{}, logger.NewNopLogger(), DefaultConfig())
	got, err := s.Search(context.Background(), "chicken rice")
	require.NoError(t, err)

	assert.Equal(t, []string{"chicken rice"}, emb.texts)
	assert.Equal(t, DefaultTopK, idx.k)
	require.Len(t, got, 2, "positions outside the catalog are skipped")
	assert.Equal(t, "Fried Rice", got[0].Title)
	assert.Equal(t, "Chicken Rice", got[1].Title)
	assert.Equal(t, "formatted", got[0].Notes)
}

func TestSearcher_WithFlatIndex(t *testing.T) {
	idx, err := vectorindex.NewFlatIndex(2, vectorindex.MetricL2, []float32{
		0, 1,
		1, 0,
	})
	require.NoError(t, err)
	cat := catalog.New([]store.Recipe{{Title: "Far"}, {Title: "Near"}})

	s := NewSearcher(&fakeEmbedder{}, idx, cat, upperFormatter{}, logger.NewNopLogger(), Config{TopK: 1})
	got, err := s.Search(context.Background(), "anything")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Near", got[0].Title)
}

func TestSearcher_EmbeddingFailure(t *testing.T) {
	s := NewSearcher(&fakeEmbedder{err: errors.New("connection refused")}, &fakeIndex{}, catalog.New(nil), upperFormatter{}, logger.NewNopLogger(), DefaultConfig())

	_, err := s.Search(context.Background(), "soup")
	assert.ErrorContains(t, err, "embedding generation failed: connection refused")
}
