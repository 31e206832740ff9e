package search

import (
	"context"

	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/pkg/embedding"
	"cooking-assistant-be/pkg/store"
	"cooking-assistant-be/pkg/vectorindex"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTopK        = 5
	defaultConcurrency = 4
)

// RecipeSource resolves index positions to recipe metadata.
type RecipeSource interface {
	Get(position int) (store.Recipe, bool)
}

type RecipeFormatter interface {
	Format(ctx context.Context, raw store.Recipe) (store.Recipe, bool)
}

// Config encapsulates search parameters
type Config struct {
	TopK        int
	Concurrency int
}

func DefaultConfig() Config {
	return Config{
		TopK:        DefaultTopK,
		Concurrency: defaultConcurrency,
	}
}

// Searcher runs the semantic retrieval path: embed, look up the nearest
// recipes and format each hit.
type Searcher struct {
	embeddingProvider embedding.EmbeddingProvider
	index             vectorindex.Index
	recipes           RecipeSource
	formatter         RecipeFormatter
	logger            logger.ILogger
	config            Config
}

func NewSearcher(
	embeddingProvider embedding.EmbeddingProvider,
	index vectorindex.Index,
	recipes RecipeSource,
	formatter RecipeFormatter,
	log logger.ILogger,
	config Config,
) *Searcher {
	if config.TopK <= 0 {
		config.TopK = DefaultTopK
	}
	if config.Concurrency <= 0 {
		config.Concurrency = defaultConcurrency
	}
	return &Searcher{
		embeddingProvider: embeddingProvider,
		index:             index,
		recipes:           recipes,
		formatter:         formatter,
		logger:            log,
		config:            config,
	}
}

// Search returns up to TopK formatted recipes in relevance order.
func (s *Searcher) Search(ctx context.Context, query string) ([]store.Recipe, error) {
	embeddingRes, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, errors.Wrap(err, "embedding generation failed")
	}

	hits, err := s.index.Search(ctx, embeddingRes.Embedding.Values, s.config.TopK)
	if err != nil {
		return nil, errors.Wrap(err, "vector search failed")
	}

	var raw []store.Recipe
	for _, hit := range hits {
		r, ok := s.recipes.Get(hit.Position)
		if !ok {
			s.logger.Warn("Searcher", "Index position outside catalog", map[string]interface{}{
				"position": hit.Position,
			})
			continue
		}
		raw = append(raw, r)
	}

	s.logger.Debug("Searcher", "Search candidates", map[string]interface{}{
		"query": query,
		"hits":  len(hits),
		"kept":  len(raw),
	})

	results := make([]store.Recipe, len(raw))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)
	for i, r := range raw {
		g.Go(func() error {
			results[i], _ = s.formatter.Format(gctx, r)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
