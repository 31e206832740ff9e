package contract

import (
	"context"

	"cooking-assistant-be/internal/model"
	"cooking-assistant-be/pkg/vectorindex"
)

// RecipeEmbeddingRepository is the Postgres-backed recipe vector index.
type RecipeEmbeddingRepository interface {
	vectorindex.Index
	CreateBulk(ctx context.Context, embeddings []*model.RecipeEmbedding) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
