package implementation

import (
	"context"
	"fmt"

	"cooking-assistant-be/internal/model"
	"cooking-assistant-be/internal/repository/contract"
	"cooking-assistant-be/pkg/vectorindex"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const bulkBatchSize = 200

type RecipeEmbeddingRepositoryImpl struct {
	db        *gorm.DB
	dimension int
}

func NewRecipeEmbeddingRepository(db *gorm.DB, dimension int) contract.RecipeEmbeddingRepository {
	return &RecipeEmbeddingRepositoryImpl{
		db:        db,
		dimension: dimension,
	}
}

func (r *RecipeEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*model.RecipeEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(embeddings, bulkBatchSize).Error
}

func (r *RecipeEmbeddingRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.RecipeEmbedding{}).Error
}

func (r *RecipeEmbeddingRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.RecipeEmbedding{}).Count(&count).Error
	return count, err
}

func (r *RecipeEmbeddingRepositoryImpl) Dimension() int {
	return r.dimension
}

// Search orders by pgvector L2 distance (<->), matching the flat index file.
func (r *RecipeEmbeddingRepositoryImpl) Search(ctx context.Context, vector []float32, k int) ([]vectorindex.Hit, error) {
	if len(vector) != r.dimension {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(vector), r.dimension)
	}
	if k <= 0 {
		k = 5
	}

	type result struct {
		Position int
		Distance float32
	}
	var results []result

	queryVector := pgvector.NewVector(vector)
	err := r.db.WithContext(ctx).
		Model(&model.RecipeEmbedding{}).
		Select("position, embedding_value <-> ? AS distance", queryVector).
		Order("distance ASC").
		Limit(k).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	hits := make([]vectorindex.Hit, len(results))
	for i, res := range results {
		hits[i] = vectorindex.Hit{Position: res.Position, Distance: res.Distance}
	}
	return hits, nil
}
