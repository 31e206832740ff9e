package implementation

import (
	"context"
	"log"
	"os"
	"testing"

	"cooking-assistant-be/internal/model"
	"cooking-assistant-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/pgvector/pgvector-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a live pgvector database. Skipped unless
// DB_CONNECTION_STRING is set.
func TestRecipeEmbeddingRepository_Postgres(t *testing.T) {
	if err := godotenv.Load("../../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error)
	require.NoError(t, db.AutoMigrate(&model.RecipeEmbedding{}))

	ctx := context.Background()
	repo := NewRecipeEmbeddingRepository(db, 384)
	require.NoError(t, repo.DeleteAll(ctx))

	unit := func(axis int) pgvector.Vector {
		v := make([]float32, 384)
		v[axis] = 1
		return pgvector.NewVector(v)
	}
	rows := []*model.RecipeEmbedding{
		{Position: 0, Title: "Pancakes", Ingredients: []string{"flour"}, EmbeddingValue: unit(0)},
		{Position: 1, Title: "Omelette", Ingredients: []string{"eggs"}, EmbeddingValue: unit(1)},
		{Position: 2, Title: "Soup", Ingredients: []string{"leek"}, EmbeddingValue: unit(2)},
	}
	require.NoError(t, repo.CreateBulk(ctx, rows))

	t.Run("Count", func(t *testing.T) {
		count, err := repo.Count(ctx)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("Search orders by L2 distance", func(t *testing.T) {
		hits, err := repo.Search(ctx, unit(1).Slice(), 2)
		require.NoError(t, err)
		require.Len(t, hits, 2)
		assert.Equal(t, 1, hits[0].Position)
		assert.InDelta(t, 0, hits[0].Distance, 1e-6)
	})

	require.NoError(t, repo.DeleteAll(ctx))
}
