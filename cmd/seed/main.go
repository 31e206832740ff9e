package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"cooking-assistant-be/internal/bootstrap"
	"cooking-assistant-be/internal/config"
	"cooking-assistant-be/internal/model"
	"cooking-assistant-be/internal/pkg/logger"
	"cooking-assistant-be/internal/repository/contract"
	"cooking-assistant-be/internal/repository/implementation"
	"cooking-assistant-be/pkg/catalog"
	"cooking-assistant-be/pkg/database"
	"cooking-assistant-be/pkg/embedding"
	"cooking-assistant-be/pkg/recipe"
	"cooking-assistant-be/pkg/store"

	"github.com/fatih/color"
	"github.com/pgvector/pgvector-go"
)

const batchSize = 100

// Fills recipe_embeddings from the metadata file so VECTOR_BACKEND=pgvector
// serves the same catalog positions as the flat index.
func main() {
	reset := flag.Bool("reset", false, "delete existing embeddings first")
	limit := flag.Int("limit", 0, "embed at most N recipes (0 = all)")
	flag.Parse()

	cfg := config.Load()
	if cfg.Database.Connection == "" {
		color.Red("DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	recipes, err := catalog.Load(cfg.Data.MetadataPath)
	if err != nil {
		color.Red("Failed to load catalog: %v", err)
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	repo := implementation.NewRecipeEmbeddingRepository(db, cfg.Ai.EmbeddingDimension)
	provider := bootstrap.NewEmbeddingProvider(cfg, logger.NewNopLogger())

	if *reset {
		color.Yellow("Deleting existing embeddings...")
		if err := repo.DeleteAll(ctx); err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
	}

	total := recipes.Len()
	if *limit > 0 && *limit < total {
		total = *limit
	}
	color.Cyan("Seeding %d recipes with %s embeddings", total, cfg.Ai.EmbeddingProvider)

	var batch []*model.RecipeEmbedding
	failed := 0
	for pos := 0; pos < total; pos++ {
		r, _ := recipes.Get(pos)
		normalized := recipe.Normalize(r)

		res, err := provider.Generate(ctx, document(normalized), embedding.TaskRetrievalDocument)
		if err != nil {
			failed++
			color.Red("  [%d] %s: %v", pos, r.Title, err)
			continue
		}

		batch = append(batch, &model.RecipeEmbedding{
			Position:       pos,
			Title:          normalized.Title,
			Ingredients:    normalized.Ingredients,
			Instructions:   normalized.Instructions,
			EmbeddingValue: pgvector.NewVector(res.Embedding.Values),
		})

		if len(batch) == batchSize {
			flush(ctx, repo, batch)
			batch = nil
			fmt.Printf("  %d/%d\n", pos+1, total)
		}
	}
	flush(ctx, repo, batch)

	count, _ := repo.Count(ctx)
	if failed > 0 {
		color.Yellow("Done with %d failures, %d rows stored", failed, count)
		return
	}
	color.Green("Done, %d rows stored", count)
}

func flush(ctx context.Context, repo contract.RecipeEmbeddingRepository, batch []*model.RecipeEmbedding) {
	if err := repo.CreateBulk(ctx, batch); err != nil {
		color.Red("Failed to store batch: %v", err)
		os.Exit(1)
	}
}

// document is the text embedded for a recipe.
func document(r store.Recipe) string {
	var sb strings.Builder
	sb.WriteString(r.Title)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(r.Ingredients, "\n"))
	sb.WriteString("\n")
	sb.WriteString(strings.Join(r.Instructions, "\n"))
	return sb.String()
}
