package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

// RecipeEmbedding is one catalog entry with its vector. Position matches
// the entry's offset in the recipe metadata file.
type RecipeEmbedding struct {
	Position       int                         `gorm:"primaryKey;autoIncrement:false"`
	Title          string                      `gorm:"type:text;not null"`
	Ingredients    datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	Instructions   datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	EmbeddingValue pgvector.Vector             `gorm:"type:vector(384)"` // all-MiniLM-L6-v2
	CreatedAt      time.Time                   `gorm:"autoCreateTime"`
}

func (RecipeEmbedding) TableName() string {
	return "recipe_embeddings"
}
