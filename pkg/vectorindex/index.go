// Package vectorindex provides nearest-neighbour lookup over the precomputed
// recipe embeddings. Positions returned by an Index are offsets into the
// recipe catalog, which is stored in the same order as the index.
package vectorindex

import "context"

// Hit is one search result. Lower Distance is closer for L2 indexes;
// for inner-product indexes Distance holds the (higher-is-closer) score.
type Hit struct {
	Position int
	Distance float32
}

type Index interface {
	Search(ctx context.Context, vector []float32, k int) ([]Hit, error)
	Dimension() int
}
