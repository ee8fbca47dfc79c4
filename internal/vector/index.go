// Package vector provides inner-product similarity indexes over normalized vectors.
package vector

import "context"

// Index stores normalized vectors and searches them by inner product, which for
// unit vectors equals cosine similarity. Vectors are addressed by insertion
// position, matching the parallel text list kept by the caller. Indexes are
// built once before serving and never mutated afterwards.
type Index interface {
	Add(ctx context.Context, vectors [][]float32) error
	Search(ctx context.Context, query []float32, k int) ([]Result, error)
	Size() int
	Close() error
}

// Result is a single search hit. Pos is the vector's insertion position.
type Result struct {
	Pos   int
	Score float64
}
