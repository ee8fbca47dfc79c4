// Package embedding provides text embedding via ONNX with a deterministic fallback.
package embedding

import (
	"context"
	"math"
)

// Embedder produces unit-length vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
	Close() error
}

// NormalizeL2 normalizes the slice in place to unit L2 norm. A zero vector is
// left unchanged; its inner product with anything is 0, which falls below any
// sensible similarity floor.
func NormalizeL2(x []float32) {
	var sum float32
	for _, v := range x {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := float32(1.0 / math.Sqrt(float64(sum)))
	for i := range x {
		x[i] *= norm
	}
}
