package precedent

import (
	"context"
	"fmt"
	"math"

	"github.com/hyperjump/keiyaku/internal/embedding"
	"github.com/hyperjump/keiyaku/internal/models"
	"github.com/hyperjump/keiyaku/internal/vector"
)

// DefaultSimilarityFloor is the minimum cosine similarity for a retrieved
// precedent to be considered legally meaningful.
const DefaultSimilarityFloor = 0.45

// DefaultTopK is the default number of precedents retrieved per clause.
const DefaultTopK = 2

// groupKey identifies one similarity index.
type groupKey struct {
	contractType string
	category     models.Category
}

// group owns a vector index and the parallel ordered list of source texts.
type group struct {
	index vector.Index
	texts []string
}

// Store groups the precedent corpus by (contract type, category) and serves
// nearest-precedent lookups. It is built once, eagerly, before any retrieval is
// served and is never mutated afterwards, so concurrent reads need no locking.
type Store struct {
	embedder  embedding.Embedder
	groups    map[groupKey]*group
	floor     float64
	indexType string
}

// NewStore embeds every corpus entry and builds one index per non-empty
// (contract type, category) group. Groups with zero precedents are simply
// absent from the map.
func NewStore(ctx context.Context, embedder embedding.Embedder, corpus []Entry, indexType string) (*Store, error) {
	if indexType == "" {
		indexType = string(vector.IndexTypeMemory)
	}
	grouped := make(map[groupKey][]string)
	var order []groupKey
	for _, e := range corpus {
		key := groupKey{e.ContractType, e.Category}
		if _, seen := grouped[key]; !seen {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], e.Text)
	}

	groups := make(map[groupKey]*group, len(grouped))
	for _, key := range order {
		texts := grouped[key]
		vectors, err := embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed corpus group %s/%s: %w", key.contractType, key.category, err)
		}
		for _, v := range vectors {
			embedding.NormalizeL2(v)
		}
		idx, err := vector.NewIndex(indexType, embedder.Dimensions())
		if err != nil {
			return nil, fmt.Errorf("create index for %s/%s: %w", key.contractType, key.category, err)
		}
		if err := idx.Add(ctx, vectors); err != nil {
			return nil, fmt.Errorf("index corpus group %s/%s: %w", key.contractType, key.category, err)
		}
		groups[key] = &group{index: idx, texts: texts}
	}

	return &Store{
		embedder:  embedder,
		groups:    groups,
		floor:     DefaultSimilarityFloor,
		indexType: indexType,
	}, nil
}

// Retrieve embeds queryText and returns up to min(topK, group size) precedents
// from the (contractType, category) group, descending by similarity, dropping
// any candidate below the similarity floor. An empty query or an unknown group
// returns no matches, never an error.
func (s *Store) Retrieve(ctx context.Context, queryText, contractType string, category models.Category, topK int) ([]models.SimilarityMatch, error) {
	if queryText == "" {
		return nil, nil
	}
	g, ok := s.groups[groupKey{contractType, category}]
	if !ok {
		return nil, nil
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	query, err := s.embedder.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	embedding.NormalizeL2(query)

	k := topK
	if n := len(g.texts); k > n {
		k = n
	}
	results, err := g.index.Search(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("search %s/%s: %w", contractType, category, err)
	}

	matches := make([]models.SimilarityMatch, 0, len(results))
	for _, r := range results {
		if r.Score < s.floor {
			continue
		}
		matches = append(matches, models.SimilarityMatch{
			Text:  g.texts[r.Pos],
			Score: roundScore(r.Score),
		})
	}
	return matches, nil
}

// Dimensions returns the embedding dimensionality of the indexed vectors.
func (s *Store) Dimensions() int {
	return s.embedder.Dimensions()
}

// IndexType returns the resolved vector index type ("memory" or "faiss").
func (s *Store) IndexType() string {
	return s.indexType
}

// GroupCount returns the number of built index groups.
func (s *Store) GroupCount() int {
	return len(s.groups)
}

// GroupSize returns the number of precedents in a group, 0 when absent.
func (s *Store) GroupSize(contractType string, category models.Category) int {
	g, ok := s.groups[groupKey{contractType, category}]
	if !ok {
		return 0
	}
	return len(g.texts)
}

// VectorCount returns the total number of indexed vectors across groups.
func (s *Store) VectorCount() int {
	total := 0
	for _, g := range s.groups {
		total += g.index.Size()
	}
	return total
}

// Close releases every group's index.
func (s *Store) Close() error {
	var firstErr error
	for _, g := range s.groups {
		if err := g.index.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// roundScore rounds a similarity score to 4 decimals.
func roundScore(s float64) float64 {
	return math.Round(s*10000) / 10000
}
