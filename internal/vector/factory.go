package vector

import "fmt"

// IndexType selects the index implementation.
type IndexType string

const (
	// IndexTypeMemory uses in-memory brute-force search. The default; the
	// precedent corpus is far below the scale where this matters.
	IndexTypeMemory IndexType = "memory"
	// IndexTypeFAISS uses FAISS IndexFlatIP. Requires the FAISS library and
	// building with -tags=faiss.
	IndexTypeFAISS IndexType = "faiss"
)

// NewIndex creates an index of the specified type ("memory" when empty).
func NewIndex(indexType string, dimensions int) (Index, error) {
	switch IndexType(indexType) {
	case IndexTypeMemory, "":
		return NewMemoryIndex(dimensions)
	case IndexTypeFAISS:
		return NewFAISSIndex(dimensions)
	default:
		return nil, fmt.Errorf("unknown index type: %s (supported: memory, faiss)", indexType)
	}
}
