package precedent

import (
	"context"
	"math"
	"testing"

	"github.com/hyperjump/keiyaku/internal/embedding"
	"github.com/hyperjump/keiyaku/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(context.Background(), embedding.NewHashEmbedder(384), Corpus(), "memory")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewStore_GroupsBuilt(t *testing.T) {
	store := newTestStore(t)
	// Corpus has 4 distinct (type, category) pairs.
	if store.GroupCount() != 4 {
		t.Errorf("GroupCount=%d, want 4", store.GroupCount())
	}
	if got := store.GroupSize("Employment", models.CategoryPayment); got != 2 {
		t.Errorf("Employment payment group size=%d, want 2", got)
	}
	if got := store.GroupSize("NDA", models.CategoryPayment); got != 0 {
		t.Errorf("absent group size=%d, want 0", got)
	}
	if store.VectorCount() != 6 {
		t.Errorf("VectorCount=%d, want 6", store.VectorCount())
	}
}

func TestNewStore_ResolvesIndexType(t *testing.T) {
	store, err := NewStore(context.Background(), embedding.NewHashEmbedder(128), Corpus(), "")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()
	if store.IndexType() != "memory" {
		t.Errorf("IndexType=%q, want memory", store.IndexType())
	}
	if store.Dimensions() != 128 {
		t.Errorf("Dimensions=%d, want 128", store.Dimensions())
	}
}

func TestRetrieve_SelfMatch(t *testing.T) {
	store := newTestStore(t)
	// A query identical to a stored precedent must match itself with score ~1.0.
	text := "Salary must be paid within 30 days of invoice receipt."
	matches, err := store.Retrieve(context.Background(), text, "Employment", models.CategoryPayment, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) == 0 {
		t.Fatal("expected a self-match")
	}
	if matches[0].Text != text {
		t.Errorf("top match=%q, want self", matches[0].Text)
	}
	if math.Abs(matches[0].Score-1.0) > 0.001 {
		t.Errorf("self-match score=%v, want ~1.0", matches[0].Score)
	}
}

func TestRetrieve_FloorApplied(t *testing.T) {
	store := newTestStore(t)
	matches, err := store.Retrieve(context.Background(), "completely unrelated verbiage about gardening", "Employment", models.CategoryPayment, 5)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range matches {
		if m.Score < DefaultSimilarityFloor {
			t.Errorf("match below floor returned: %v", m.Score)
		}
	}
}

func TestRetrieve_EmptyQueryAndUnknownGroup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	matches, err := store.Retrieve(ctx, "", "Employment", models.CategoryPayment, 2)
	if err != nil || matches != nil {
		t.Errorf("empty query: matches=%v err=%v, want nil/nil", matches, err)
	}

	matches, err = store.Retrieve(ctx, "some clause text", "Lease", models.CategoryPayment, 2)
	if err != nil || matches != nil {
		t.Errorf("unknown group: matches=%v err=%v, want nil/nil", matches, err)
	}
}

func TestRetrieve_TopKClamped(t *testing.T) {
	store := newTestStore(t)
	text := "Either party may terminate employment with 60 days written notice."
	matches, err := store.Retrieve(context.Background(), text, "Employment", models.CategoryTermination, 10)
	if err != nil {
		t.Fatal(err)
	}
	// Group has a single precedent; at most 1 match regardless of topK.
	if len(matches) > 1 {
		t.Errorf("got %d matches from a 1-entry group", len(matches))
	}
}

func TestRetrieve_DescendingOrder(t *testing.T) {
	store := newTestStore(t)
	text := "Employee compensation includes bonus and stock options."
	matches, err := store.Retrieve(context.Background(), text, "Employment", models.CategoryPayment, 2)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not descending: %v", matches)
		}
	}
}
