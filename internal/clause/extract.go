package clause

import "github.com/hyperjump/keiyaku/internal/models"

// defaultConfidence is a fixed placeholder until a learned classifier exists.
const defaultConfidence = 0.80

// Extract runs the full extraction chain on raw contract text: normalize, segment,
// classify. Clause numbers are 1-based and dense over the surviving fragments.
func Extract(text string) []models.Clause {
	fragments := Segment(Normalize(text))
	clauses := make([]models.Clause, 0, len(fragments))
	for i, fragment := range fragments {
		clauses = append(clauses, models.Clause{
			Number:     i + 1,
			Text:       fragment,
			Category:   Classify(fragment),
			Confidence: defaultConfidence,
		})
	}
	return clauses
}
