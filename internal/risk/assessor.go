// Package risk scores clause risk via an OpenAI-compatible chat-completions API.
package risk

import (
	"context"
	"fmt"

	"github.com/hyperjump/keiyaku/internal/models"
)

// Assessor maps enriched clauses to per-clause risk assessments keyed by clause
// number. Implementations may return a partial map; callers fill the gaps with
// FallbackUnknown. A returned error means the whole batch failed and callers
// substitute FallbackAll instead of aborting the report.
type Assessor interface {
	Assess(ctx context.Context, contractType string, clauses []models.EnrichedClause) (map[int]models.RiskAssessment, error)
}

// FallbackUnknown is the substitute for a clause number the assessor omitted.
func FallbackUnknown() models.RiskAssessment {
	return models.RiskAssessment{
		RiskLevel:   models.RiskUnknown,
		Explanation: "No risk data returned for this clause.",
	}
}

// FallbackAll marks every clause High risk with the engine failure reason.
// Used when the assessor fails entirely so one upstream failure never aborts
// the report.
func FallbackAll(clauses []models.EnrichedClause, reason error) map[int]models.RiskAssessment {
	out := make(map[int]models.RiskAssessment, len(clauses))
	for _, c := range clauses {
		out[c.Number] = models.RiskAssessment{
			RiskLevel:   models.RiskHigh,
			Explanation: fmt.Sprintf("Risk engine error: %v", reason),
		}
	}
	return out
}
