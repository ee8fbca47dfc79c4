package risk

import (
	"fmt"
	"strings"

	"github.com/hyperjump/keiyaku/internal/models"
)

const systemPrompt = "You are a helpful assistant that outputs only valid JSON."

// buildBatchPrompt renders all clauses and their precedents into one prompt so
// the whole contract is assessed in a single call.
func buildBatchPrompt(contractType string, clauses []models.EnrichedClause) string {
	var blocks []string
	for _, c := range clauses {
		var sims string
		if len(c.SimilarClauses) > 0 {
			var lines []string
			for _, s := range c.SimilarClauses {
				lines = append(lines, fmt.Sprintf("- %s (Similarity: %.4f)", s.Text, s.Score))
			}
			sims = strings.Join(lines, "\n")
		} else {
			sims = "No similar precedent clauses found."
		}
		blocks = append(blocks, fmt.Sprintf(`Clause %d:
Type: %s
Text: %s

Relevant Precedents:
%s
`, c.Number, c.Category, c.Text, sims))
	}

	return fmt.Sprintf(`You are a legal contract risk analysis assistant.

Contract Type: %s

Below are multiple clauses from this contract and their closest precedent clauses (if any).

For EACH clause, you must:
1. Compare the clause with its precedents.
2. Identify deviations that increase legal or financial risk.
3. Assign a risk level: "Low", "Medium", or "High".
4. Provide a concise explanation (maximum 2 sentences).

Return ONLY a valid JSON object with this exact structure:
{
  "results": [
    {
      "clause_number": <number>,
      "risk_level": "Low/Medium/High",
      "explanation": "Short explanation text"
    }
  ]
}

Clauses:
%s`, contractType, strings.Join(blocks, "\n\n"))
}
