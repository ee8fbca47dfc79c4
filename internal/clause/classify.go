package clause

import (
	"strings"

	"github.com/hyperjump/keiyaku/internal/models"
)

// rule pairs a clause category with the keywords that trigger it.
type rule struct {
	category models.Category
	keywords []string
}

// rules is evaluated strictly in order and the first match wins: a clause
// mentioning both termination and payment terms classifies as Termination.
// Do not reorder.
var rules = []rule{
	{models.CategoryTermination, []string{"terminate", "termination"}},
	{models.CategoryConfidentiality, []string{"confidential", "non-disclosure"}},
	{models.CategoryLiability, []string{"liability", "liable", "indemnify", "indemnity"}},
	{models.CategoryIntellectualProperty, []string{"intellectual property", "ip rights", "copyright", "trademark"}},
	{models.CategoryGoverningLaw, []string{"governing law", "governed by the laws"}},
	{models.CategoryNotice, []string{"notice shall", "written notice", "registered mail"}},
	// Kept narrow so generic "successors and assigns" boilerplate does not match.
	{models.CategoryAssignment, []string{"may not assign", "assign this agreement"}},
	{models.CategoryPayment, []string{"payment", "salary", "fee", "compensation", "amount", "consideration", "wage", "remuneration"}},
}

// Classify returns the category of the first matching rule, or Other.
// Matching is case-insensitive substring matching.
func Classify(text string) models.Category {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return models.CategoryOther
}
