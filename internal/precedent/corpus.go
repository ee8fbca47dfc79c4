// Package precedent holds the reference clause corpus and its similarity indexes.
package precedent

import "github.com/hyperjump/keiyaku/internal/models"

// Entry is a reference clause from the curated corpus, read-only for the
// process lifetime.
type Entry struct {
	ContractType string
	Category     models.Category
	Text         string
}

// Corpus returns the seed precedent corpus. Kept in code rather than a data
// file: it is small, reviewed like code, and never changes at runtime.
func Corpus() []Entry {
	return []Entry{
		// Employment
		{
			ContractType: "Employment",
			Category:     models.CategoryPayment,
			Text:         "Salary must be paid within 30 days of invoice receipt.",
		},
		{
			ContractType: "Employment",
			Category:     models.CategoryPayment,
			Text:         "Employee compensation includes bonus and stock options.",
		},
		{
			ContractType: "Employment",
			Category:     models.CategoryTermination,
			Text:         "Either party may terminate employment with 60 days written notice.",
		},
		{
			ContractType: "Employment",
			Category:     models.CategoryConfidentiality,
			Text:         "Employee shall not disclose confidential information during employment.",
		},

		// NDA
		{
			ContractType: "NDA",
			Category:     models.CategoryConfidentiality,
			Text:         "Confidential information shall not be disclosed for 5 years.",
		},
		{
			ContractType: "NDA",
			Category:     models.CategoryConfidentiality,
			Text:         "The receiving party must protect proprietary information.",
		},
	}
}
