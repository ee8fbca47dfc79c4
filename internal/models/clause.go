// Package models defines core data structures for clauses, precedent matches, and reports.
package models

// Category is a legal clause category. The closed set below covers the categories
// the classifier can assign; every clause gets exactly one, defaulting to Other.
type Category string

const (
	CategoryTermination          Category = "Termination Clause"
	CategoryConfidentiality      Category = "Confidentiality Clause"
	CategoryLiability            Category = "Liability Clause"
	CategoryIntellectualProperty Category = "Intellectual Property Clause"
	CategoryGoverningLaw         Category = "Governing Law Clause"
	CategoryNotice               Category = "Notice Clause"
	CategoryAssignment           Category = "Assignment Clause"
	CategoryPayment              Category = "Payment Clause"
	CategoryOther                Category = "Other"
)

// Clause is a segmented, classified unit of contract text.
// Number is 1-based and dense over the surviving fragments of a document.
type Clause struct {
	Number     int      `json:"clause_number"`
	Text       string   `json:"clause_text"`
	Category   Category `json:"clause_type"`
	Confidence float64  `json:"confidence_score"`
}

// SimilarityMatch is a retrieved precedent with its cosine similarity to the query,
// rounded to 4 decimals.
type SimilarityMatch struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// EnrichedClause is a Clause plus its nearest precedent matches (closest first)
// and the contract type context used for the lookup.
type EnrichedClause struct {
	Clause
	ContractType   string            `json:"contract_type"`
	SimilarClauses []SimilarityMatch `json:"similar_clauses"`
}
