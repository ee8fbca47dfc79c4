package models

// RiskLevel is the assessed risk of a clause.
type RiskLevel string

const (
	RiskLow     RiskLevel = "Low"
	RiskMedium  RiskLevel = "Medium"
	RiskHigh    RiskLevel = "High"
	RiskUnknown RiskLevel = "Unknown"
)

// RiskAssessment is the risk engine's verdict for a single clause.
type RiskAssessment struct {
	RiskLevel   RiskLevel `json:"risk_level"`
	Explanation string    `json:"explanation"`
}

// ClauseReport is one clause entry in the final report. Title is the clause category.
type ClauseReport struct {
	Title       Category  `json:"title"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Explanation string    `json:"explanation"`
}

// Report is the end-to-end analysis result for one contract.
// Clauses preserve original clause order; MissingClauses preserves the
// required-category table's declared order for the contract type.
type Report struct {
	ContractType   string         `json:"contract_type"`
	MissingClauses []Category     `json:"missing_clauses"`
	Clauses        []ClauseReport `json:"clauses"`
}

// riskScores maps risk levels to the 1-3 scale used by the overall index.
// Unknown counts as Medium so partial engine responses do not skew the index.
var riskScores = map[RiskLevel]float64{
	RiskLow:     1,
	RiskMedium:  2,
	RiskHigh:    3,
	RiskUnknown: 2,
}

// OverallRiskIndex returns the mean clause risk on a 1 (Low) to 3 (High) scale,
// rounded to 2 decimals. Returns 0 for a report with no clauses.
func (r *Report) OverallRiskIndex() float64 {
	if len(r.Clauses) == 0 {
		return 0
	}
	var sum float64
	for _, c := range r.Clauses {
		score, ok := riskScores[c.RiskLevel]
		if !ok {
			score = 2
		}
		sum += score
	}
	avg := sum / float64(len(r.Clauses))
	return float64(int(avg*100+0.5)) / 100
}

// RiskDistribution returns clause counts per risk level.
func (r *Report) RiskDistribution() map[RiskLevel]int {
	dist := make(map[RiskLevel]int)
	for _, c := range r.Clauses {
		dist[c.RiskLevel]++
	}
	return dist
}
