// Package pipeline sequences clause extraction, precedent retrieval, and risk
// assessment into one contract report.
package pipeline

import (
	"context"
	"fmt"

	"github.com/hyperjump/keiyaku/internal/clause"
	"github.com/hyperjump/keiyaku/internal/extract"
	"github.com/hyperjump/keiyaku/internal/models"
	"github.com/hyperjump/keiyaku/internal/precedent"
	"github.com/hyperjump/keiyaku/internal/risk"
	"go.uber.org/zap"
)

// Analyzer runs the end-to-end analysis. It holds only immutable dependencies,
// so concurrent AnalyzeText calls are safe.
type Analyzer struct {
	extractor *extract.Extractor
	store     *precedent.Store
	assessor  risk.Assessor
	topK      int
	logger    *zap.Logger
}

// NewAnalyzer creates an analyzer. topK <= 0 uses the retrieval default.
func NewAnalyzer(extractor *extract.Extractor, store *precedent.Store, assessor risk.Assessor, topK int, logger *zap.Logger) *Analyzer {
	if topK <= 0 {
		topK = precedent.DefaultTopK
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		extractor: extractor,
		store:     store,
		assessor:  assessor,
		topK:      topK,
		logger:    logger,
	}
}

// AnalyzeFile extracts text from the document at path and analyzes it.
// A missing or unreadable file is the one fatal input error.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path, contractType string) (*models.Report, error) {
	text, err := a.extractor.Extract(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	return a.AnalyzeText(ctx, text, contractType)
}

// AnalyzeText runs the full pipeline on raw contract text: segment and classify
// clauses, enrich each with its nearest precedents, assess risk in one batch,
// and compute the missing required categories for contractType. A failed or
// partial risk assessment degrades to fallback labels; it never fails the report.
func (a *Analyzer) AnalyzeText(ctx context.Context, text, contractType string) (*models.Report, error) {
	clauses := clause.Extract(text)
	a.logger.Debug("clauses extracted",
		zap.String("contract_type", contractType),
		zap.Int("count", len(clauses)))

	enriched, err := a.enrich(ctx, clauses, contractType)
	if err != nil {
		return nil, err
	}

	riskMap, err := a.assessor.Assess(ctx, contractType, enriched)
	if err != nil {
		a.logger.Warn("risk assessment failed, using fallback",
			zap.String("contract_type", contractType),
			zap.Error(err))
		riskMap = risk.FallbackAll(enriched, err)
	}

	found := make(map[models.Category]bool)
	reports := make([]models.ClauseReport, 0, len(enriched))
	for _, c := range enriched {
		found[c.Category] = true
		assessment, ok := riskMap[c.Number]
		if !ok {
			assessment = risk.FallbackUnknown()
		}
		reports = append(reports, models.ClauseReport{
			Title:       c.Category,
			RiskLevel:   assessment.RiskLevel,
			Explanation: assessment.Explanation,
		})
	}

	return &models.Report{
		ContractType:   contractType,
		MissingClauses: MissingCategories(contractType, found),
		Clauses:        reports,
	}, nil
}

// enrich looks up precedents for each clause in order. Ordering and numbering
// are preserved exactly; lookup misses yield empty match lists.
func (a *Analyzer) enrich(ctx context.Context, clauses []models.Clause, contractType string) ([]models.EnrichedClause, error) {
	enriched := make([]models.EnrichedClause, 0, len(clauses))
	for _, c := range clauses {
		matches, err := a.store.Retrieve(ctx, c.Text, contractType, c.Category, a.topK)
		if err != nil {
			return nil, fmt.Errorf("retrieve precedents for clause %d: %w", c.Number, err)
		}
		enriched = append(enriched, models.EnrichedClause{
			Clause:         c,
			ContractType:   contractType,
			SimilarClauses: matches,
		})
	}
	return enriched, nil
}

// Store exposes the precedent store for status reporting.
func (a *Analyzer) Store() *precedent.Store {
	return a.store
}
