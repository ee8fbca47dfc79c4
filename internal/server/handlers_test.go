package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/keiyaku/internal/config"
	"github.com/hyperjump/keiyaku/internal/embedding"
	"github.com/hyperjump/keiyaku/internal/extract"
	"github.com/hyperjump/keiyaku/internal/models"
	"github.com/hyperjump/keiyaku/internal/pipeline"
	"github.com/hyperjump/keiyaku/internal/precedent"
	"go.uber.org/zap"
)

// staticAssessor returns Low for every clause without calling any API.
type staticAssessor struct{}

func (staticAssessor) Assess(ctx context.Context, contractType string, clauses []models.EnrichedClause) (map[int]models.RiskAssessment, error) {
	out := make(map[int]models.RiskAssessment, len(clauses))
	for _, c := range clauses {
		out[c.Number] = models.RiskAssessment{RiskLevel: models.RiskLow, Explanation: "ok"}
	}
	return out, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	store, err := precedent.NewStore(context.Background(), embedding.NewHashEmbedder(384), precedent.Corpus(), "memory")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = store.Close() })
	extractor := extract.NewExtractor()
	analyzer := pipeline.NewAnalyzer(extractor, store, staticAssessor{}, 2, zap.NewNop())
	return NewServer(analyzer, extractor, &config.ServerConfig{Host: "localhost", Port: 0}, zap.NewNop())
}

const sampleContract = "1. Termination. Either party may terminate this Agreement with 60 days written notice.\n\n2. Confidentiality. Both parties shall keep all information confidential."

func TestHandleAnalyze_JSON(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(analyzeRequest{Text: sampleContract, ContractType: "Employment"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var resp struct {
		RequestID        string               `json:"request_id"`
		ContractType     string               `json:"contract_type"`
		MissingClauses   []string             `json:"missing_clauses"`
		Clauses          []map[string]string  `json:"clauses"`
		OverallRiskIndex float64              `json:"overall_risk_index"`
		RiskDistribution map[string]int       `json:"risk_distribution"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RequestID == "" {
		t.Error("request_id missing")
	}
	if resp.ContractType != "Employment" {
		t.Errorf("contract_type=%q", resp.ContractType)
	}
	if len(resp.Clauses) != 2 {
		t.Fatalf("clauses=%d", len(resp.Clauses))
	}
	if resp.Clauses[0]["title"] != "Termination Clause" {
		t.Errorf("clause 1 title=%q", resp.Clauses[0]["title"])
	}
	wantMissing := []string{"Payment Clause", "Notice Clause", "Governing Law Clause"}
	if len(resp.MissingClauses) != len(wantMissing) {
		t.Fatalf("missing_clauses=%v", resp.MissingClauses)
	}
	for i, m := range wantMissing {
		if resp.MissingClauses[i] != m {
			t.Errorf("missing_clauses[%d]=%q, want %q", i, resp.MissingClauses[i], m)
		}
	}
	if resp.OverallRiskIndex != 1.0 {
		t.Errorf("overall_risk_index=%v", resp.OverallRiskIndex)
	}
	if resp.RiskDistribution["Low"] != 2 {
		t.Errorf("risk_distribution=%v", resp.RiskDistribution)
	}
}

func TestHandleAnalyze_MultipartUpload(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "contract.txt")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte(sampleContract))
	_ = mw.WriteField("contract_type", "NDA")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "\"contract_type\":\"NDA\"") {
		t.Errorf("body=%s", rec.Body.String())
	}
}

func TestHandleAnalyze_MissingContractType(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(analyzeRequest{Text: sampleContract})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status=%d", rec.Code)
	}
}

func TestHandleAnalyze_UnknownContractType(t *testing.T) {
	s := newTestServer(t)
	body, _ := json.Marshal(analyzeRequest{Text: sampleContract, ContractType: "Franchise"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status=%d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Employment") {
		t.Errorf("error should list valid types, got %s", rec.Body.String())
	}
}

func TestHandleAnalyze_UnsupportedUpload(t *testing.T) {
	s := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", "deck.pptx")
	_, _ = fw.Write([]byte("not a contract"))
	_ = mw.WriteField("contract_type", "Employment")
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status=%d", rec.Code)
	}
}

func TestHandleStatus(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["precedent_groups"].(float64) != 4 {
		t.Errorf("precedent_groups=%v", resp["precedent_groups"])
	}
	if resp["embedding_dimensions"].(float64) != 384 {
		t.Errorf("embedding_dimensions=%v", resp["embedding_dimensions"])
	}
	if resp["index_type"].(string) != "memory" {
		t.Errorf("index_type=%v", resp["index_type"])
	}
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status=%d", rec.Code)
	}
}
