package server

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/hyperjump/keiyaku/internal/models"
	"github.com/hyperjump/keiyaku/internal/pipeline"
	"go.uber.org/zap"
)

// maxUploadBytes caps contract uploads at 32 MiB.
const maxUploadBytes = 32 << 20

type analyzeRequest struct {
	Text         string `json:"text"`
	ContractType string `json:"contract_type"`
}

type analyzeResponse struct {
	RequestID string `json:"request_id"`
	*models.Report
	OverallRiskIndex float64                  `json:"overall_risk_index"`
	RiskDistribution map[models.RiskLevel]int `json:"risk_distribution"`
}

// handleAnalyze accepts a contract as JSON text or as a multipart file upload
// and returns the full analysis report.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var (
		text         string
		contractType string
	)

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid multipart body")
			return
		}
		contractType = r.FormValue("contract_type")
		file, header, err := r.FormFile("file")
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "file is required")
			return
		}
		defer file.Close()
		content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "failed to read upload")
			return
		}
		ext := strings.ToLower(filepath.Ext(header.Filename))
		text, err = s.extractor.ExtractBytes(content, ext)
		if err != nil {
			s.logger.Warn("upload extraction failed", zap.String("filename", header.Filename), zap.Error(err))
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
	} else {
		var req analyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		text = req.Text
		contractType = req.ContractType
	}

	if contractType == "" {
		s.respondError(w, http.StatusBadRequest, "contract_type is required")
		return
	}
	if !knownContractType(contractType) {
		s.respondError(w, http.StatusBadRequest,
			"unknown contract_type (valid: "+strings.Join(pipeline.ContractTypes(), ", ")+")")
		return
	}

	requestID := uuid.NewString()
	s.logger.Debug("analyze request",
		zap.String("request_id", requestID),
		zap.String("contract_type", contractType),
		zap.Int("text_len", len(text)))

	report, err := s.analyzer.AnalyzeText(r.Context(), text, contractType)
	if err != nil {
		s.logger.Error("analysis failed", zap.String("request_id", requestID), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, analyzeResponse{
		RequestID:        requestID,
		Report:           report,
		OverallRiskIndex: report.OverallRiskIndex(),
		RiskDistribution: report.RiskDistribution(),
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	store := s.analyzer.Store()
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"precedent_groups":     store.GroupCount(),
		"precedent_vectors":    store.VectorCount(),
		"embedding_dimensions": store.Dimensions(),
		"index_type":           store.IndexType(),
		"contract_types":       pipeline.ContractTypes(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func knownContractType(ct string) bool {
	for _, t := range pipeline.ContractTypes() {
		if t == ct {
			return true
		}
	}
	return false
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
