package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hyperjump/keiyaku/internal/models"
)

// DefaultBaseURL is the Groq OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultModel is the chat model used for legal reasoning.
const DefaultModel = "openai/gpt-oss-20b"

// Client assesses clause risk with one chat-completions call per contract.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the API base URL (used by tests and self-hosted gateways).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) { c.baseURL = url }
}

// WithModel overrides the chat model.
func WithModel(model string) ClientOption {
	return func(c *Client) { c.model = model }
}

// WithTimeout overrides the HTTP timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient creates a risk client authenticating with apiKey.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		model:   DefaultModel,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

// batchResult is the JSON object the model is instructed to return.
type batchResult struct {
	Results []struct {
		ClauseNumber int    `json:"clause_number"`
		RiskLevel    string `json:"risk_level"`
		Explanation  string `json:"explanation"`
	} `json:"results"`
}

// Assess sends the batch prompt and parses the per-clause risk map. Any
// transport, status, or parse failure is returned as an error; callers
// substitute FallbackAll rather than failing the report.
func (c *Client) Assess(ctx context.Context, contractType string, clauses []models.EnrichedClause) (map[int]models.RiskAssessment, error) {
	if len(clauses) == 0 {
		return map[int]models.RiskAssessment{}, nil
	}

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildBatchPrompt(contractType, clauses)},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat completion status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	var batch batchResult
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &batch); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}

	riskMap := make(map[int]models.RiskAssessment, len(batch.Results))
	for _, r := range batch.Results {
		if r.ClauseNumber == 0 {
			continue
		}
		level := models.RiskLevel(r.RiskLevel)
		switch level {
		case models.RiskLow, models.RiskMedium, models.RiskHigh:
		default:
			level = models.RiskUnknown
		}
		explanation := r.Explanation
		if explanation == "" {
			explanation = "Analysis complete."
		}
		riskMap[r.ClauseNumber] = models.RiskAssessment{
			RiskLevel:   level,
			Explanation: explanation,
		}
	}
	return riskMap, nil
}

func truncateBody(b []byte) string {
	const max = 512
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
