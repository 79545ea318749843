// Package gemini provides a clinical reasoner adapter using the
// Google Gemini generateContent API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
)

// Ensure Reasoner implements the interface.
var _ driven.Reasoner = (*Reasoner)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 120 * time.Second
)

// analysisPrompt asks for the structured analysis as minified JSON.
// The schema mirrors domain.Analysis.
const analysisPrompt = `You are a senior clinician. Extract a structured analysis from the following medical report text.
Return ONLY valid minified JSON matching this schema (no extra commentary):
{
  "summary": string,
  "key_findings": string[],
  "recommendations": string[],
  "patient": {"name": string|null, "age": string|null, "sex": string|null, "uhid": string|null, "mrn": string|null},
  "encounter": {"admission_date": string|null, "discharge_date": string|null, "department": string|null, "discharge_type": string|null},
  "vitals": [{"name": string, "value": string, "unit": string|null, "flag": "high"|"low"|"normal"|null}],
  "labs": [{"name": string, "value": string, "unit": string|null, "reference": string|null, "flag": "high"|"low"|"normal"|null}],
  "diagnoses": [{"name": string, "status": "active"|"resolved"|"suspected"|null, "severity": "mild"|"moderate"|"severe"|null}],
  "procedures": string[],
  "imaging_findings": string[],
  "red_flags": string[],
  "follow_up": [{"action": string, "timeframe": string|null}],
  "medications": [{"name": string, "dose": string|null, "frequency": string|null, "duration": string|null, "notes": string|null}],
  "lifestyle": [{"category": string, "suggestion": string}],
  "disclaimer": string
}
Report Text: ` + "```%s```"

// answerPrompt restricts the model to the retrieved context.
const answerPrompt = `You are a clinical assistant. Use ONLY the provided context to answer the question.
Context:
%s

Question: %s
Answer concisely for clinicians. If insufficient context, say so.`

// Config holds configuration for the Gemini reasoner.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://generativelanguage.googleapis.com).
	BaseURL string

	// Model is the model to use (default: gemini-2.0-flash).
	Model string

	// Timeout is the request timeout (default: 120s).
	Timeout time.Duration
}

// Reasoner analyzes reports and answers questions using Gemini.
type Reasoner struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// generateRequest is the Gemini generateContent request format.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// generateResponse is the Gemini generateContent response format.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// NewReasoner creates a new Gemini reasoner.
func NewReasoner(cfg Config) (*Reasoner, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Reasoner{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
	}, nil
}

// AnalyzeReport extracts a structured analysis from raw report text.
func (r *Reasoner) AnalyzeReport(ctx context.Context, text string) (*domain.Analysis, error) {
	raw, err := r.generate(ctx, fmt.Sprintf(analysisPrompt, text))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReasonerUnavailable, err)
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrReasonerUnavailable, err)
	}
	return analysis, nil
}

// AnswerWithContext answers a question grounded in retrieved snippets.
func (r *Reasoner) AnswerWithContext(ctx context.Context, question, contextText string) (string, error) {
	answer, err := r.generate(ctx, fmt.Sprintf(answerPrompt, contextText, question))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrReasonerUnavailable, err)
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "No answer produced.", nil
	}
	return answer, nil
}

// ModelName returns the name of the model being used.
func (r *Reasoner) ModelName() string {
	return r.model
}

// Close releases resources.
func (r *Reasoner) Close() error {
	return nil
}

// generate calls the generateContent endpoint and returns the first
// candidate's text.
func (r *Reasoner) generate(ctx context.Context, prompt string) (string, error) {
	jsonBody, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", r.baseURL, r.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", r.apiKey)

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if genResp.Error != nil {
		return "", fmt.Errorf("gemini error: %s", genResp.Error.Message)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d): %s", resp.StatusCode, string(body))
	}

	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}

	var sb bytes.Buffer
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
