package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

func geminiResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]any{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	}
}

func TestNewReasonerRequiresAPIKey(t *testing.T) {
	_, err := NewReasoner(Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestAnalyzeReport(t *testing.T) {
	analysisJSON := `{"summary":"stable","key_findings":["finding one"],"recommendations":["rest"],"disclaimer":"educational"}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		json.NewEncoder(w).Encode(geminiResponse(analysisJSON))
	}))
	defer server.Close()

	reasoner, err := NewReasoner(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	analysis, err := reasoner.AnalyzeReport(context.Background(), "report text")
	require.NoError(t, err)
	assert.Equal(t, "stable", analysis.Summary)
	assert.Equal(t, []string{"finding one"}, analysis.KeyFindings)
}

func TestAnalyzeReportFencedJSON(t *testing.T) {
	fenced := "Here is the analysis:\n```json\n{\"summary\":\"ok\"}\n```\nLet me know if you need more."

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse(fenced))
	}))
	defer server.Close()

	reasoner, err := NewReasoner(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	analysis, err := reasoner.AnalyzeReport(context.Background(), "report")
	require.NoError(t, err)
	assert.Equal(t, "ok", analysis.Summary)
}

func TestAnalyzeReportUnparseable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(geminiResponse("I cannot analyze this report."))
	}))
	defer server.Close()

	reasoner, err := NewReasoner(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = reasoner.AnalyzeReport(context.Background(), "report")
	assert.ErrorIs(t, err, domain.ErrReasonerUnavailable)
}

func TestAnalyzeReportAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 403, "message": "quota exceeded", "status": "PERMISSION_DENIED"},
		})
	}))
	defer server.Close()

	reasoner, err := NewReasoner(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = reasoner.AnalyzeReport(context.Background(), "report")
	require.ErrorIs(t, err, domain.ErrReasonerUnavailable)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestAnswerWithContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "prior BP readings")
		assert.Contains(t, req.Contents[0].Parts[0].Text, "What is the trend?")

		json.NewEncoder(w).Encode(geminiResponse("  BP trending down.  "))
	}))
	defer server.Close()

	reasoner, err := NewReasoner(Config{APIKey: "secret", BaseURL: server.URL})
	require.NoError(t, err)

	answer, err := reasoner.AnswerWithContext(context.Background(), "What is the trend?", "prior BP readings")
	require.NoError(t, err)
	assert.Equal(t, "BP trending down.", answer)
}

func TestParseAnalysisStrategies(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		summary string
		wantErr bool
	}{
		{name: "direct", raw: `{"summary":"a"}`, summary: "a"},
		{name: "fenced json", raw: "```json\n{\"summary\":\"b\"}\n```", summary: "b"},
		{name: "fenced plain", raw: "```\n{\"summary\":\"c\"}\n```", summary: "c"},
		{name: "embedded braces", raw: "The result is {\"summary\":\"d\"} as requested.", summary: "d"},
		{name: "no json", raw: "nothing here", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := parseAnalysis(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.summary, analysis.Summary)
		})
	}
}
