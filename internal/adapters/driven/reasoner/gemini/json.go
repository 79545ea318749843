package gemini

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

var fencePattern = regexp.MustCompile("(?is)```(?:json)?\\s*([\\s\\S]*?)\\s*```")

// parseAnalysis decodes a structured analysis from raw model output.
// Models wrap JSON in code fences or prose despite instructions, so
// parsing tries three strategies in order: the raw text, the first
// fenced block, then the substring from the first '{' to the last '}'.
func parseAnalysis(raw string) (*domain.Analysis, error) {
	raw = strings.TrimSpace(raw)

	if analysis, err := decodeAnalysis(raw); err == nil {
		return analysis, nil
	}

	if match := fencePattern.FindStringSubmatch(raw); match != nil {
		if analysis, err := decodeAnalysis(strings.TrimSpace(match[1])); err == nil {
			return analysis, nil
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		if analysis, err := decodeAnalysis(raw[start : end+1]); err == nil {
			return analysis, nil
		}
	}

	return nil, fmt.Errorf("could not parse analysis JSON from model response")
}

func decodeAnalysis(candidate string) (*domain.Analysis, error) {
	var analysis domain.Analysis
	if err := json.Unmarshal([]byte(candidate), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}
