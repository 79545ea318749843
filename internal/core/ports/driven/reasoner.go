package driven

import (
	"context"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// Reasoner is the downstream reasoning backend that turns report text
// plus retrieved context into structured analyses and grounded answers.
//
// Implementations may include:
//   - Gemini (generateContent API)
//   - A canned mock used when no API key is configured and in tests
type Reasoner interface {
	// AnalyzeReport produces a structured clinical analysis of the
	// report text. The text may already carry composed prior-report
	// context ahead of the current report body.
	AnalyzeReport(ctx context.Context, text string) (*domain.Analysis, error)

	// AnswerWithContext answers a free-text question using only the
	// provided context block. An empty context is allowed; the backend
	// is expected to say when grounding is insufficient.
	AnswerWithContext(ctx context.Context, question, context string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}
