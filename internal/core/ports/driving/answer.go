package driving

import (
	"context"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// AnswerResult is the outcome of a grounded question-answering call.
type AnswerResult struct {
	// SnippetsUsed is the number of retrieved chunks composed into the
	// grounding context.
	SnippetsUsed int

	// Context is the composed grounding context handed to the
	// reasoning backend. Empty when nothing was retrieved.
	Context string

	// Answer is the reasoning backend's response.
	Answer string

	// RetrievalOutcome reports how retrieval completed.
	RetrievalOutcome domain.Outcome
}

// AnswerService answers free-text questions grounded in a patient's
// stored report history.
type AnswerService interface {
	// Answer retrieves context for the question scoped to patientID
	// (empty patientID yields no context) and asks the reasoning
	// backend. topK <= 0 selects the configured default.
	Answer(ctx context.Context, patientID, question string, topK int) (*AnswerResult, error)
}

// HistoryService lists a patient's stored chunks without ranking.
type HistoryService interface {
	// History returns up to limit chunks for the patient ordered by
	// (timestamp, chunk index) ascending.
	History(ctx context.Context, patientID string, limit int) ([]domain.RetrievalResult, error)
}
