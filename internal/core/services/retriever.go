package services

import (
	"context"
	"fmt"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/logger"
)

// Retriever finds prior-report context for a patient. It never
// returns an error: index failures are swallowed, logged and reported
// through the returned Outcome so retrieval failure cannot abort the
// caller's request.
type Retriever struct {
	index *Index
}

// NewRetriever creates a retriever over the given index.
func NewRetriever(index *Index) *Retriever {
	return &Retriever{index: index}
}

// RetrieveContext returns up to topK prior chunks relevant to the
// query text. With a patient scope, similarity search runs first and
// an empty result falls back to a recency-ordered listing for the
// same patient. Without a patient scope the result is always empty:
// unscoped similarity search would leak other patients' records into
// the context.
func (r *Retriever) RetrieveContext(ctx context.Context, patientID, text string, topK int) ([]domain.RetrievalResult, domain.Outcome) {
	if !r.index.Enabled() {
		return nil, domain.Disabled(r.index.Diagnostic())
	}
	if patientID == "" {
		logger.Debug("retriever: no patient scope, returning empty context")
		return nil, domain.OK()
	}
	if topK <= 0 {
		return nil, domain.OK()
	}

	results, outcome := r.index.Query(ctx, patientID, text, topK)
	if !outcome.IsOK() {
		logger.Warn("retriever: similarity search degraded for patient %s: %s", patientID, outcome.Diagnostic)
		return r.fallback(ctx, patientID, topK, outcome.Diagnostic)
	}
	if len(results) == 0 {
		logger.Debug("retriever: similarity search empty for patient %s, using recency fallback", patientID)
		listed, listOutcome := r.index.ListByPatient(ctx, patientID, topK)
		if !listOutcome.IsOK() {
			logger.Warn("retriever: recency fallback degraded for patient %s: %s", patientID, listOutcome.Diagnostic)
			return nil, domain.Degraded(fmt.Sprintf("recency fallback failed: %s", listOutcome.Diagnostic))
		}
		return listed, domain.OK()
	}

	logger.Debug("retriever: %d similar chunks for patient %s", len(results), patientID)
	return results, domain.OK()
}

// fallback lists recent chunks after a degraded similarity search.
func (r *Retriever) fallback(ctx context.Context, patientID string, topK int, diagnostic string) ([]domain.RetrievalResult, domain.Outcome) {
	listed, outcome := r.index.ListByPatient(ctx, patientID, topK)
	if !outcome.IsOK() {
		logger.Warn("retriever: recency fallback degraded for patient %s: %s", patientID, outcome.Diagnostic)
		return nil, domain.Degraded(diagnostic + "; recency fallback also failed")
	}
	return listed, domain.Degraded(diagnostic)
}
