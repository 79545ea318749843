package driving

import (
	"context"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// IngestRequest carries a new report into the pipeline.
type IngestRequest struct {
	// PatientID scopes the report to a patient. Optional; when empty
	// the chunks are stored under the unknown-patient sentinel and no
	// prior context is retrieved.
	PatientID string

	// Text is the extracted report text.
	Text string

	// Filename is the provenance label for the stored chunks.
	Filename string
}

// IngestResult summarises one ingestion event.
type IngestResult struct {
	// ChunksIndexed is the number of chunks durably stored.
	ChunksIndexed int

	// Context is the composed prior-report context used for analysis.
	// Empty when no grounding was available.
	Context string

	// Analysis is the structured clinical analysis of the report.
	Analysis *domain.Analysis

	// Insights are the rule-derived recommendations.
	Insights []domain.Insight

	// Entities are the pattern-extracted clinical entities.
	Entities domain.Entities

	// IndexOutcome reports how the indexing step completed.
	IndexOutcome domain.Outcome

	// RetrievalOutcome reports how context retrieval completed.
	RetrievalOutcome domain.Outcome
}

// IngestService coordinates chunking, indexing, context retrieval and
// analysis for new report text.
type IngestService interface {
	// Ingest runs the pipeline for one report. Indexing and retrieval
	// faults degrade (see the result outcomes); only genuine input
	// failures (e.g. empty text) surface as errors.
	Ingest(ctx context.Context, req IngestRequest) (*IngestResult, error)
}
