package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/clinical-labs/medrag-cli/internal/chunker"
	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driving"
	"github.com/clinical-labs/medrag-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService orchestrates report ingestion: chunk the text, index
// the chunks, retrieve prior context, run the structured analysis and
// record extracted entities in the knowledge graph.
type IngestService struct {
	chunker   *chunker.Chunker
	index     *Index
	retriever *Retriever
	reasoner  driven.Reasoner
	graph     driven.GraphStore

	topK int
}

// NewIngestService creates an ingest service. The graph store is
// optional (can be nil).
func NewIngestService(
	ck *chunker.Chunker,
	index *Index,
	retriever *Retriever,
	reasoner driven.Reasoner,
	graph driven.GraphStore,
	topK int,
) *IngestService {
	if topK <= 0 {
		topK = 3
	}
	return &IngestService{
		chunker:   ck,
		index:     index,
		retriever: retriever,
		reasoner:  reasoner,
		graph:     graph,
		topK:      topK,
	}
}

// Ingest processes one report. Indexing and context retrieval run
// concurrently and are individually fault-isolated: either can
// degrade without blocking or failing the other, and neither failure
// aborts the ingestion. Only empty input and a total reasoning
// failure surface as errors.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*driving.IngestResult, error) {
	logger.Section("Ingest")

	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: report text is empty", domain.ErrInvalidInput)
	}
	logger.Debug("ingest: patient=%q filename=%q chars=%d", req.PatientID, req.Filename, len(text))

	chunks := s.chunker.Chunk(text)
	logger.Debug("ingest: %d chunks", len(chunks))

	result := &driving.IngestResult{}

	// Index the new chunks and retrieve prior context in parallel.
	// Retrieval uses the whole original text as the query, not the
	// individual chunks.
	var wg sync.WaitGroup
	var retrieved []domain.RetrievalResult

	wg.Add(2)
	go func() {
		defer wg.Done()
		ids, outcome := s.index.AddMany(ctx, req.PatientID, req.Filename, chunks)
		result.ChunksIndexed = len(ids)
		result.IndexOutcome = outcome
	}()
	go func() {
		defer wg.Done()
		retrieved, result.RetrievalOutcome = s.retriever.RetrieveContext(ctx, req.PatientID, text, s.topK)
	}()
	wg.Wait()

	result.Context = ComposeContext(retrieved)

	analysisInput := text
	if result.Context != "" {
		analysisInput = "Context from prior reports:\n" + result.Context + "\n\nCurrent report:\n" + text
	}

	analysis, err := s.reasoner.AnalyzeReport(ctx, analysisInput)
	if err != nil {
		return nil, fmt.Errorf("analyzing report: %w", err)
	}
	result.Analysis = analysis

	result.Insights = GenerateInsights(text)
	result.Entities = ExtractEntities(text)

	s.recordVisit(ctx, req.PatientID, result.Entities)

	return result, nil
}

// recordVisit writes extracted entities to the knowledge graph.
// Fail-open: a missing or unreachable graph only logs a warning.
func (s *IngestService) recordVisit(ctx context.Context, patientID string, entities domain.Entities) {
	if s.graph == nil || patientID == "" || entities.Empty() {
		return
	}
	if err := s.graph.UpsertVisit(ctx, patientID, entities); err != nil {
		logger.Warn("ingest: knowledge graph upsert failed for patient %s: %v", patientID, err)
		return
	}
	logger.Debug("ingest: knowledge graph visit recorded for patient %s", patientID)
}
