package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
	"github.com/clinical-labs/medrag-cli/internal/logger"
)

// Index embeds chunk text and persists it in the vector store, keyed
// by patient. A disabled Index (no usable backing store) implements
// every operation as a no-op returning empty results, so callers never
// branch on availability beyond checking Enabled.
type Index struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore
	now      func() time.Time

	disabled   bool
	diagnostic string
}

// NewIndex creates an enabled index over the given embedder and store.
func NewIndex(embedder driven.EmbeddingService, store driven.VectorStore) *Index {
	return &Index{
		embedder: embedder,
		store:    store,
		now:      time.Now,
	}
}

// NewDisabledIndex creates an index whose operations are all no-ops.
// Used when the backing store or embedder could not be constructed;
// the reason is logged once here, not on every call.
func NewDisabledIndex(reason string) *Index {
	logger.Warn("index disabled: %s", reason)
	return &Index{
		disabled:   true,
		diagnostic: reason,
	}
}

// SetNow overrides the time source. Useful for testing.
func (i *Index) SetNow(now func() time.Time) {
	i.now = now
}

// Enabled reports whether the index has a usable backing store.
func (i *Index) Enabled() bool {
	return !i.disabled
}

// Diagnostic returns the reason the index is disabled, if it is.
func (i *Index) Diagnostic() string {
	return i.diagnostic
}

// AddMany embeds and stores every chunk under the patient partition.
// All chunks from one call share a single timestamp, so a later
// recency listing keeps a document's chunks together. A failure on an
// individual chunk is logged and that chunk skipped; ids of chunks
// stored before the failure are still returned. Best-effort, not a
// transaction.
func (i *Index) AddMany(ctx context.Context, patientID, filename string, chunks []string) ([]string, domain.Outcome) {
	if i.disabled {
		return nil, domain.Disabled(i.diagnostic)
	}
	if len(chunks) == 0 {
		return nil, domain.OK()
	}

	if patientID == "" {
		patientID = domain.UnknownPatient
	}
	if filename == "" {
		filename = domain.UnknownFilename
	}

	timestamp := i.now().UTC()

	embeddings, err := i.embedder.EmbedBatch(ctx, chunks)
	if err != nil {
		logger.Warn("index: embedding batch failed: %v", err)
		return nil, domain.Degraded(fmt.Sprintf("embedding failed: %v", err))
	}

	var ids []string
	var failed int
	for idx, text := range chunks {
		chunk := domain.Chunk{
			ID:   uuid.New().String(),
			Text: text,
			Meta: domain.ChunkMeta{
				PatientID:  patientID,
				Filename:   filename,
				Timestamp:  timestamp,
				ChunkIndex: idx,
				NumChunks:  len(chunks),
			},
		}
		if err := i.store.Upsert(ctx, chunk, embeddings[idx]); err != nil {
			logger.Warn("index: storing chunk %d/%d failed: %v", idx+1, len(chunks), err)
			failed++
			continue
		}
		ids = append(ids, chunk.ID)
	}

	logger.Debug("index: stored %d/%d chunks for patient %s", len(ids), len(chunks), patientID)

	if failed > 0 {
		return ids, domain.Degraded(fmt.Sprintf("%d of %d chunks failed to store", failed, len(chunks)))
	}
	return ids, domain.OK()
}

// Query embeds the query text and returns up to topK nearest chunks,
// scoped to patientID when non-empty and searched across all
// partitions when it is empty. Embedder and store failures are logged
// and yield an empty result with a degraded outcome, never an error.
func (i *Index) Query(ctx context.Context, patientID, text string, topK int) ([]domain.RetrievalResult, domain.Outcome) {
	if i.disabled {
		return nil, domain.Disabled(i.diagnostic)
	}
	if text == "" || topK <= 0 {
		return nil, domain.OK()
	}

	embedding, err := i.embedder.Embed(ctx, text)
	if err != nil {
		logger.Warn("index: embedding query failed: %v", err)
		return nil, domain.Degraded(fmt.Sprintf("embedding query: %v", err))
	}

	results, err := i.store.Search(ctx, patientID, embedding, topK)
	if err != nil {
		logger.Warn("index: similarity search failed: %v", err)
		return nil, domain.Degraded(fmt.Sprintf("searching store: %v", err))
	}
	return results, domain.OK()
}

// ListByPatient returns up to limit stored chunks for a patient in
// (timestamp, chunk index) order. Store failures degrade to empty.
func (i *Index) ListByPatient(ctx context.Context, patientID string, limit int) ([]domain.RetrievalResult, domain.Outcome) {
	if i.disabled {
		return nil, domain.Disabled(i.diagnostic)
	}
	results, err := i.store.ListByPatient(ctx, patientID, limit)
	if err != nil {
		logger.Warn("index: listing patient chunks failed: %v", err)
		return nil, domain.Degraded(fmt.Sprintf("listing store: %v", err))
	}
	return results, domain.OK()
}

// Close releases the embedder and store.
func (i *Index) Close() error {
	if i.disabled {
		return nil
	}
	errEmbed := i.embedder.Close()
	errStore := i.store.Close()
	if errEmbed != nil {
		return errEmbed
	}
	return errStore
}
