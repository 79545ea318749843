package driven

import (
	"context"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// VectorStore persists embedded chunks with their provenance metadata
// and supports similarity search partitioned by patient id.
//
// Implementations must support concurrent readers and writers; no
// multi-call transaction is ever required of them.
type VectorStore interface {
	// Upsert durably stores a chunk together with its embedding.
	Upsert(ctx context.Context, chunk domain.Chunk, embedding []float32) error

	// Search returns up to topK stored chunks nearest to the query
	// vector, ordered by ascending distance. When patientID is
	// non-empty the search is restricted to that partition; when empty
	// it spans all partitions.
	Search(ctx context.Context, patientID string, query []float32, topK int) ([]domain.RetrievalResult, error)

	// ListByPatient returns up to limit stored chunks for a partition,
	// ordered by (timestamp, chunk index) ascending. Results carry a
	// nil distance.
	ListByPatient(ctx context.Context, patientID string, limit int) ([]domain.RetrievalResult, error)

	// Close releases resources.
	Close() error
}
