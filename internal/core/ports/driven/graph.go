package driven

import (
	"context"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// GraphStore records patient visits and their extracted entities in a
// knowledge graph. This is an optional collaborator: when nil or
// unconfigured, ingestion proceeds without graph writes.
type GraphStore interface {
	// UpsertVisit creates a visit node for the patient and links the
	// extracted medications, labs and conditions to it.
	UpsertVisit(ctx context.Context, patientID string, entities domain.Entities) error

	// Close releases the underlying driver.
	Close(ctx context.Context) error
}
