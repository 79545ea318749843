package mcp

import (
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. Single injection point for dependency injection.
type Ports struct {
	// Ingest processes new reports.
	Ingest driving.IngestService

	// Answer answers patient-scoped questions.
	Answer driving.AnswerService

	// History lists stored chunks. Optional.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Ingest == nil {
		return ErrMissingIngestService
	}
	if p.Answer == nil {
		return ErrMissingAnswerService
	}
	// History is optional
	return nil
}
