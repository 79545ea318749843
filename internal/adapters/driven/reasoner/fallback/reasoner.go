// Package fallback wraps a primary reasoner with a backup. When the
// primary fails, the backup answers instead, so a flaky or
// misconfigured model API never breaks ingestion.
package fallback

import (
	"context"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
	"github.com/clinical-labs/medrag-cli/internal/logger"
)

// Ensure Reasoner implements the interface.
var _ driven.Reasoner = (*Reasoner)(nil)

// Reasoner delegates to primary and falls back to backup on error.
type Reasoner struct {
	primary driven.Reasoner
	backup  driven.Reasoner
}

// NewReasoner creates a fallback reasoner. Both arguments are required.
func NewReasoner(primary, backup driven.Reasoner) *Reasoner {
	return &Reasoner{
		primary: primary,
		backup:  backup,
	}
}

// AnalyzeReport tries the primary reasoner, then the backup.
func (r *Reasoner) AnalyzeReport(ctx context.Context, text string) (*domain.Analysis, error) {
	analysis, err := r.primary.AnalyzeReport(ctx, text)
	if err == nil {
		return analysis, nil
	}
	logger.Warn("reasoner %s failed, falling back to %s: %v", r.primary.ModelName(), r.backup.ModelName(), err)
	return r.backup.AnalyzeReport(ctx, text)
}

// AnswerWithContext tries the primary reasoner, then the backup.
func (r *Reasoner) AnswerWithContext(ctx context.Context, question, contextText string) (string, error) {
	answer, err := r.primary.AnswerWithContext(ctx, question, contextText)
	if err == nil {
		return answer, nil
	}
	logger.Warn("reasoner %s failed, falling back to %s: %v", r.primary.ModelName(), r.backup.ModelName(), err)
	return r.backup.AnswerWithContext(ctx, question, contextText)
}

// ModelName returns the primary model's name.
func (r *Reasoner) ModelName() string {
	return r.primary.ModelName()
}

// Close closes both reasoners, returning the first error.
func (r *Reasoner) Close() error {
	errPrimary := r.primary.Close()
	errBackup := r.backup.Close()
	if errPrimary != nil {
		return errPrimary
	}
	return errBackup
}
