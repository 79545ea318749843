package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driving"
	"github.com/clinical-labs/medrag-cli/internal/logger"
)

// Ensure AnswerService implements the interfaces.
var (
	_ driving.AnswerService  = (*AnswerService)(nil)
	_ driving.HistoryService = (*AnswerService)(nil)
)

// AnswerService answers free-text questions grounded in a patient's
// stored report history.
type AnswerService struct {
	index     *Index
	retriever *Retriever
	reasoner  driven.Reasoner

	defaultTopK  int
	historyLimit int
}

// NewAnswerService creates an answer service.
func NewAnswerService(index *Index, retriever *Retriever, reasoner driven.Reasoner, defaultTopK, historyLimit int) *AnswerService {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &AnswerService{
		index:        index,
		retriever:    retriever,
		reasoner:     reasoner,
		defaultTopK:  defaultTopK,
		historyLimit: historyLimit,
	}
}

// Answer retrieves context for the question and asks the reasoner.
// Without a patient scope the context is empty and the reasoner is
// expected to say the context is insufficient.
func (s *AnswerService) Answer(ctx context.Context, patientID, question string, topK int) (*driving.AnswerResult, error) {
	logger.Section("Answer")

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = s.defaultTopK
	}

	retrieved, outcome := s.retriever.RetrieveContext(ctx, patientID, question, topK)
	logger.Debug("answer: %d context snippets for patient %q", len(retrieved), patientID)

	contextText := ComposeContext(retrieved)

	answer, err := s.reasoner.AnswerWithContext(ctx, question, contextText)
	if err != nil {
		return nil, fmt.Errorf("answering question: %w", err)
	}

	return &driving.AnswerResult{
		SnippetsUsed:     len(retrieved),
		Context:          contextText,
		Answer:           answer,
		RetrievalOutcome: outcome,
	}, nil
}

// History lists a patient's stored chunks in ingestion order.
func (s *AnswerService) History(ctx context.Context, patientID string, limit int) ([]domain.RetrievalResult, error) {
	if patientID == "" {
		return nil, fmt.Errorf("%w: patient id is required", domain.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	if !s.index.Enabled() {
		return nil, fmt.Errorf("%w: %s", domain.ErrIndexDisabled, s.index.Diagnostic())
	}
	results, outcome := s.index.ListByPatient(ctx, patientID, limit)
	if !outcome.IsOK() {
		return nil, fmt.Errorf("listing history: %s", outcome.Diagnostic)
	}
	return results, nil
}
