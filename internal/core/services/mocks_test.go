package services

import (
	"context"
	"errors"
	"sync"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

var errStoreFull = errors.New("store full")

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService for testing.
// Each text embeds to a fixed-size vector derived from its length, so
// identical texts are identical vectors. The call counter is guarded:
// ingestion embeds chunks and the retrieval query on the same
// embedder from two goroutines.
type mockEmbedder struct {
	mu       sync.Mutex
	embedErr error
	calls    int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return []float32{float32(len(text)), 1}, nil
}

func (m *mockEmbedder) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := m.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int            { return 2 }
func (m *mockEmbedder) ModelName() string          { return "mock-embedder" }
func (m *mockEmbedder) Ping(context.Context) error { return nil }
func (m *mockEmbedder) Close() error               { return nil }

// mockVectorStore implements driven.VectorStore for testing.
type mockVectorStore struct {
	mu        sync.Mutex
	chunks    []domain.Chunk
	upsertErr error
	// failAfter fails every Upsert once this many have succeeded.
	// Negative means never.
	failAfter int

	searchResults []domain.RetrievalResult
	searchErr     error
	listResults   []domain.RetrievalResult
	listErr       error
}

func newMockVectorStore() *mockVectorStore {
	return &mockVectorStore{failAfter: -1}
}

func (m *mockVectorStore) Upsert(_ context.Context, chunk domain.Chunk, _ []float32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if m.failAfter >= 0 && len(m.chunks) >= m.failAfter {
		return errStoreFull
	}
	m.chunks = append(m.chunks, chunk)
	return nil
}

func (m *mockVectorStore) Search(_ context.Context, _ string, _ []float32, topK int) ([]domain.RetrievalResult, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if topK < len(m.searchResults) {
		return m.searchResults[:topK], nil
	}
	return m.searchResults, nil
}

func (m *mockVectorStore) ListByPatient(_ context.Context, _ string, limit int) ([]domain.RetrievalResult, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit < len(m.listResults) {
		return m.listResults[:limit], nil
	}
	return m.listResults, nil
}

func (m *mockVectorStore) Close() error { return nil }

func (m *mockVectorStore) stored() []domain.Chunk {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Chunk, len(m.chunks))
	copy(out, m.chunks)
	return out
}

// mockReasoner implements driven.Reasoner for testing.
type mockReasoner struct {
	mu             sync.Mutex
	analysis       *domain.Analysis
	analysisErr    error
	answer         string
	answerErr      error
	lastAnalysisIn string
	lastQuestion   string
	lastContext    string
}

func (m *mockReasoner) AnalyzeReport(_ context.Context, text string) (*domain.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastAnalysisIn = text
	if m.analysisErr != nil {
		return nil, m.analysisErr
	}
	if m.analysis == nil {
		return &domain.Analysis{Summary: "mock summary"}, nil
	}
	return m.analysis, nil
}

func (m *mockReasoner) AnswerWithContext(_ context.Context, question, contextText string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastQuestion = question
	m.lastContext = contextText
	if m.answerErr != nil {
		return "", m.answerErr
	}
	if m.answer == "" {
		return "mock answer", nil
	}
	return m.answer, nil
}

func (m *mockReasoner) ModelName() string { return "mock-reasoner" }
func (m *mockReasoner) Close() error      { return nil }

// mockGraphStore implements driven.GraphStore for testing.
type mockGraphStore struct {
	mu        sync.Mutex
	upsertErr error
	visits    []graphVisit
}

type graphVisit struct {
	patientID string
	entities  domain.Entities
}

func (m *mockGraphStore) UpsertVisit(_ context.Context, patientID string, entities domain.Entities) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.visits = append(m.visits, graphVisit{patientID: patientID, entities: entities})
	return nil
}

func (m *mockGraphStore) Close(context.Context) error { return nil }
