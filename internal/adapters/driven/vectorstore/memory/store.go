// Package memory provides an in-memory vector store. It keeps
// everything in a map behind a mutex, so data is lost on restart.
// Useful for tests and throwaway sessions.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
)

var _ driven.VectorStore = (*Store)(nil)

type record struct {
	chunk     domain.Chunk
	embedding []float32
}

// Store is an in-memory vector store safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records map[string]record
}

// NewStore creates an empty in-memory vector store.
func NewStore() *Store {
	return &Store{
		records: make(map[string]record),
	}
}

// Upsert stores a chunk with its embedding, replacing any existing
// chunk with the same ID.
func (s *Store) Upsert(_ context.Context, chunk domain.Chunk, embedding []float32) error {
	if chunk.ID == "" || chunk.Text == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]float32, len(embedding))
	copy(stored, embedding)
	s.records[chunk.ID] = record{chunk: chunk, embedding: stored}
	return nil
}

// Search returns up to topK chunks nearest to the query vector in
// ascending cosine-distance order, restricted to patientID when
// non-empty.
func (s *Store) Search(_ context.Context, patientID string, query []float32, topK int) ([]domain.RetrievalResult, error) {
	if topK <= 0 || len(query) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.RetrievalResult
	for _, rec := range s.records {
		if patientID != "" && rec.chunk.Meta.PatientID != patientID {
			continue
		}
		if len(rec.embedding) != len(query) {
			continue
		}
		distance := cosineDistance(query, rec.embedding)
		results = append(results, domain.RetrievalResult{
			Text:     rec.chunk.Text,
			Meta:     rec.chunk.Meta,
			Distance: &distance,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Distance < *results[j].Distance
	})
	if len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

// ListByPatient returns up to limit chunks for one patient, ordered by
// (timestamp, chunk index) ascending.
func (s *Store) ListByPatient(_ context.Context, patientID string, limit int) ([]domain.RetrievalResult, error) {
	if patientID == "" || limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.RetrievalResult
	for _, rec := range s.records {
		if rec.chunk.Meta.PatientID != patientID {
			continue
		}
		results = append(results, domain.RetrievalResult{
			Text: rec.chunk.Text,
			Meta: rec.chunk.Meta,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if !results[i].Meta.Timestamp.Equal(results[j].Meta.Timestamp) {
			return results[i].Meta.Timestamp.Before(results[j].Meta.Timestamp)
		}
		return results[i].Meta.ChunkIndex < results[j].Meta.ChunkIndex
	})
	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}

func cosineDistance(a, b []float32) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(magA)*math.Sqrt(magB))
}
