package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

func TestIndexAddManySharedTimestamp(t *testing.T) {
	store := newMockVectorStore()
	index := NewIndex(&mockEmbedder{}, store)
	fixed := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	index.SetNow(func() time.Time { return fixed })

	ids, outcome := index.AddMany(context.Background(), "p1", "visit.txt", []string{"first", "second", "third"})
	require.Len(t, ids, 3)
	assert.True(t, outcome.IsOK())

	chunks := store.stored()
	require.Len(t, chunks, 3)
	for i, c := range chunks {
		assert.Equal(t, "p1", c.Meta.PatientID)
		assert.Equal(t, "visit.txt", c.Meta.Filename)
		assert.Equal(t, fixed, c.Meta.Timestamp)
		assert.Equal(t, i, c.Meta.ChunkIndex)
		assert.Equal(t, 3, c.Meta.NumChunks)
	}
}

func TestIndexAddManySentinels(t *testing.T) {
	store := newMockVectorStore()
	index := NewIndex(&mockEmbedder{}, store)

	ids, outcome := index.AddMany(context.Background(), "", "", []string{"text"})
	require.Len(t, ids, 1)
	assert.True(t, outcome.IsOK())

	chunks := store.stored()
	require.Len(t, chunks, 1)
	assert.Equal(t, domain.UnknownPatient, chunks[0].Meta.PatientID)
	assert.Equal(t, domain.UnknownFilename, chunks[0].Meta.Filename)
}

func TestIndexAddManyPartialFailure(t *testing.T) {
	store := newMockVectorStore()
	store.failAfter = 2
	index := NewIndex(&mockEmbedder{}, store)

	ids, outcome := index.AddMany(context.Background(), "p1", "f.txt", []string{"a", "b", "c", "d"})

	// First two stored, the rest skipped, ids of successes returned.
	assert.Len(t, ids, 2)
	assert.Equal(t, domain.OutcomeDegraded, outcome.Status)
	assert.Contains(t, outcome.Diagnostic, "2 of 4")
}

func TestIndexAddManyEmbeddingFailure(t *testing.T) {
	store := newMockVectorStore()
	index := NewIndex(&mockEmbedder{embedErr: errors.New("model offline")}, store)

	ids, outcome := index.AddMany(context.Background(), "p1", "f.txt", []string{"a"})
	assert.Empty(t, ids)
	assert.Equal(t, domain.OutcomeDegraded, outcome.Status)
	assert.Empty(t, store.stored())
}

func TestIndexAddManyEmptyChunks(t *testing.T) {
	index := NewIndex(&mockEmbedder{}, newMockVectorStore())

	ids, outcome := index.AddMany(context.Background(), "p1", "f.txt", nil)
	assert.Empty(t, ids)
	assert.True(t, outcome.IsOK())
}

func TestDisabledIndexNoOps(t *testing.T) {
	index := NewDisabledIndex("store init failed")
	require.False(t, index.Enabled())
	assert.Equal(t, "store init failed", index.Diagnostic())

	ids, outcome := index.AddMany(context.Background(), "p1", "f.txt", []string{"a"})
	assert.Empty(t, ids)
	assert.Equal(t, domain.OutcomeDisabled, outcome.Status)

	results, outcome := index.Query(context.Background(), "p1", "query", 5)
	assert.Equal(t, domain.OutcomeDisabled, outcome.Status)
	assert.Empty(t, results)

	results, outcome = index.ListByPatient(context.Background(), "p1", 5)
	assert.Equal(t, domain.OutcomeDisabled, outcome.Status)
	assert.Empty(t, results)

	assert.NoError(t, index.Close())
}

func TestIndexQuery(t *testing.T) {
	store := newMockVectorStore()
	dist := 0.1
	store.searchResults = []domain.RetrievalResult{
		{Text: "prior report", Distance: &dist},
	}
	index := NewIndex(&mockEmbedder{}, store)

	results, outcome := index.Query(context.Background(), "p1", "question", 5)
	require.True(t, outcome.IsOK())
	require.Len(t, results, 1)
	assert.Equal(t, "prior report", results[0].Text)
}

func TestIndexQueryDegradesOnFailure(t *testing.T) {
	store := newMockVectorStore()
	store.searchErr = errors.New("db locked")
	index := NewIndex(&mockEmbedder{}, store)

	results, outcome := index.Query(context.Background(), "p1", "question", 5)
	assert.Empty(t, results)
	assert.Equal(t, domain.OutcomeDegraded, outcome.Status)
	assert.Contains(t, outcome.Diagnostic, "db locked")

	index = NewIndex(&mockEmbedder{embedErr: errors.New("offline")}, newMockVectorStore())
	results, outcome = index.Query(context.Background(), "p1", "question", 5)
	assert.Empty(t, results)
	assert.Equal(t, domain.OutcomeDegraded, outcome.Status)
}

func TestIndexListByPatientDegradesOnFailure(t *testing.T) {
	store := newMockVectorStore()
	store.listErr = errors.New("disk gone")
	index := NewIndex(&mockEmbedder{}, store)

	results, outcome := index.ListByPatient(context.Background(), "p1", 5)
	assert.Empty(t, results)
	assert.Equal(t, domain.OutcomeDegraded, outcome.Status)
}

func TestIndexQueryEmptyInputs(t *testing.T) {
	index := NewIndex(&mockEmbedder{}, newMockVectorStore())

	results, outcome := index.Query(context.Background(), "p1", "", 5)
	require.True(t, outcome.IsOK())
	assert.Empty(t, results)

	results, outcome = index.Query(context.Background(), "p1", "q", 0)
	require.True(t, outcome.IsOK())
	assert.Empty(t, results)
}
