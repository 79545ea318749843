package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

func TestRetrieveContextSimilarityHit(t *testing.T) {
	store := newMockVectorStore()
	dist := 0.2
	store.searchResults = []domain.RetrievalResult{{Text: "similar chunk", Distance: &dist}}
	retriever := NewRetriever(NewIndex(&mockEmbedder{}, store))

	results, outcome := retriever.RetrieveContext(context.Background(), "p1", "query", 3)
	require.Len(t, results, 1)
	assert.Equal(t, "similar chunk", results[0].Text)
	assert.True(t, outcome.IsOK())
}

func TestRetrieveContextFallbackOnEmpty(t *testing.T) {
	store := newMockVectorStore()
	store.listResults = []domain.RetrievalResult{
		{Text: "oldest"},
		{Text: "newer"},
	}
	retriever := NewRetriever(NewIndex(&mockEmbedder{}, store))

	results, outcome := retriever.RetrieveContext(context.Background(), "p1", "query", 3)
	require.Len(t, results, 2)
	assert.Equal(t, "oldest", results[0].Text)
	assert.Equal(t, "newer", results[1].Text)
	assert.True(t, outcome.IsOK())
}

func TestRetrieveContextFallbackTruncated(t *testing.T) {
	store := newMockVectorStore()
	store.listResults = []domain.RetrievalResult{
		{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"},
	}
	retriever := NewRetriever(NewIndex(&mockEmbedder{}, store))

	results, _ := retriever.RetrieveContext(context.Background(), "p1", "query", 2)
	assert.Len(t, results, 2)
}

func TestRetrieveContextNoPatientScope(t *testing.T) {
	store := newMockVectorStore()
	dist := 0.1
	store.searchResults = []domain.RetrievalResult{{Text: "someone else's record", Distance: &dist}}
	store.listResults = []domain.RetrievalResult{{Text: "also not yours"}}
	retriever := NewRetriever(NewIndex(&mockEmbedder{}, store))

	// Regardless of store contents, no scope means no context.
	results, outcome := retriever.RetrieveContext(context.Background(), "", "query", 5)
	assert.Empty(t, results)
	assert.True(t, outcome.IsOK())
}

func TestRetrieveContextSwallowsSearchError(t *testing.T) {
	store := newMockVectorStore()
	store.searchErr = errors.New("db locked")
	store.listResults = []domain.RetrievalResult{{Text: "from fallback"}}
	retriever := NewRetriever(NewIndex(&mockEmbedder{}, store))

	results, outcome := retriever.RetrieveContext(context.Background(), "p1", "query", 3)
	require.Len(t, results, 1)
	assert.Equal(t, "from fallback", results[0].Text)
	assert.Equal(t, domain.OutcomeDegraded, outcome.Status)
}

func TestRetrieveContextBothPathsFail(t *testing.T) {
	store := newMockVectorStore()
	store.searchErr = errors.New("db locked")
	store.listErr = errors.New("db still locked")
	retriever := NewRetriever(NewIndex(&mockEmbedder{}, store))

	results, outcome := retriever.RetrieveContext(context.Background(), "p1", "query", 3)
	assert.Empty(t, results)
	assert.Equal(t, domain.OutcomeDegraded, outcome.Status)
}

func TestRetrieveContextDisabledIndex(t *testing.T) {
	retriever := NewRetriever(NewDisabledIndex("no store"))

	results, outcome := retriever.RetrieveContext(context.Background(), "p1", "query", 3)
	assert.Empty(t, results)
	assert.Equal(t, domain.OutcomeDisabled, outcome.Status)
	assert.Equal(t, "no store", outcome.Diagnostic)
}
