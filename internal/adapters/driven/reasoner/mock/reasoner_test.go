package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeReportDeterministic(t *testing.T) {
	r := NewReasoner()

	first, err := r.AnalyzeReport(context.Background(), "any report")
	require.NoError(t, err)
	second, err := r.AnalyzeReport(context.Background(), "a different report")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.Summary)
	assert.NotEmpty(t, first.KeyFindings)
	assert.NotEmpty(t, first.Recommendations)
	assert.NotEmpty(t, first.Disclaimer)
}

func TestAnswerWithContext(t *testing.T) {
	r := NewReasoner()

	answer, err := r.AnswerWithContext(context.Background(), "question", "context")
	require.NoError(t, err)
	assert.NotEmpty(t, answer)
}
