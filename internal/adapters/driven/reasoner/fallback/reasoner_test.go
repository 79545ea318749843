package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

type fakeReasoner struct {
	name        string
	analysis    *domain.Analysis
	answer      string
	err         error
	analyzeCall int
	answerCall  int
}

func (f *fakeReasoner) AnalyzeReport(context.Context, string) (*domain.Analysis, error) {
	f.analyzeCall++
	if f.err != nil {
		return nil, f.err
	}
	return f.analysis, nil
}

func (f *fakeReasoner) AnswerWithContext(context.Context, string, string) (string, error) {
	f.answerCall++
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeReasoner) ModelName() string { return f.name }
func (f *fakeReasoner) Close() error      { return nil }

func TestPrimarySucceeds(t *testing.T) {
	primary := &fakeReasoner{name: "primary", analysis: &domain.Analysis{Summary: "from primary"}, answer: "primary answer"}
	backup := &fakeReasoner{name: "backup", analysis: &domain.Analysis{Summary: "from backup"}}

	r := NewReasoner(primary, backup)

	analysis, err := r.AnalyzeReport(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "from primary", analysis.Summary)
	assert.Zero(t, backup.analyzeCall)

	answer, err := r.AnswerWithContext(context.Background(), "q", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "primary answer", answer)
	assert.Zero(t, backup.answerCall)
}

func TestPrimaryFailsBackupAnswers(t *testing.T) {
	primary := &fakeReasoner{name: "primary", err: errors.New("boom")}
	backup := &fakeReasoner{name: "backup", analysis: &domain.Analysis{Summary: "from backup"}, answer: "backup answer"}

	r := NewReasoner(primary, backup)

	analysis, err := r.AnalyzeReport(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "from backup", analysis.Summary)
	assert.Equal(t, 1, primary.analyzeCall)

	answer, err := r.AnswerWithContext(context.Background(), "q", "ctx")
	require.NoError(t, err)
	assert.Equal(t, "backup answer", answer)
}

func TestBothFail(t *testing.T) {
	primary := &fakeReasoner{name: "primary", err: errors.New("primary down")}
	backup := &fakeReasoner{name: "backup", err: errors.New("backup down")}

	r := NewReasoner(primary, backup)

	_, err := r.AnalyzeReport(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup down")
}

func TestModelNameIsPrimary(t *testing.T) {
	r := NewReasoner(&fakeReasoner{name: "primary"}, &fakeReasoner{name: "backup"})
	assert.Equal(t, "primary", r.ModelName())
}
