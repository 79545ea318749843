package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

func TestSupports(t *testing.T) {
	e := NewExtractor()
	assert.True(t, e.Supports("report.pdf"))
	assert.True(t, e.Supports("REPORT.PDF"))
	assert.False(t, e.Supports("report.txt"))
}

func TestExtractInvalidPDF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o600))

	e := NewExtractor()
	_, err := e.Extract(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrExtractionFailure)
}

func TestExtractMissingFile(t *testing.T) {
	e := NewExtractor()
	_, err := e.Extract(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}
