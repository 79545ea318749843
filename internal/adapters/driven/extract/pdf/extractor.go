// Package pdf extracts plain text from PDF reports.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Extractor extracts text from PDF files.
type Extractor struct{}

// NewExtractor creates a PDF extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supports reports whether the file is a PDF.
func (e *Extractor) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// Extract returns the plain text content of the PDF. Scanned PDFs
// with no text layer yield ErrExtractionFailure.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parsing %s: %w", domain.ErrExtractionFailure, path, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: extracting text from %s: %w", domain.ErrExtractionFailure, path, err)
	}

	out, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("%w: reading text from %s: %w", domain.ErrExtractionFailure, path, err)
	}

	content := strings.TrimSpace(string(out))
	if content == "" {
		return "", fmt.Errorf("%w: %s has no extractable text", domain.ErrExtractionFailure, path)
	}
	return content, nil
}
