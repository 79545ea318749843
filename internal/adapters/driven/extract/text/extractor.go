// Package text extracts content from plain-text report files.
package text

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// supportedExtensions lists the plain-text formats handled here.
var supportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".text": true,
}

// Extractor reads plain-text files as-is.
type Extractor struct{}

// NewExtractor creates a plain-text extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Supports reports whether the file extension is a plain-text format.
func (e *Extractor) Supports(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extract reads the file and returns its trimmed content.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return "", fmt.Errorf("%w: %s is empty", domain.ErrExtractionFailure, path)
	}
	return content, nil
}
