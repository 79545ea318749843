// Package extract routes report files to a text extractor based on
// file extension.
package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/extract/pdf"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/extract/text"
	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
)

// Registry holds the known extractors in lookup order.
type Registry struct {
	extractors []driven.TextExtractor
}

// NewRegistry creates a registry with the built-in extractors.
func NewRegistry() *Registry {
	return &Registry{
		extractors: []driven.TextExtractor{
			pdf.NewExtractor(),
			text.NewExtractor(),
		},
	}
}

// For returns the extractor responsible for the given path, or
// domain.ErrUnsupportedFormat when no extractor claims it.
func (r *Registry) For(path string) (driven.TextExtractor, error) {
	for _, e := range r.extractors {
		if e.Supports(path) {
			return e, nil
		}
	}
	ext := strings.ToLower(filepath.Ext(path))
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, ext)
}
