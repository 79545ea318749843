package services

import (
	"strings"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// ComposeContext joins retrieved chunks into a single context block.
// Each chunk becomes a provenance-tagged paragraph:
//
//	[Prev:<filename>] <text>
//
// separated by blank lines, in the order received. Empty input yields
// an empty string, which callers treat as "no grounding available".
// Identical text appearing in two results is kept twice, and no
// length budget is applied here.
func ComposeContext(results []domain.RetrievalResult) string {
	if len(results) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(results))
	for _, r := range results {
		filename := r.Meta.Filename
		if filename == "" {
			filename = domain.UnknownFilename
		}
		blocks = append(blocks, "[Prev:"+filename+"] "+r.Text)
	}
	return strings.Join(blocks, "\n\n")
}
