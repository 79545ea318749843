package driven

import "context"

// TextExtractor converts a report file into plain text.
//
// Implementations return domain.ErrUnsupportedFormat for file types
// they do not handle and domain.ErrExtractionFailure (wrapped) when a
// supported file cannot be read.
type TextExtractor interface {
	// Extract reads the file at path and returns its text content.
	Extract(ctx context.Context, path string) (string, error)

	// Supports reports whether the extractor handles the file at path,
	// judged by extension.
	Supports(path string) bool
}
