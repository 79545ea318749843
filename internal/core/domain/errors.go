package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidChunking indicates an invalid chunk size/overlap
	// combination. Fatal at construction, never per call.
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrUnsupportedFormat indicates a file type no extractor handles.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrExtractionFailure indicates text extraction failed for a
	// supported format.
	ErrExtractionFailure = errors.New("text extraction failed")

	// ErrIndexDisabled indicates the embedding index could not be
	// constructed and is running as a no-op for the process lifetime.
	ErrIndexDisabled = errors.New("embedding index disabled")

	// ErrReasonerUnavailable indicates no reasoning backend is
	// configured. Analysis and answering degrade to canned output.
	ErrReasonerUnavailable = errors.New("reasoner unavailable")

	// ErrGraphUnavailable indicates the knowledge graph store is not
	// configured. Visit upserts are skipped.
	ErrGraphUnavailable = errors.New("graph store unavailable")
)
