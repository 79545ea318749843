package domain

import "time"

// Sentinel values substituted at write time so every stored chunk has a
// non-empty partition key and provenance label.
const (
	// UnknownPatient is the partition key for chunks stored without a patient id.
	UnknownPatient = "unknown"

	// UnknownFilename is the provenance label for chunks stored without a filename.
	UnknownFilename = "unknown"
)

// ChunkMeta holds the provenance metadata persisted with every chunk.
type ChunkMeta struct {
	// PatientID is the partition key. Never empty once stored; the
	// UnknownPatient sentinel is substituted when the caller has none.
	PatientID string

	// Filename is the originating document's name, or UnknownFilename.
	Filename string

	// Timestamp is the ingestion time. All chunks from one document
	// share the same value (batch-stamped).
	Timestamp time.Time

	// ChunkIndex is the position within the originating document's
	// chunk sequence; 0 <= ChunkIndex < NumChunks.
	ChunkIndex int

	// NumChunks is the total number of chunks the document produced.
	NumChunks int
}

// Chunk is the atomic unit of indexed report text: a bounded,
// possibly-overlapping substring of a source document. Chunks are
// created once during ingestion and never mutated.
type Chunk struct {
	// ID is the unique identifier, assigned at creation.
	ID string

	// Text is the chunk content. Non-empty, at most the configured
	// chunk size (whole-document pass-through excepted).
	Text string

	// Meta carries the provenance fields.
	Meta ChunkMeta
}

// RetrievalResult is a transient similarity or listing hit. It is never
// persisted.
type RetrievalResult struct {
	// Text is the stored chunk text.
	Text string

	// Meta carries the stored chunk's provenance fields.
	Meta ChunkMeta

	// Distance is the similarity distance (lower is more similar) when
	// the result came from a similarity query, or nil when it came
	// from the unranked fallback listing.
	Distance *float64
}
