// Package chunker splits report text into fixed-size overlapping
// windows suitable for embedding.
package chunker

import (
	"fmt"
	"strings"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

// DefaultSize is the default number of characters per chunk.
const DefaultSize = 800

// DefaultOverlap is the default number of overlapping characters
// between consecutive chunks.
const DefaultOverlap = 200

// Chunker produces overlapping fixed-size windows over report text.
type Chunker struct {
	size    int
	overlap int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithSize sets the chunk size in characters.
func WithSize(size int) Option {
	return func(c *Chunker) {
		c.size = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		c.overlap = overlap
	}
}

// New creates a chunker. The configuration is validated once here:
// a non-positive size, a negative overlap, or overlap >= size would
// make the window loop non-terminating, so construction fails instead.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		size:    DefaultSize,
		overlap: DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.size <= 0 {
		return nil, fmt.Errorf("%w: size %d must be positive", domain.ErrInvalidChunking, c.size)
	}
	if c.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must not be negative", domain.ErrInvalidChunking, c.overlap)
	}
	if c.overlap >= c.size {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than size %d",
			domain.ErrInvalidChunking, c.overlap, c.size)
	}

	return c, nil
}

// Size returns the configured chunk size.
func (c *Chunker) Size() int {
	return c.size
}

// Overlap returns the configured chunk overlap.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Chunk splits text into overlapping windows. Leading and trailing
// whitespace is trimmed first. Empty or whitespace-only input yields no
// chunks; this signals "nothing to index" and is not an error. Text no
// longer than the chunk size is returned whole as a single chunk.
// Every character of the trimmed input appears in at least one chunk;
// consecutive chunks overlap by the configured amount, less only at
// the end of the text.
func (c *Chunker) Chunk(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if len(runes) <= c.size {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/(c.size-c.overlap)+1)
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
		start = end - c.overlap
		if start < 0 {
			start = 0
		}
	}

	return chunks
}
