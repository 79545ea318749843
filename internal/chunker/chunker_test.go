package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, c.Size())
	assert.Equal(t, DefaultOverlap, c.Overlap())
}

func TestNew_RejectsInvalidConfiguration(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"overlap equals size", []Option{WithSize(100), WithOverlap(100)}},
		{"overlap exceeds size", []Option{WithSize(100), WithOverlap(200)}},
		{"zero size", []Option{WithSize(0)}},
		{"negative overlap", []Option{WithOverlap(-1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidChunking)
		})
	}
}

func TestChunk_EmptyInput(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	assert.Empty(t, c.Chunk(""))
	assert.Empty(t, c.Chunk("   "))
	assert.Empty(t, c.Chunk("\n\t  \n"))
}

func TestChunk_ShortInputPassesThrough(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	text := "Patient presents with elevated blood pressure."
	chunks := c.Chunk(text)
	require.Len(t, chunks, 1)
	assert.Equal(t, text, chunks[0])

	// Exactly at the boundary still passes through whole.
	exact := strings.Repeat("x", DefaultSize)
	chunks = c.Chunk(exact)
	require.Len(t, chunks, 1)
	assert.Equal(t, exact, chunks[0])
}

func TestChunk_TrimsWhitespaceBeforeSplitting(t *testing.T) {
	c, err := New()
	require.NoError(t, err)

	chunks := c.Chunk("  report text  \n")
	require.Len(t, chunks, 1)
	assert.Equal(t, "report text", chunks[0])
}

func TestChunk_WindowOffsets(t *testing.T) {
	c, err := New(WithSize(800), WithOverlap(200))
	require.NoError(t, err)

	text := strings.Repeat("a", 2000)
	chunks := c.Chunk(text)

	// Windows at [0,800), [600,1400), [1200,2000).
	require.Len(t, chunks, 3)
	assert.Equal(t, text[0:800], chunks[0])
	assert.Equal(t, text[600:1400], chunks[1])
	assert.Equal(t, text[1200:2000], chunks[2])
}

func TestChunk_FullCoverage(t *testing.T) {
	c, err := New(WithSize(10), WithOverlap(3))
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
	}{
		{"just over one window", strings.Repeat("b", 11)},
		{"several windows", strings.Repeat("c", 47)},
		{"window-aligned length", strings.Repeat("d", 24)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := c.Chunk(tt.text)
			require.NotEmpty(t, chunks)

			// Reconstruct coverage: each position of the input must
			// fall inside at least one window.
			covered := make([]bool, len(tt.text))
			offset := 0
			for i, chunk := range chunks {
				if i > 0 {
					offset += c.Size() - c.Overlap()
					if offset+len(chunk) > len(tt.text) {
						offset = len(tt.text) - len(chunk)
					}
				}
				for j := range chunk {
					covered[offset+j] = true
				}
				assert.LessOrEqual(t, len(chunk), c.Size())
			}
			for i, ok := range covered {
				assert.True(t, ok, "position %d not covered", i)
			}

			// Final chunk must end exactly at the end of the text.
			last := chunks[len(chunks)-1]
			assert.Equal(t, tt.text[len(tt.text)-len(last):], last)
		})
	}
}

func TestChunk_ConsecutiveChunksOverlap(t *testing.T) {
	c, err := New(WithSize(800), WithOverlap(200))
	require.NoError(t, err)

	// Distinct characters so overlap regions are verifiable.
	var b strings.Builder
	for i := 0; i < 2000; i++ {
		b.WriteByte(byte('a' + i%26))
	}
	text := b.String()

	chunks := c.Chunk(text)
	require.Len(t, chunks, 3)
	assert.Equal(t, chunks[0][600:800], chunks[1][0:200])
	assert.Equal(t, chunks[1][600:800], chunks[2][0:200])
}
