// Package sqlite provides the default durable vector store, a
// single-file SQLite database holding chunk text, provenance metadata
// and embeddings.
//
// Similarity search is a brute-force cosine scan over the patient
// partition. Per-patient report volumes are small, so a linear scan
// beats the operational cost of a dedicated ANN index here.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/vectorstore/sqlite/migrations"
	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a vector store at the specified data directory.
// If dataDir is empty, defaults to ~/.medrag/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".medrag", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "vectors.db")

	// WAL mode for concurrent readers alongside the writer.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Upsert durably stores a chunk together with its embedding.
func (s *Store) Upsert(ctx context.Context, chunk domain.Chunk, embedding []float32) error {
	if chunk.ID == "" || chunk.Text == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chunks (id, patient_id, filename, timestamp, chunk_index, num_chunks, text, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			patient_id = excluded.patient_id,
			filename = excluded.filename,
			timestamp = excluded.timestamp,
			chunk_index = excluded.chunk_index,
			num_chunks = excluded.num_chunks,
			text = excluded.text,
			embedding = excluded.embedding
	`, chunk.ID, chunk.Meta.PatientID, chunk.Meta.Filename, chunk.Meta.Timestamp.UTC(),
		chunk.Meta.ChunkIndex, chunk.Meta.NumChunks, chunk.Text, float32SliceToBytes(embedding))

	if err != nil {
		return fmt.Errorf("saving chunk: %w", err)
	}
	return nil
}

// Search returns up to topK chunks nearest to the query vector in
// ascending cosine-distance order, restricted to patientID when
// non-empty.
func (s *Store) Search(ctx context.Context, patientID string, query []float32, topK int) ([]domain.RetrievalResult, error) {
	if topK <= 0 || len(query) == 0 {
		return nil, nil
	}

	q := `
		SELECT patient_id, filename, timestamp, chunk_index, num_chunks, text, embedding
		FROM chunks
	`
	var args []any
	if patientID != "" {
		q += " WHERE patient_id = ?"
		args = append(args, patientID)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievalResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.RetrievalResult
		var embeddingBlob []byte
		if err := rows.Scan(&r.Meta.PatientID, &r.Meta.Filename, &r.Meta.Timestamp,
			&r.Meta.ChunkIndex, &r.Meta.NumChunks, &r.Text, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}

		stored := bytesToFloat32Slice(embeddingBlob)
		if len(stored) != len(query) {
			// Dimension mismatch, embedder model changed. Skip.
			continue
		}

		distance := cosineDistance(query, stored)
		r.Distance = &distance
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return *results[i].Distance < *results[j].Distance
	})
	if len(results) > topK {
		results = results[:topK]
	}

	return results, nil
}

// ListByPatient returns up to limit chunks for one patient, ordered by
// (timestamp, chunk_index) ascending.
func (s *Store) ListByPatient(ctx context.Context, patientID string, limit int) ([]domain.RetrievalResult, error) {
	if patientID == "" || limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT patient_id, filename, timestamp, chunk_index, num_chunks, text
		FROM chunks
		WHERE patient_id = ?
		ORDER BY timestamp ASC, chunk_index ASC
		LIMIT ?
	`, patientID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievalResult //nolint:prealloc // size unknown from query
	for rows.Next() {
		var r domain.RetrievalResult
		if err := rows.Scan(&r.Meta.PatientID, &r.Meta.Filename, &r.Meta.Timestamp,
			&r.Meta.ChunkIndex, &r.Meta.NumChunks, &r.Text); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return results, nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// cosineDistance returns 1 - cosine similarity, so identical vectors
// score 0 and orthogonal vectors score 1. Zero-magnitude vectors are
// treated as maximally distant.
func cosineDistance(a, b []float32) float64 {
	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}
	if magA == 0 || magB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(magA)*math.Sqrt(magB))
}
