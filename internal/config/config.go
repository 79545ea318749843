// Package config loads the medrag configuration from a TOML file.
// A missing file yields the defaults; secrets are taken from the
// environment, never from the file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultChunkSize     = 800
	DefaultChunkOverlap  = 200
	DefaultIngestTopK    = 3
	DefaultAnswerTopK    = 5
	DefaultHistoryLimit  = 50
	DefaultEmbedProvider = "openai"
	DefaultLLMProvider   = "mock"
)

// Chunking configures the text chunker.
type Chunking struct {
	// Size is the chunk size in characters.
	Size int `toml:"size"`

	// Overlap is the overlap between consecutive chunks in characters.
	// Must be smaller than Size.
	Overlap int `toml:"overlap"`
}

// Retrieval configures context retrieval defaults.
type Retrieval struct {
	// IngestTopK is the number of prior chunks retrieved while
	// ingesting a new report.
	IngestTopK int `toml:"ingest_top_k"`

	// AnswerTopK is the default number of chunks retrieved for
	// question answering.
	AnswerTopK int `toml:"answer_top_k"`

	// HistoryLimit caps the unranked history listing.
	HistoryLimit int `toml:"history_limit"`
}

// Vector configures the embedding index.
type Vector struct {
	// Enabled toggles the whole index. When false every index
	// operation is a no-op returning empty results.
	Enabled bool `toml:"enabled"`
}

// Embedding configures the embedding provider.
type Embedding struct {
	// Provider selects the embedder: "openai" or "ollama".
	Provider string `toml:"provider"`

	// Model overrides the provider's default embedding model.
	Model string `toml:"model"`

	// BaseURL overrides the provider's default API endpoint.
	BaseURL string `toml:"base_url"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`

	// RequestsPerSecond throttles embedding API calls. Zero disables
	// throttling.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// Burst is the token-bucket burst size for the throttle.
	Burst int `toml:"burst"`
}

// LLM configures the reasoning backend.
type LLM struct {
	// Provider selects the reasoner: "gemini" or "mock".
	Provider string `toml:"provider"`

	// Model overrides the provider's default model.
	Model string `toml:"model"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `toml:"api_key_env"`
}

// Graph configures the optional knowledge graph connection. The
// username and password come from NEO4J_USER and NEO4J_PASSWORD.
type Graph struct {
	// URI is the bolt/neo4j connection URI. Empty disables the graph.
	URI string `toml:"uri"`
}

// Config is the root configuration.
type Config struct {
	// DataDir holds the vector store database. Defaults to
	// ~/.medrag/data.
	DataDir string `toml:"data_dir"`

	Chunking  Chunking  `toml:"chunking"`
	Retrieval Retrieval `toml:"retrieval"`
	Vector    Vector    `toml:"vector"`
	Embedding Embedding `toml:"embedding"`
	LLM       LLM       `toml:"llm"`
	Graph     Graph     `toml:"graph"`
}

// DefaultPath returns the default config file location,
// ~/.medrag/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".medrag", "config.toml"), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Chunking:  Chunking{Size: DefaultChunkSize, Overlap: DefaultChunkOverlap},
		Retrieval: Retrieval{IngestTopK: DefaultIngestTopK, AnswerTopK: DefaultAnswerTopK, HistoryLimit: DefaultHistoryLimit},
		Vector:    Vector{Enabled: true},
		Embedding: Embedding{Provider: DefaultEmbedProvider, APIKeyEnv: "OPENAI_API_KEY"},
		LLM:       LLM{Provider: DefaultLLMProvider, APIKeyEnv: "GEMINI_API_KEY"},
	}
}

// Load reads the config from path. A missing file returns the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func applyDefaults(cfg *Config) {
	if cfg.Chunking.Size == 0 {
		cfg.Chunking.Size = DefaultChunkSize
	}
	if cfg.Retrieval.IngestTopK == 0 {
		cfg.Retrieval.IngestTopK = DefaultIngestTopK
	}
	if cfg.Retrieval.AnswerTopK == 0 {
		cfg.Retrieval.AnswerTopK = DefaultAnswerTopK
	}
	if cfg.Retrieval.HistoryLimit == 0 {
		cfg.Retrieval.HistoryLimit = DefaultHistoryLimit
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = DefaultEmbedProvider
	}
	if cfg.Embedding.APIKeyEnv == "" {
		cfg.Embedding.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.LLM.Provider == "" {
		cfg.LLM.Provider = DefaultLLMProvider
	}
	if cfg.LLM.APIKeyEnv == "" {
		cfg.LLM.APIKeyEnv = "GEMINI_API_KEY"
	}
}

// ResolveDataDir expands the configured data directory, defaulting to
// ~/.medrag/data and creating it when absent.
func (c *Config) ResolveDataDir() (string, error) {
	dir := c.DataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".medrag", "data")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}
