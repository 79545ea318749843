// Command medrag ingests medical reports, indexes them per patient,
// and answers questions grounded in the patient's prior reports.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/embedding/ollama"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/embedding/openai"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/extract"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/graph/neo4j"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/reasoner/fallback"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/reasoner/gemini"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/reasoner/mock"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/vectorstore/sqlite"
	"github.com/clinical-labs/medrag-cli/internal/adapters/driving/cli"
	"github.com/clinical-labs/medrag-cli/internal/chunker"
	"github.com/clinical-labs/medrag-cli/internal/config"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
	"github.com/clinical-labs/medrag-cli/internal/core/services"
	"github.com/clinical-labs/medrag-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

const (
	graphConnectTimeout = 10 * time.Second
	embedderPingTimeout = 10 * time.Second
)

func main() {
	if err := cli.Execute(version, buildServices); err != nil {
		os.Exit(1)
	}
}

// buildServices wires the adapters into the core services. The index
// is fail-open: any failure constructing the embedder or the vector
// store yields a disabled index instead of aborting, so analysis
// still works without retrieval.
func buildServices(configPath string) (cli.Services, func(), error) {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return cli.Services{}, nil, fmt.Errorf("resolving config path: %w", err)
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("loading config: %w", err)
	}

	ck, err := chunker.New(
		chunker.WithSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	if err != nil {
		return cli.Services{}, nil, fmt.Errorf("configuring chunker: %w", err)
	}

	index := buildIndex(cfg)
	retriever := services.NewRetriever(index)
	reasoner := buildReasoner(cfg)
	graph := buildGraph(cfg)

	ingest := services.NewIngestService(ck, index, retriever, reasoner, graph, cfg.Retrieval.IngestTopK)
	answer := services.NewAnswerService(index, retriever, reasoner, cfg.Retrieval.AnswerTopK, cfg.Retrieval.HistoryLimit)

	cleanup := func() {
		if err := index.Close(); err != nil {
			logger.Warn("closing index: %v", err)
		}
		if err := reasoner.Close(); err != nil {
			logger.Warn("closing reasoner: %v", err)
		}
		if graph != nil {
			ctx, cancel := context.WithTimeout(context.Background(), graphConnectTimeout)
			defer cancel()
			if err := graph.Close(ctx); err != nil {
				logger.Warn("closing graph store: %v", err)
			}
		}
	}

	return cli.Services{
		Ingest:     ingest,
		Answer:     answer,
		History:    answer,
		Extractors: extract.NewRegistry(),
	}, cleanup, nil
}

func buildIndex(cfg *config.Config) *services.Index {
	if !cfg.Vector.Enabled {
		return services.NewDisabledIndex("vector index disabled in config")
	}

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return services.NewDisabledIndex(err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), embedderPingTimeout)
	defer cancel()
	if err := embedder.Ping(ctx); err != nil {
		return services.NewDisabledIndex(fmt.Sprintf("embedding provider unreachable: %v", err))
	}

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return services.NewDisabledIndex(fmt.Sprintf("resolving data dir: %v", err))
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return services.NewDisabledIndex(fmt.Sprintf("opening vector store: %v", err))
	}

	return services.NewIndex(embedder, store)
}

func buildEmbedder(cfg *config.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:            os.Getenv(cfg.Embedding.APIKeyEnv),
			BaseURL:           cfg.Embedding.BaseURL,
			Model:             cfg.Embedding.Model,
			RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
			Burst:             cfg.Embedding.Burst,
		})
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// buildReasoner selects the reasoning backend. A configured Gemini
// backend is wrapped with the mock fallback so a transient API
// failure still produces a usable analysis.
func buildReasoner(cfg *config.Config) driven.Reasoner {
	if cfg.LLM.Provider != "gemini" {
		if cfg.LLM.Provider != "mock" {
			logger.Warn("unknown llm provider %q, using mock reasoner", cfg.LLM.Provider)
		}
		return mock.NewReasoner()
	}

	apiKey := os.Getenv(cfg.LLM.APIKeyEnv)
	if apiKey == "" {
		logger.Warn("%s not set, using mock reasoner", cfg.LLM.APIKeyEnv)
		return mock.NewReasoner()
	}

	g, err := gemini.NewReasoner(gemini.Config{
		APIKey: apiKey,
		Model:  cfg.LLM.Model,
	})
	if err != nil {
		logger.Warn("configuring gemini: %v, using mock reasoner", err)
		return mock.NewReasoner()
	}
	return fallback.NewReasoner(g, mock.NewReasoner())
}

// buildGraph connects the optional knowledge graph. Any failure is
// logged and the graph is skipped; ingestion works without it.
func buildGraph(cfg *config.Config) driven.GraphStore {
	if cfg.Graph.URI == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), graphConnectTimeout)
	defer cancel()

	gs, err := neo4j.NewGraphStore(ctx, neo4j.Config{
		URI:      cfg.Graph.URI,
		Username: os.Getenv("NEO4J_USER"),
		Password: os.Getenv("NEO4J_PASSWORD"),
	})
	if err != nil {
		logger.Warn("knowledge graph unavailable: %v", err)
		return nil
	}
	return gs
}
