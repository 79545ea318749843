// Package neo4j provides a knowledge graph adapter storing patients,
// visits, medications, labs and conditions in Neo4j.
package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driven"
)

// Ensure GraphStore implements the interface.
var _ driven.GraphStore = (*GraphStore)(nil)

// Config holds connection settings for the Neo4j graph store.
type Config struct {
	// URI is the bolt/neo4j connection URI (required).
	URI string

	// Username and Password authenticate against the database.
	Username string
	Password string
}

// GraphStore writes visit entities into a Neo4j knowledge graph.
type GraphStore struct {
	driver neo4j.DriverWithContext
}

// NewGraphStore creates a graph store and verifies connectivity.
func NewGraphStore(ctx context.Context, cfg Config) (*GraphStore, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("neo4j: URI is required")
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: creating driver: %w", domain.ErrGraphUnavailable, err)
	}

	verifyCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(verifyCtx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("%w: verifying connectivity: %w", domain.ErrGraphUnavailable, err)
	}

	return &GraphStore{driver: driver}, nil
}

// UpsertVisit records a new visit for the patient and attaches the
// extracted medications, labs and conditions to it. Each ingestion
// creates a fresh Visit node; medications and conditions are merged
// by name, lab results are always new nodes.
func (g *GraphStore) UpsertVisit(ctx context.Context, patientID string, entities domain.Entities) error {
	if patientID == "" {
		return domain.ErrInvalidInput
	}

	session := g.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	visitID := uuid.New().String()

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		_, err := tx.Run(ctx, `
			MERGE (p:Patient {patient_id: $pid})
			CREATE (v:Visit {id: $vid, ts: datetime()})
			MERGE (p)-[:HAS_VISIT]->(v)
		`, map[string]any{"pid": patientID, "vid": visitID})
		if err != nil {
			return nil, err
		}

		for _, med := range entities.Medications {
			if _, err := tx.Run(ctx, `
				MATCH (v:Visit {id: $vid})
				MERGE (m:Medication {name: $name})
				MERGE (v)-[:HAS_MED]->(m)
			`, map[string]any{"vid": visitID, "name": med}); err != nil {
				return nil, err
			}
		}

		for _, lab := range entities.Labs {
			if _, err := tx.Run(ctx, `
				MATCH (v:Visit {id: $vid})
				CREATE (l:LabResult {name: $name, value: $value})
				MERGE (v)-[:HAS_LAB]->(l)
			`, map[string]any{"vid": visitID, "name": lab.Name, "value": lab.Value}); err != nil {
				return nil, err
			}
		}

		for _, cond := range entities.Conditions {
			if _, err := tx.Run(ctx, `
				MATCH (v:Visit {id: $vid})
				MERGE (c:Condition {name: $name})
				MERGE (v)-[:HAS_CONDITION]->(c)
			`, map[string]any{"vid": visitID, "name": cond}); err != nil {
				return nil, err
			}
		}

		return nil, nil
	})
	if err != nil {
		return fmt.Errorf("%w: upserting visit: %w", domain.ErrGraphUnavailable, err)
	}
	return nil
}

// Close shuts down the underlying driver.
func (g *GraphStore) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}
