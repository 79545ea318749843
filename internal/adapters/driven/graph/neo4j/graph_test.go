package neo4j

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
)

func TestNewGraphStoreRequiresURI(t *testing.T) {
	_, err := NewGraphStore(context.Background(), Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "URI")
}

func TestNewGraphStoreInvalidScheme(t *testing.T) {
	_, err := NewGraphStore(context.Background(), Config{URI: "ftp://localhost"})
	assert.ErrorIs(t, err, domain.ErrGraphUnavailable)
}

func TestUpsertVisitRejectsEmptyPatientID(t *testing.T) {
	g := &GraphStore{}
	err := g.UpsertVisit(context.Background(), "", domain.Entities{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
