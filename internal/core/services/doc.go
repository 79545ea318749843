// Package services implements the driving port interfaces.
// Services contain the retrieval pipeline logic and orchestrate
// calls to driven ports (adapters).
//
// Failures in indexing, retrieval and the knowledge graph degrade to
// empty results with a logged warning rather than propagating, so a
// broken backing service never fails an ingestion or a question.
package services
