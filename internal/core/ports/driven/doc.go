// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding providers, vector stores,
// text extractors, reasoning backends, and the knowledge graph.
package driven
