// Package domain contains the core types shared across the medrag
// pipeline: chunks, retrieval results, structured analyses, and the
// typed errors and outcome values used by fail-open components.
//
// Types here have no dependencies on adapters or external services.
package domain
