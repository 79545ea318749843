// Package mcp provides an MCP (Model Context Protocol) server adapter
// for medrag. It lets AI assistants ingest reports and ask
// patient-scoped questions against the local index.
package mcp

import "errors"

// ErrMissingIngestService is returned when the ingest service is not provided.
var ErrMissingIngestService = errors.New("mcp: ingest service is required")

// ErrMissingAnswerService is returned when the answer service is not provided.
var ErrMissingAnswerService = errors.New("mcp: answer service is required")
