package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/clinical-labs/medrag-cli/internal/core/domain"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driving"
)

// IngestInput is the input schema for the ingest_report tool.
type IngestInput struct {
	PatientID string `json:"patient_id,omitempty" jsonschema:"patient id to file the report under"`
	Text      string `json:"text" jsonschema:"the full report text to ingest"`
	Filename  string `json:"filename,omitempty" jsonschema:"source filename for provenance"`
}

// IngestOutput is the output schema for the ingest_report tool.
type IngestOutput struct {
	ChunksIndexed int              `json:"chunks_indexed"`
	ContextUsed   bool             `json:"context_used"`
	Summary       string           `json:"summary,omitempty"`
	KeyFindings   []string         `json:"key_findings,omitempty"`
	RedFlags      []string         `json:"red_flags,omitempty"`
	Insights      []domain.Insight `json:"insights,omitempty"`
	IndexStatus   string           `json:"index_status"`
}

// AskInput is the input schema for the ask_patient tool.
type AskInput struct {
	PatientID string `json:"patient_id,omitempty" jsonschema:"patient id to scope retrieval to"`
	Question  string `json:"question" jsonschema:"the question to answer from patient history"`
	TopK      int    `json:"top_k,omitempty" jsonschema:"number of context snippets to retrieve (default 5)"`
}

// AskOutput is the output schema for the ask_patient tool.
type AskOutput struct {
	Answer       string `json:"answer"`
	SnippetsUsed int    `json:"snippets_used"`
}

// HistoryInput is the input schema for the patient_history tool.
type HistoryInput struct {
	PatientID string `json:"patient_id" jsonschema:"patient id to list stored reports for"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of chunks (default 50)"`
}

// HistoryOutput is the output schema for the patient_history tool.
type HistoryOutput struct {
	Chunks []HistoryChunk `json:"chunks"`
	Count  int            `json:"count"`
}

// HistoryChunk is one stored chunk in a history listing.
type HistoryChunk struct {
	Filename   string `json:"filename"`
	Timestamp  string `json:"timestamp"`
	ChunkIndex int    `json:"chunk_index"`
	NumChunks  int    `json:"num_chunks"`
	Text       string `json:"text"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest_report",
		Description: "Ingest a medical report: chunk and index it under a patient and return the structured analysis",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_patient",
		Description: "Answer a question grounded in a patient's stored report history",
	}, s.handleAsk)

	if s.ports.History != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "patient_history",
			Description: "List the report chunks stored for a patient in ingestion order",
		}, s.handleHistory)
	}
}

// handleIngest handles the ingest_report tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	result, err := s.ports.Ingest.Ingest(ctx, driving.IngestRequest{
		PatientID: input.PatientID,
		Text:      input.Text,
		Filename:  input.Filename,
	})
	if err != nil {
		return nil, IngestOutput{}, err
	}

	output := IngestOutput{
		ChunksIndexed: result.ChunksIndexed,
		ContextUsed:   result.Context != "",
		Insights:      result.Insights,
		IndexStatus:   string(result.IndexOutcome.Status),
	}
	if result.Analysis != nil {
		output.Summary = result.Analysis.Summary
		output.KeyFindings = result.Analysis.KeyFindings
		output.RedFlags = result.Analysis.RedFlags
	}

	return nil, output, nil
}

// handleAsk handles the ask_patient tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	result, err := s.ports.Answer.Answer(ctx, input.PatientID, input.Question, input.TopK)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:       result.Answer,
		SnippetsUsed: result.SnippetsUsed,
	}, nil
}

// handleHistory handles the patient_history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	results, err := s.ports.History.History(ctx, input.PatientID, input.Limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Chunks: make([]HistoryChunk, len(results)),
		Count:  len(results),
	}
	for i, r := range results {
		output.Chunks[i] = HistoryChunk{
			Filename:   r.Meta.Filename,
			Timestamp:  r.Meta.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
			ChunkIndex: r.Meta.ChunkIndex,
			NumChunks:  r.Meta.NumChunks,
			Text:       r.Text,
		}
	}

	return nil, output, nil
}
