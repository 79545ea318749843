package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/clinical-labs/medrag-cli/internal/core/ports/driving"
)

var (
	ingestPatient string
	ingestJSON    bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a medical report",
	Long: `Extracts text from a report file (PDF, TXT or MD), chunks and indexes
it under the given patient, retrieves prior context and prints the
structured analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestPatient, "patient", "p", "", "patient id to file the report under")
	ingestCmd.Flags().BoolVar(&ingestJSON, "json", false, "output the full result as JSON")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := args[0]

	if ingestService == nil || extractors == nil {
		return fmt.Errorf("ingest %w", errNotConfigured)
	}

	extractor, err := extractors.For(path)
	if err != nil {
		return err
	}

	text, err := extractor.Extract(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("extracting text: %w", err)
	}

	result, err := ingestService.Ingest(cmd.Context(), driving.IngestRequest{
		PatientID: ingestPatient,
		Text:      text,
		Filename:  filepath.Base(path),
	})
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	if ingestJSON {
		return outputJSON(cmd, result)
	}
	return outputIngestSummary(cmd, result)
}

func outputIngestSummary(cmd *cobra.Command, result *driving.IngestResult) error {
	cmd.Printf("Indexed %d chunks", result.ChunksIndexed)
	if !result.IndexOutcome.IsOK() {
		cmd.Printf(" (%s: %s)", result.IndexOutcome.Status, result.IndexOutcome.Diagnostic)
	}
	cmd.Println()

	if result.Context != "" {
		cmd.Println("Prior context was used for the analysis.")
	}

	if result.Analysis != nil {
		cmd.Println()
		cmd.Println("Summary:")
		cmd.Printf("  %s\n", result.Analysis.Summary)
		printList(cmd, "Key findings", result.Analysis.KeyFindings)
		printList(cmd, "Recommendations", result.Analysis.Recommendations)
		printList(cmd, "Red flags", result.Analysis.RedFlags)
	}

	if len(result.Insights) > 0 {
		cmd.Println()
		cmd.Println("Insights:")
		for _, in := range result.Insights {
			cmd.Printf("  [%s] %s: %s\n", in.Priority, in.Category, in.Recommendation)
		}
	}

	if !result.Entities.Empty() {
		cmd.Println()
		cmd.Println("Entities:")
		if len(result.Entities.Medications) > 0 {
			cmd.Printf("  Medications: %v\n", result.Entities.Medications)
		}
		if len(result.Entities.Conditions) > 0 {
			cmd.Printf("  Conditions: %v\n", result.Entities.Conditions)
		}
		for _, lab := range result.Entities.Labs {
			cmd.Printf("  Lab: %s = %s\n", lab.Name, lab.Value)
		}
	}

	if result.Analysis != nil && result.Analysis.Disclaimer != "" {
		cmd.Println()
		cmd.Println(result.Analysis.Disclaimer)
	}
	return nil
}

func printList(cmd *cobra.Command, title string, items []string) {
	if len(items) == 0 {
		return
	}
	cmd.Printf("%s:\n", title)
	for _, item := range items {
		cmd.Printf("  - %s\n", item)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
