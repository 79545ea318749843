package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [patient-id]",
	Short: "List a patient's stored report chunks",
	Long:  `Lists the chunks stored for a patient in ingestion order.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "maximum number of chunks (default 50)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	patientID := args[0]

	if historyService == nil {
		return fmt.Errorf("history %w", errNotConfigured)
	}

	results, err := historyService.History(cmd.Context(), patientID, historyLimit)
	if err != nil {
		return fmt.Errorf("history failed: %w", err)
	}

	if historyJSON {
		return outputJSON(cmd, results)
	}

	if len(results) == 0 {
		cmd.Println("No stored reports for this patient.")
		return nil
	}

	for _, r := range results {
		cmd.Printf("[%s] %s (%d/%d)\n", r.Meta.Timestamp.Format("2006-01-02 15:04"), r.Meta.Filename, r.Meta.ChunkIndex+1, r.Meta.NumChunks)
		cmd.Printf("  %s\n", snippet(r.Text, 120))
	}
	return nil
}

// snippet truncates s to max runes with an ellipsis.
func snippet(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
