package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askPatient string
	askTopK    int
	askJSON    bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about a patient's history",
	Long: `Retrieves the patient's most relevant stored report chunks and answers
the question grounded in them. Without --patient no prior context is
used and the answer will likely say the context is insufficient.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askPatient, "patient", "p", "", "patient id to scope retrieval to")
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "number of context snippets to retrieve (default 5)")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "output the full result as JSON")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	if answerService == nil {
		return fmt.Errorf("answer %w", errNotConfigured)
	}

	result, err := answerService.Answer(cmd.Context(), askPatient, question, askTopK)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if askJSON {
		return outputJSON(cmd, result)
	}

	cmd.Println(result.Answer)
	cmd.Println()
	cmd.Printf("(%d context snippets used", result.SnippetsUsed)
	if !result.RetrievalOutcome.IsOK() {
		cmd.Printf("; retrieval %s: %s", result.RetrievalOutcome.Status, result.RetrievalOutcome.Diagnostic)
	}
	cmd.Println(")")
	return nil
}
