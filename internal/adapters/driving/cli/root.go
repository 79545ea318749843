// Package cli implements the medrag command-line interface.
package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/clinical-labs/medrag-cli/internal/adapters/driven/extract"
	"github.com/clinical-labs/medrag-cli/internal/core/ports/driving"
	"github.com/clinical-labs/medrag-cli/internal/logger"
)

// version is set from main at startup.
var version = "dev"

// Persistent flags.
var (
	verbose    bool
	configPath string
)

// Services injected from main before any command runs.
var (
	ingestService  driving.IngestService
	answerService  driving.AnswerService
	historyService driving.HistoryService
	extractors     *extract.Registry
)

// Builder constructs the services once flags are parsed. It returns
// the services and a cleanup function run after the command finishes.
type Builder func(configPath string) (Services, func(), error)

// Services groups the driving ports the commands call.
type Services struct {
	Ingest  driving.IngestService
	Answer  driving.AnswerService
	History driving.HistoryService

	Extractors *extract.Registry
}

var buildServices Builder

var cleanupServices func()

var rootCmd = &cobra.Command{
	Use:   "medrag",
	Short: "Medical report analysis with patient-history retrieval",
	Long: `medrag ingests medical reports, indexes them per patient in a local
vector store, and answers questions grounded in the patient's prior
reports.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)

		// version and help need no wiring
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		if buildServices == nil {
			return nil
		}

		svcs, cleanup, err := buildServices(configPath)
		if err != nil {
			return err
		}
		ingestService = svcs.Ingest
		answerService = svcs.Answer
		historyService = svcs.History
		extractors = svcs.Extractors
		cleanupServices = cleanup
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if cleanupServices != nil {
			cleanupServices()
			cleanupServices = nil
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path (default ~/.medrag/config.toml)")
}

// Execute runs the CLI with the given version and service builder.
func Execute(v string, builder Builder) error {
	version = v
	buildServices = builder
	return rootCmd.Execute()
}

var errNotConfigured = errors.New("service not configured")
