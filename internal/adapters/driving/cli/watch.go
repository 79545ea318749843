package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/clinical-labs/medrag-cli/internal/core/ports/driving"
	"github.com/clinical-labs/medrag-cli/internal/logger"
)

var (
	watchPatient string

	// watchSettleDelay gives the writer time to finish before the
	// file is read. Editors and downloads often produce a Create
	// followed by several Writes.
	watchSettleDelay = 500 * time.Millisecond
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and ingest new reports",
	Long: `Watches a directory and ingests every supported report file that is
created or modified in it. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchPatient, "patient", "p", "", "patient id to file ingested reports under")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]

	if ingestService == nil || extractors == nil {
		return fmt.Errorf("ingest %w", errNotConfigured)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("watch target %s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s (patient %q), press Ctrl-C to stop\n", dir, watchPatient)

	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldIngestEvent(event) {
				continue
			}
			time.Sleep(watchSettleDelay)
			ingestWatchedFile(cmd.Context(), cmd, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// shouldIngestEvent filters watcher events down to new or rewritten
// supported report files. Hidden files and directories are skipped.
func shouldIngestEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	if info, err := os.Stat(event.Name); err != nil || info.IsDir() {
		return false
	}
	if extractors == nil {
		return false
	}
	_, err := extractors.For(event.Name)
	return err == nil
}

func ingestWatchedFile(ctx context.Context, cmd *cobra.Command, path string) {
	extractor, err := extractors.For(path)
	if err != nil {
		return
	}

	text, err := extractor.Extract(ctx, path)
	if err != nil {
		logger.Warn("watch: extracting %s: %v", path, err)
		return
	}

	result, err := ingestService.Ingest(ctx, driving.IngestRequest{
		PatientID: watchPatient,
		Text:      text,
		Filename:  filepath.Base(path),
	})
	if err != nil {
		logger.Warn("watch: ingesting %s: %v", path, err)
		return
	}

	cmd.Printf("Ingested %s: %d chunks\n", filepath.Base(path), result.ChunksIndexed)
}
