package cmd

import (
	"context"
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/app"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var pollOnceCmd = &cobra.Command{
	Use:   "poll-once",
	Short: "Run a single poll cycle",
	Long: `Runs one poll cycle of the configured trigger synchronously and exits.

Unlike scheduled mode, failures propagate to the exit code, which makes
this useful for smoke-testing a trigger configuration. The first cycle
of a fresh process only seeds state and emits nothing.`,
	RunE: runPollOnce,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(pollOnceCmd)
}

func runPollOnce(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}

	err = application.PollOnce(context.Background())
	if err != nil {
		return fmt.Errorf("poll cycle: %w", err)
	}

	return nil
}
