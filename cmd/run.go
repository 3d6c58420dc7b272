package cmd

import (
	"fmt"

	"github.com/deepakdhaka-1/polymarket-connector/internal/app"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the trigger engine",
	Long: `Starts the connector in scheduled mode, which will:
1. Poll the configured trigger source on the configured interval
2. Diff each snapshot against the previous cycle
3. Emit detection events to the configured sink
4. Serve metrics and health probes over HTTP

Transient upstream failures are logged and polling continues.`,
	RunE: runEngine,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(runCmd)
}

func runEngine(cmd *cobra.Command, args []string) error {
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

	err = application.Run()
	if err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
