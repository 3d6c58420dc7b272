// Package cmd contains the CLI commands.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "polymarket-connector",
	Short: "Polymarket exchange connector",
	Long: `Polymarket exchange connector: places and manages signed orders on the
CLOB exchange and polls market state to emit detection events (new
listings, price moves, fills, resolutions) to a downstream sink.

Credentials and trigger settings are read from the environment; a .env
file in the working directory is loaded automatically.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Missing .env is fine; the environment may be set directly.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
