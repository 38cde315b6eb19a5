package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "secretsctl",
	Short: "Run and manage the secrets API server",
	Long: `secretsctl runs the secrets API server and provides the tooling around it:
configuration inspection, audit database migrations, readiness checks and
data export.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
