package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/secrets-api/pkg/client"
	"github.com/doodlesbykumbi/secrets-api/pkg/config"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the server to be ready",
	Long: `Wait for the server to be ready by polling the status endpoint.

This command repeatedly checks GET /status until the server reports ok or
the maximum number of retries is reached.

Example:
  secretsctl wait
  secretsctl wait --port 3000 --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetInt("port")
		retries, _ := cmd.Flags().GetInt("retries")

		fmt.Println("Waiting for the server to be ready...")

		c := client.New(fmt.Sprintf("http://localhost:%d", port))
		err := c.Wait(context.Background(), retries, time.Second, func() { fmt.Print(".") })
		fmt.Println()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Server is ready")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().IntP("port", "p", config.Default().Port, "Server port to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}
