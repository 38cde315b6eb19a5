package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/secrets-api/pkg/client"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export every secret and project from a running server",
	Long: `Export every secret and project from a running server.

Secrets are held in memory only, so an export is the way to keep a copy of
them. The output contains secret values; store it accordingly.

Example:
  secretsctl export
  secretsctl export --url http://secrets:8000 -o json --file backup.json`,
	Run: func(cmd *cobra.Command, args []string) {
		url, _ := cmd.Flags().GetString("url")
		output, _ := cmd.Flags().GetString("output")
		file, _ := cmd.Flags().GetString("file")

		if err := runExport(url, output, file); err != nil {
			fmt.Fprintf(os.Stderr, "Export failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("url", "http://localhost:8000", "Server base URL")
	exportCmd.Flags().StringP("output", "o", "yaml", "Output format (yaml or json)")
	exportCmd.Flags().StringP("file", "f", "", "Write to file instead of stdout")
}

func runExport(url, output, file string) error {
	export, err := client.New(url).Export(context.Background())
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", file, err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	return writeExport(w, export, output)
}

func writeExport(w io.Writer, export client.Export, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(export)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(export); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", output)
	}
}
