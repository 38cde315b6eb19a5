package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/config"
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect persisted audit messages",
	Long:  `Inspect audit messages stored in the audit database.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'audit' requires a subcommand (list)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

var auditListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the most recent audit messages",
	Long: `List the most recent audit messages, newest first.

Example:
  secretsctl audit list
  secretsctl audit list --msgid secret --limit 50 -o json`,
	Run: func(cmd *cobra.Command, args []string) {
		msgid, _ := cmd.Flags().GetString("msgid")
		limit, _ := cmd.Flags().GetInt("limit")
		output, _ := cmd.Flags().GetString("output")

		if err := listAudit(msgid, limit, output); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to list audit messages: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditListCmd)
	auditListCmd.Flags().String("msgid", "", "Only show messages with this id (secret, project, membership)")
	auditListCmd.Flags().IntP("limit", "n", 20, "Maximum number of messages")
	auditListCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func listAudit(msgid string, limit int, output string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store, err := audit.NewStore(cfg.LogLevel)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("AUDIT_DATABASE_URL environment variable is required")
	}
	defer func() { _ = store.Close() }()

	messages, err := store.Recent(msgid, limit)
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(messages)
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIMESTAMP\tMSGID\tSEVERITY\tMESSAGE")
	for _, m := range messages {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", m.Timestamp.Format("2006-01-02T15:04:05Z07:00"), m.Msgid, m.Severity, m.Message)
	}
	return tw.Flush()
}
