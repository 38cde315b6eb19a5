package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/secrets-api/pkg/config"
)

var configurationShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration",
	Long: `Print every configuration attribute together with where its value came
from: default, file or env.

Values are resolved afresh from secrets.yml (SECRETS_CONFIG_PATH overrides
/etc/secrets-api/config/secrets.yml) and SECRETS_* variables in this shell.
A server started earlier keeps what it loaded until it is reloaded.

Example:
  secretsctl configuration show
  secretsctl configuration show -o yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err == nil {
			err = printConfiguration(cmd.OutOrStdout(), cfg, output)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to show configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationShowCmd)
	configurationShowCmd.Flags().StringP("output", "o", "text", "text, json or yaml")
}

func printConfiguration(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "text":
		_, err := io.WriteString(w, cfg.FormatText())
		return err
	case "json":
		out, err := cfg.FormatJSON()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(map[string]interface{}{
			"config_file": cfg.ConfigFilePath(),
			"attributes":  cfg.Attributes(),
		}); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}
