package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/secrets-api/pkg/config"
)

var configurationApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Check the configuration file and hand it to the running server",
	Long: `Load and validate secrets.yml, then deliver SIGHUP to the process
running "secretsctl server". On SIGHUP the server re-reads the file and
adopts the new log_level and audit_enabled values.

The server's own environment is not re-read. bind_address, port and the
timeouts only change on restart.

Pass --test to stop after validation.

Example:
  secretsctl configuration apply --test
  secretsctl configuration apply`,
	Run: func(cmd *cobra.Command, args []string) {
		testOnly, _ := cmd.Flags().GetBool("test")

		if err := applyConfiguration(cmd.OutOrStdout(), testOnly); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to apply configuration: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	configurationCmd.AddCommand(configurationApplyCmd)
	configurationApplyCmd.Flags().Bool("test", false, "only validate, do not signal")
}

func applyConfiguration(w io.Writer, testOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", cfg.ConfigFilePath(), err)
	}
	fmt.Fprintf(w, "%s is valid\n", cfg.ConfigFilePath())

	if testOnly {
		return nil
	}

	out, err := exec.Command("pgrep", "-f", "secretsctl server").Output()
	if err != nil {
		return fmt.Errorf("no running secretsctl server found")
	}
	pid, err := serverPID(out)
	if err != nil {
		return err
	}

	if err := syscall.Kill(pid, syscall.SIGHUP); err != nil {
		return fmt.Errorf("signal process %d: %w", pid, err)
	}
	fmt.Fprintf(w, "reload requested from process %d\n", pid)
	return nil
}

// serverPID returns the first pid in pgrep output that is not this process
func serverPID(pgrepOutput []byte) (int, error) {
	self := os.Getpid()
	for _, field := range bytes.Fields(pgrepOutput) {
		pid, err := strconv.Atoi(string(field))
		if err != nil {
			return 0, fmt.Errorf("unexpected pgrep output %q", field)
		}
		if pid != self {
			return pid, nil
		}
	}
	return 0, fmt.Errorf("no running secretsctl server found")
}
