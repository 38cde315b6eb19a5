package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/secrets-api/pkg/audit"
	"github.com/doodlesbykumbi/secrets-api/pkg/config"
	"github.com/doodlesbykumbi/secrets-api/pkg/logging"
	"github.com/doodlesbykumbi/secrets-api/pkg/server"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/endpoints"
	"github.com/doodlesbykumbi/secrets-api/pkg/server/store/memory"
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the secrets API server",
	Long: `Run the secrets API server.

Secrets and projects are held in memory and are lost when the process exits.
Audit events are written to stdout and, when AUDIT_DATABASE_URL is set, to the
audit database. Use --migrate to bring the audit schema up to date first.

SIGHUP reloads the log level and audit switch from the configuration file.
With --watch-config the file is watched and reloaded on change.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}
		if cmd.Flags().Changed("bind-address") {
			cfg.BindAddress, _ = cmd.Flags().GetString("bind-address")
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			os.Exit(1)
		}

		logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
		slog.Debug("configuration loaded", "path", cfg.ConfigFilePath(), "address", cfg.Address())

		migrateFirst, _ := cmd.Flags().GetBool("migrate")
		if migrateFirst && auditDatabaseURL() != "" {
			slog.Info("running audit database migrations")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		auditStore, err := audit.NewStore(cfg.LogLevel)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to connect to audit database: %v\n", err)
			os.Exit(1)
		}
		auditor := audit.New(audit.NewLogger(), auditStore)
		auditor.SetEnabled(cfg.AuditEnabled)

		secrets := memory.NewSecretsStore()
		projects := memory.NewProjectsStore(secrets)

		s := server.NewServer(cfg, secrets, projects, auditor)
		endpoints.RegisterAll(s)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

		apply := func(next *config.Config) {
			logging.SetLevel(next.LogLevel)
			auditor.SetEnabled(next.AuditEnabled)
			slog.Info("configuration reloaded", "log_level", next.LogLevel, "audit_enabled", next.AuditEnabled)
		}

		go reloadOnHangup(ctx, apply)

		if watch, _ := cmd.Flags().GetBool("watch-config"); watch {
			go func() {
				if err := config.Watch(ctx, cfg.ConfigFilePath(), apply); err != nil {
					slog.Error("config watch stopped", "error", err)
				}
			}()
		}

		err = serve(ctx, s, auditor, cfg.ShutdownTimeout())
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

// serve runs s until it fails or ctx is done, then shuts it down within
// timeout. The auditor is closed on every path.
func serve(ctx context.Context, s *server.Server, auditor *audit.Auditor, timeout time.Duration) error {
	defer func() { _ = auditor.Close() }()

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
		}
		return nil
	}
}

// reloadOnHangup reloads the configuration file on every SIGHUP until ctx
// is done. Invalid files are logged and ignored.
func reloadOnHangup(ctx context.Context, apply func(*config.Config)) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			next, err := config.Load()
			if err == nil {
				err = next.Validate()
			}
			if err != nil {
				slog.Error("configuration reload failed", "error", err)
				continue
			}
			apply(next)
		}
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().IntP("port", "p", config.Default().Port, "server listen port (overrides configuration)")
	serverCmd.Flags().StringP("bind-address", "b", config.Default().BindAddress, "server bind address (overrides configuration)")
	serverCmd.Flags().Bool("migrate", false, "run audit database migrations on start")
	serverCmd.Flags().Bool("watch-config", false, "reload the configuration file when it changes")
}
