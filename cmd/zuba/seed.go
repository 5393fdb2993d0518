package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/config"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services"
)

func newSeedCmd(flags *globalFlags) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset into the local SQLite store",
		Long: `Create the local SQLite database if needed and load the demo clients
and usage records into it, so the dashboard can run with ZUBA_SOURCE=sqlite
without a remote backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			setupCLILogger(cmd, flags, cfg.LogFormat)

			cfg.Source = config.SourceSQLite
			if dbPath != "" {
				cfg.DatabasePath = dbPath
			}
			cfg.RefreshInterval = 0
			cfg.Notifications = false

			mgr, err := services.NewManager(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize services: %w", err)
			}
			defer mgr.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			n, err := mgr.SeedDemo(ctx)
			if err != nil {
				return err
			}

			color.New(color.FgGreen, color.Bold).Fprintf(cmd.OutOrStdout(),
				"✓ Seeded %d usage records into %s\n", n, cfg.DatabasePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default: ZUBA_DB_PATH)")

	return cmd
}
