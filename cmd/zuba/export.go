package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/logger"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/models"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/usage"
)

type exportOptions struct {
	filter usage.FilterInput
	outDir string
}

func newExportCmd(flags *globalFlags) *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write usage records to a CSV file",
		Long: `Fetch usage records matching the given filters and write them as CSV.

The file is named zuba-broadband-usage-YYYY-MM-DD.csv, or
zuba-broadband-demo-YYYY-MM-DD.csv with --demo.`,
		Example: `  zuba export --client 1 --from 2025-06-01
  zuba export --demo --out ./reports --min 100`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.filter.ClientID, "client", "", "Only records for this client id")
	f.StringVar(&opts.filter.StartDate, "from", "", "Only records on or after this date (YYYY-MM-DD)")
	f.StringVar(&opts.filter.EndDate, "to", "", "Only records on or before this date (YYYY-MM-DD)")
	f.StringVar(&opts.filter.MinUsage, "min", "", "Only records with total usage of at least this many GB")
	f.StringVar(&opts.filter.MaxUsage, "max", "", "Only records with total usage of at most this many GB")
	f.StringVarP(&opts.outDir, "out", "o", "", "Directory to write the CSV to (default: ZUBA_EXPORT_DIR)")

	return cmd
}

func runExport(cmd *cobra.Command, flags *globalFlags, opts *exportOptions) error {
	criteria, err := usage.ParseFilterInput(opts.filter)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}
	setupCLILogger(cmd, flags, cfg.LogFormat)

	if opts.outDir != "" {
		cfg.ExportDir = opts.outDir
	}
	// One-shot commands neither poll nor raise desktop notifications.
	cfg.RefreshInterval = 0
	cfg.Notifications = false

	mgr, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer mgr.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return exportRecords(ctx, cmd, mgr, criteria)
}

func exportRecords(ctx context.Context, cmd *cobra.Command, mgr *services.Manager, criteria models.FilterCriteria) error {
	out := cmd.OutOrStdout()

	res, err := mgr.Refresh(ctx, criteria)
	if err != nil {
		return err
	}

	path, err := mgr.Export(res.Records, time.Now())
	if err != nil {
		return err
	}

	if len(res.Records) == 0 {
		color.New(color.FgYellow).Fprintf(out, "No usage records matched, wrote header only to %s\n", path)
		return nil
	}

	stats := usage.ComputeStats(res.Records, len(res.Clients), usage.CurrentMonth(time.Now()))
	color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ Exported %d records to %s\n", len(res.Records), path)
	fmt.Fprintf(out, "  %.1f GB total from %s\n", stats.TotalUsageGB, color.CyanString(mgr.SourceName()))
	return nil
}

// setupCLILogger sends logs to stderr, quiet unless --verbose.
func setupCLILogger(cmd *cobra.Command, flags *globalFlags, format string) {
	level := "warn"
	if flags.verbose {
		level = "debug"
	}
	logger.Setup(cmd.ErrOrStderr(), level, format)
}
