package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zuba-broadband/usage-dashboard-tui/internal/app"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/config"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/logger"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/services"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/tabs/clients"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/tabs/dashboard"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/tabs/info"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/ui/tabs/records"
	"github.com/zuba-broadband/usage-dashboard-tui/internal/version"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	demo    bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "zuba",
		Short: "Terminal dashboard for Zuba Broadband client data usage",
		Long: `Zuba shows broadband data usage per client: headline figures,
monthly and daily charts, a filterable records table and CSV export.

Usage data is read from Supabase, PostgreSQL, a local SQLite file or the
built-in demo dataset, chosen by ZUBA_SOURCE or inferred from which
credentials are set.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(flags)
		},
	}

	rootCmd.SetVersionTemplate(`{{printf "zuba %s\n" .Version}}`)

	rootCmd.PersistentFlags().BoolVar(&flags.demo, "demo", false, "Use the built-in demo dataset")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(
		newExportCmd(flags),
		newSeedCmd(flags),
		newVersionCmd(),
	)

	return rootCmd
}

// loadConfig loads the configuration and applies the global flags.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if flags.demo {
		cfg.Source = config.SourceDemo
	}
	if flags.verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// runTUI contains the interactive application logic.
func runTUI(flags *globalFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so logs go to a file or nowhere.
	logCloser, err := logger.SetupFile(cfg.LogFile, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, logging disabled\n", err)
		logger.Setup(io.Discard, cfg.LogLevel, cfg.LogFormat)
	} else {
		defer logCloser.Close()
	}
	logger.Info("starting", "version", version.Short(), logger.KeySource, cfg.Source)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			logger.Warn("error closing services", logger.KeyError, closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Tab order matches app.TabDashboard through app.TabInfo.
	state := model.GetState()
	model.SetTabs([]app.Tab{
		dashboard.New(state),
		records.New(state),
		clients.New(state),
		info.New(state, cfg),
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
