package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lumenfi/chaincheck/internal/projectconfig"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chaincheck",
		Short: "chaincheck - validate documentation examples against live networks",
		Long: `chaincheck runs the documentation site's network validation suites
against live RPC endpoints: health, latency, known accounts, pool data
shape, and the devnet funding scenario. Results land in the results
directory as JSON, HTML, CSV and JUnit reports.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output with per-check progress")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newDevnetCommand())
	cmd.AddCommand(newMainnetCommand())
	cmd.AddCommand(newNetworksCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

// loadConfig loads project configuration from the working directory and
// flips debug logging on when the config asks for it.
func loadConfig() (*projectconfig.ProjectConfig, error) {
	cfg, err := projectconfig.Load(".")
	if err != nil {
		return nil, err
	}
	if cfg.DebugEnabled() {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
	return cfg, nil
}

func execute(ctx context.Context) error {
	rootCmd := newRootCommand()
	return rootCmd.ExecuteContext(ctx)
}
