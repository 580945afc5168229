package main

import (
	"github.com/spf13/cobra"

	"github.com/lumenfi/chaincheck/internal/checks"
	"github.com/lumenfi/chaincheck/internal/orchestrate"
)

func newMainnetCommand() *cobra.Command {
	var (
		rpcURL    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "mainnet",
		Short: "Run the read-only mainnet validation suite",
		Long: `Run the mainnet validation suite: health, version, slot progression,
known accounts, pool shapes, latency sampling, burst throughput, recent
performance samples and docs search index checks. Strictly read-only;
no airdrops are ever requested.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyRunFlags(cfg, "mainnet", rpcURL, outputDir)

			rep, err := runSuite(cmd, cfg, "mainnet", func(d checks.Deps, _ string) []orchestrate.Check {
				return checks.MainnetSuite(d)
			})
			if err != nil {
				return err
			}
			return failureError(rep)
		},
	}

	cmd.Flags().StringVar(&rpcURL, "rpc-url", "", "RPC endpoint to check (default: from config)")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory for report files (default: from config)")

	return cmd
}
