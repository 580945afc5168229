package main

import (
	"github.com/spf13/cobra"

	"github.com/lumenfi/chaincheck/internal/checks"
	"github.com/lumenfi/chaincheck/internal/orchestrate"
)

func newDevnetCommand() *cobra.Command {
	var (
		rpcURL    string
		outputDir string
	)

	cmd := &cobra.Command{
		Use:   "devnet",
		Short: "Run the devnet validation suite",
		Long: `Run the devnet validation suite: health, version, slot progression,
blockhash, the throwaway-keypair funding scenario (generate, airdrop,
balance), known accounts, pool shapes and latency sampling.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			applyRunFlags(cfg, "devnet", rpcURL, outputDir)

			rep, err := runSuite(cmd, cfg, "devnet", func(d checks.Deps, _ string) []orchestrate.Check {
				return checks.DevnetSuite(d)
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
