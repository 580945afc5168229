package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lumenfi/chaincheck/internal/checks"
	"github.com/lumenfi/chaincheck/internal/orchestrate"
)

func newNetworksCommand() *cobra.Command {
	var (
		networkList     []string
		configOnly      bool
		skipPerformance bool
	)

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "Run the core suite against every configured network",
		Long: `Run the core validation suite against each configured network in turn.
A failing network does not stop the remaining networks; the exit code
reflects whether any required check failed anywhere.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			targets := networkList
			if len(targets) == 0 {
				targets = cfg.NetworkNames()
			}
			opts := checks.NetworkOptions{
				ConfigOnly:      configOnly,
				SkipPerformance: skipPerformance,
			}

			var failed []string
			for _, network := range targets {
				rep, err := runSuite(cmd, cfg, network, func(d checks.Deps, endpoint string) []orchestrate.Check {
					return checks.NetworkSuite(network, endpoint, d, opts)
				})
				if err != nil {
					return err
				}
				if !rep.Ok() {
					failed = append(failed, network)
				}
			}

			if len(failed) > 0 {
				return &CheckFailureError{
					Message: fmt.Sprintf("required checks failed on: %s", strings.Join(failed, ", ")),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&networkList, "networks", nil, "Networks to check (default: all configured)")
	cmd.Flags().BoolVar(&configOnly, "config-only", false, "Validate endpoint configuration without touching the network")
	cmd.Flags().BoolVar(&skipPerformance, "skip-performance", false, "Skip latency and burst throughput checks")

	return cmd
}
