package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lumenfi/chaincheck/internal/checks"
	"github.com/lumenfi/chaincheck/internal/models"
	"github.com/lumenfi/chaincheck/internal/orchestrate"
	"github.com/lumenfi/chaincheck/internal/projectconfig"
	"github.com/lumenfi/chaincheck/internal/ratelimit"
	"github.com/lumenfi/chaincheck/internal/report"
	"github.com/lumenfi/chaincheck/internal/rpc"
	"github.com/lumenfi/chaincheck/internal/searchidx"
	"github.com/lumenfi/chaincheck/internal/spinner"
)

// suiteBuilder assembles the check list for one network once its
// dependencies are wired.
type suiteBuilder func(d checks.Deps, endpoint string) []orchestrate.Check

// buildDeps wires the RPC client, search client, and configured accounts
// for one network.
func buildDeps(cfg *projectconfig.ProjectConfig, net projectconfig.NetworkConfig) checks.Deps {
	limiter := ratelimit.PerSecond(cfg.Checks.RateLimit)
	client := rpc.New(net.Endpoint,
		rpc.WithTimeout(time.Duration(cfg.Checks.TimeoutSeconds)*time.Second),
		rpc.WithLimiter(limiter),
	)

	searchCfg := searchidx.Config{
		AppID:  cfg.Search.AppID,
		APIKey: cfg.Search.APIKey,
		Index:  cfg.Search.Index,
	}

	return checks.Deps{
		RPC:            client,
		Search:         searchidx.New(searchCfg, nil),
		SearchCfg:      searchCfg,
		KnownAccounts:  net.Accounts,
		Pools:          net.Pools,
		LatencySamples: cfg.Checks.LatencySamples,
		BurstRequests:  cfg.Checks.BurstRequests,
	}
}

// applyRunFlags folds a command's flag overrides into the loaded config
// before the suite is built. Empty values leave the config untouched.
func applyRunFlags(cfg *projectconfig.ProjectConfig, network, rpcURL, outputDir string) {
	if outputDir != "" {
		cfg.Reports.Dir = outputDir
	}
	if rpcURL != "" {
		net := cfg.Networks[network]
		net.Endpoint = rpcURL
		cfg.Networks[network] = net
	}
}

// runSuite executes a network's check suite, writes the report files, and
// prints the console summary. The returned report is always complete, even
// when checks failed.
func runSuite(cmd *cobra.Command, cfg *projectconfig.ProjectConfig, network string, build suiteBuilder) (*models.RunReport, error) {
	net, err := cfg.Network(network)
	if err != nil {
		return nil, err
	}

	deps := buildDeps(cfg, net)
	suite := build(deps, net.Endpoint)

	verbose, _ := cmd.Flags().GetBool("verbose") //nolint:errcheck
	runner := orchestrate.NewRunner(network, net.Endpoint)
	runner.OnProgress(progressPrinter(verbose))

	rep := runner.Run(cmd.Context(), suite)
	if err := cmd.Context().Err(); err != nil {
		return rep, err
	}

	writer := report.NewWriter(cfg.Reports.Dir, report.WithArchiving(cfg.ArchiveEnabled()))
	written, err := writer.Write(rep)
	if err != nil {
		return rep, err
	}

	printRunTable(cmd.OutOrStdout(), rep)
	fmt.Fprintf(cmd.OutOrStdout(), "\nReports written to %s\n", writer.Dir())
	slog.Debug("report files written", "json", written.JSON, "html", written.HTML)

	return rep, nil
}

// progressPrinter returns the listener that narrates the run. Verbose mode
// prints one line per check; otherwise a spinner tracks the current check.
func progressPrinter(verbose bool) orchestrate.ProgressListener {
	var stopSpinner func()

	return func(event orchestrate.ProgressEvent) {
		switch event.EventType {
		case orchestrate.EventCheckStart:
			if verbose {
				fmt.Fprintf(os.Stderr, "[%d/%d] %s...\n", event.CheckNum, event.TotalChecks, event.CheckName)
				return
			}
			stopSpinner = spinner.Start(os.Stderr,
				fmt.Sprintf("[%d/%d] %s", event.CheckNum, event.TotalChecks, event.CheckName))
		case orchestrate.EventCheckComplete:
			if stopSpinner != nil {
				stopSpinner()
				stopSpinner = nil
			}
			if verbose {
				line := fmt.Sprintf("[%d/%d] %s: %s (%s)",
					event.CheckNum, event.TotalChecks, event.CheckName, event.Status,
					formatDuration(time.Duration(event.DurationMs)*time.Millisecond))
				if event.Error != "" {
					line += ": " + event.Error
				}
				fmt.Fprintln(os.Stderr, statusColor(event.Status).Sprint(line))
			}
		}
	}
}

// failureError converts a completed run into the error that drives the
// exit code.
func failureError(rep *models.RunReport) error {
	if rep.Ok() {
		return nil
	}
	return &CheckFailureError{
		Message: fmt.Sprintf("%s: %d required check(s) failed", rep.Network, rep.Digest.RequiredFailed),
	}
}
