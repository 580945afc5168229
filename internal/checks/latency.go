package checks

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lumenfi/chaincheck/internal/metrics"
	"github.com/lumenfi/chaincheck/internal/orchestrate"
	"github.com/lumenfi/chaincheck/internal/rpc"
)

// HighLatencyP95 is the p95 threshold above which a latency check passes
// with a warning instead of silently.
const HighLatencyP95 = 500 * time.Millisecond

// LatencySample issues n sequential getSlot calls and summarizes their
// round-trip latencies. High p95 is a soft problem, not a failure.
func LatencySample(c rpc.Caller, n int) orchestrate.Check {
	return orchestrate.Check{
		Name: "latency-sample",
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			samples := make([]time.Duration, 0, n)
			for i := 0; i < n; i++ {
				start := time.Now()
				if _, err := rpc.GetSlot(ctx, c); err != nil {
					return nil, fmt.Errorf("sample %d/%d: %w", i+1, n, err)
				}
				samples = append(samples, time.Since(start))
			}

			summary := metrics.Summarize(samples)
			if summary.P95Ms > float64(HighLatencyP95.Milliseconds()) {
				return orchestrate.Warn(summary,
					fmt.Sprintf("high latency: p95 %.0fms exceeds %dms", summary.P95Ms, HighLatencyP95.Milliseconds())), nil
			}
			return orchestrate.Ok(summary), nil
		},
	}
}

// BurstResult is the payload of the burst throughput check.
type BurstResult struct {
	Requests  int                    `json:"requests"`
	ElapsedMs int64                  `json:"elapsed_ms"`
	PerSecond float64                `json:"per_second"`
	Latency   metrics.LatencySummary `json:"latency"`
}

// BurstThroughput fires n concurrent getSlot calls and waits for all of
// them, measuring wall-clock throughput. No ordering among the calls is
// assumed; a single failed call fails the burst.
func BurstThroughput(c rpc.Caller, n int) orchestrate.Check {
	return orchestrate.Check{
		Name: "burst-throughput",
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			durations := make([]time.Duration, n)
			start := time.Now()

			g, gctx := errgroup.WithContext(ctx)
			for i := 0; i < n; i++ {
				g.Go(func() error {
					callStart := time.Now()
					if _, err := rpc.GetSlot(gctx, c); err != nil {
						return err
					}
					durations[i] = time.Since(callStart)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return nil, fmt.Errorf("burst of %d requests: %w", n, err)
			}

			elapsed := time.Since(start)
			result := BurstResult{
				Requests:  n,
				ElapsedMs: elapsed.Milliseconds(),
				PerSecond: float64(n) / elapsed.Seconds(),
				Latency:   metrics.Summarize(durations),
			}
			return orchestrate.Ok(result), nil
		},
	}
}

// PerformanceSamples verifies the endpoint serves recent performance
// samples and that the chain shows transaction activity.
func PerformanceSamples(c rpc.Caller) orchestrate.Check {
	return orchestrate.Check{
		Name: "performance-samples",
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			samples, err := rpc.GetRecentPerformanceSamples(ctx, c, 5)
			if err != nil {
				return nil, err
			}
			if len(samples) == 0 {
				return nil, fmt.Errorf("endpoint returned no performance samples")
			}

			var txs uint64
			for _, s := range samples {
				txs += s.NumTransactions
			}
			payload := map[string]any{"samples": len(samples), "transactions": txs}
			if txs == 0 {
				return orchestrate.Warn(payload, "no transactions in recent samples"), nil
			}
			return orchestrate.Ok(payload), nil
		},
	}
}
