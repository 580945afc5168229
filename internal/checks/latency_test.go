package checks

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenfi/chaincheck/internal/metrics"
	"github.com/lumenfi/chaincheck/internal/rpc"
)

func TestLatencySample(t *testing.T) {
	t.Run("summarizes all samples", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getSlot", 100)

		outcome, err := LatencySample(mock, 5).Run(context.Background())
		require.NoError(t, err)

		summary, ok := outcome.Payload.(metrics.LatencySummary)
		require.True(t, ok)
		assert.Equal(t, 5, summary.Samples)
		assert.Len(t, mock.Calls(), 5)
	})

	t.Run("stops on first failed sample", func(t *testing.T) {
		var calls atomic.Int64
		caller := callerFunc(func(_ context.Context, _ string, _, result any) error {
			if calls.Add(1) == 3 {
				return fmt.Errorf("connection reset")
			}
			decodeInto(t, 100, result)
			return nil
		})

		_, err := LatencySample(caller, 10).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sample 3/10")
		assert.Equal(t, int64(3), calls.Load())
	})
}

func TestBurstThroughput(t *testing.T) {
	t.Run("fires all requests", func(t *testing.T) {
		var calls atomic.Int64
		caller := callerFunc(func(_ context.Context, _ string, _, result any) error {
			calls.Add(1)
			decodeInto(t, 100, result)
			return nil
		})

		outcome, err := BurstThroughput(caller, 8).Run(context.Background())
		require.NoError(t, err)

		result, ok := outcome.Payload.(BurstResult)
		require.True(t, ok)
		assert.Equal(t, 8, result.Requests)
		assert.Equal(t, 8, result.Latency.Samples)
		assert.Greater(t, result.PerSecond, 0.0)
		assert.Equal(t, int64(8), calls.Load())
	})

	t.Run("single failure fails the burst", func(t *testing.T) {
		var calls atomic.Int64
		caller := callerFunc(func(_ context.Context, _ string, _, result any) error {
			if calls.Add(1) == 1 {
				return fmt.Errorf("throttled")
			}
			decodeInto(t, 100, result)
			return nil
		})

		_, err := BurstThroughput(caller, 4).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "burst of 4 requests")
	})
}

func TestPerformanceSamples(t *testing.T) {
	t.Run("active chain", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getRecentPerformanceSamples", []map[string]any{
			{"slot": 1000, "numTransactions": 1500, "numSlots": 60, "samplePeriodSecs": 60},
			{"slot": 940, "numTransactions": 1200, "numSlots": 60, "samplePeriodSecs": 60},
		})

		outcome, err := PerformanceSamples(mock).Run(context.Background())
		require.NoError(t, err)
		assert.Empty(t, outcome.Warnings)

		payload := outcome.Payload.(map[string]any)
		assert.Equal(t, uint64(2700), payload["transactions"])
	})

	t.Run("idle chain warns", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getRecentPerformanceSamples", []map[string]any{
			{"slot": 1000, "numTransactions": 0, "numSlots": 60},
		})

		outcome, err := PerformanceSamples(mock).Run(context.Background())
		require.NoError(t, err)
		require.Len(t, outcome.Warnings, 1)
		assert.Contains(t, outcome.Warnings[0], "no transactions")
	})

	t.Run("no samples fails", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getRecentPerformanceSamples", []map[string]any{})

		_, err := PerformanceSamples(mock).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no performance samples")
	})
}
