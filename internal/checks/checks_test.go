package checks

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenfi/chaincheck/internal/rpc"
)

// callerFunc adapts a function to rpc.Caller for checks whose behavior
// depends on call ordering, which MockCaller cannot script.
type callerFunc func(ctx context.Context, method string, params, result any) error

func (f callerFunc) Call(ctx context.Context, method string, params, result any) error {
	return f(ctx, method, params, result)
}

func (f callerFunc) Endpoint() string { return "test://endpoint" }

func decodeInto(t *testing.T, value, result any) {
	t.Helper()
	data, err := json.Marshal(value)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, result))
}

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getHealth", "ok")

		outcome, err := Health(mock).Run(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, outcome.Payload)
		assert.Equal(t, []string{"getHealth"}, mock.Calls())
	})

	t.Run("unhealthy", func(t *testing.T) {
		mock := rpc.NewMockCaller().Fail("getHealth", &rpc.Error{Code: -32005, Message: "node is behind"})

		_, err := Health(mock).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "node is behind")
	})

	t.Run("is required", func(t *testing.T) {
		assert.True(t, Health(rpc.NewMockCaller()).Required)
	})
}

func TestVersion(t *testing.T) {
	mock := rpc.NewMockCaller().Respond("getVersion", map[string]any{
		"solana-core": "1.18.22",
		"feature-set": 123,
	})

	outcome, err := Version(mock).Run(context.Background())
	require.NoError(t, err)

	v, ok := outcome.Payload.(*rpc.Version)
	require.True(t, ok)
	assert.Equal(t, "1.18.22", v.Core)
}

func TestSlotProgression(t *testing.T) {
	t.Run("advancing", func(t *testing.T) {
		slot := uint64(100)
		caller := callerFunc(func(_ context.Context, method string, _, result any) error {
			require.Equal(t, "getSlot", method)
			slot += 5
			decodeInto(t, slot, result)
			return nil
		})

		outcome, err := SlotProgressionWithDelay(caller, 0).Run(context.Background())
		require.NoError(t, err)
		payload := outcome.Payload.(map[string]uint64)
		assert.Equal(t, uint64(105), payload["first_slot"])
		assert.Equal(t, uint64(110), payload["second_slot"])
	})

	t.Run("stalled", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getSlot", 42)

		outcome, err := SlotProgressionWithDelay(mock, 0).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slot did not advance")
		require.NotNil(t, outcome, "a stalled probe still reports both samples")
	})

	t.Run("cancelled during probe delay", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		mock := rpc.NewMockCaller().Respond("getSlot", 42)

		_, err := SlotProgressionWithDelay(mock, 50).Run(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestBlockhash(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getLatestBlockhash", map[string]any{
			"context": map[string]any{"slot": 99},
			"value": map[string]any{
				"blockhash":            "9sHcv6xwn9YkB8nxTUGKDwPwNnmqVp5oAXxU8Fdkm4J6",
				"lastValidBlockHeight": 4242,
			},
		})

		outcome, err := Blockhash(mock).Run(context.Background())
		require.NoError(t, err)
		bh := outcome.Payload.(*rpc.LatestBlockhash)
		assert.Equal(t, uint64(4242), bh.LastValidBlockHeight)
	})

	t.Run("empty", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getLatestBlockhash", map[string]any{
			"context": map[string]any{"slot": 99},
			"value":   map[string]any{"blockhash": ""},
		})

		_, err := Blockhash(mock).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty blockhash")
	})
}

func TestAccountExists(t *testing.T) {
	const addr = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"

	t.Run("present", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getAccountInfo", map[string]any{
			"context": map[string]any{"slot": 7},
			"value": map[string]any{
				"lamports": 5_000_000,
				"owner":    "11111111111111111111111111111111",
			},
		})

		outcome, err := AccountExists(mock, "treasury", addr).Run(context.Background())
		require.NoError(t, err)
		payload := outcome.Payload.(map[string]any)
		assert.Equal(t, uint64(5_000_000), payload["lamports"])
	})

	t.Run("missing", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getAccountInfo", map[string]any{
			"context": map[string]any{"slot": 7},
			"value":   nil,
		})

		_, err := AccountExists(mock, "treasury", addr).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("rpc failure", func(t *testing.T) {
		mock := rpc.NewMockCaller().Fail("getAccountInfo", fmt.Errorf("connection refused"))

		_, err := AccountExists(mock, "treasury", addr).Run(context.Background())
		assert.Error(t, err)
	})

	t.Run("malformed address", func(t *testing.T) {
		mock := rpc.NewMockCaller()

		_, err := AccountExists(mock, "treasury", "not-base58-0OIl").Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid address")
		assert.Empty(t, mock.Calls(), "a bad configured address never reaches the endpoint")
	})

	t.Run("truncated address", func(t *testing.T) {
		mock := rpc.NewMockCaller()

		_, err := AccountExists(mock, "treasury", "4Nd1mBQtrMJV").Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid address")
		assert.Empty(t, mock.Calls())
	})
}

func TestPoolShape(t *testing.T) {
	const addr = "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

	poolAccount := func(data any) map[string]any {
		return map[string]any{
			"context": map[string]any{"slot": 7},
			"value": map[string]any{
				"lamports": 2_039_280,
				"owner":    "LPv1srWkzrNJv6FQBeyAkXC1kLFe9gzjNNnq9TZGbHB",
				"data":     data,
			},
		}
	}

	validPool := map[string]any{
		"version": 2,
		"tokenA":  map[string]any{"mint": "So11111111111111111111111111111111111111112", "reserve": 1_000_000},
		"tokenB":  map[string]any{"mint": "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", "reserve": 2_000_000},
		"lpMint":  "LPmintxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx",
		"feeBps":  30,
	}

	t.Run("well formed", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getAccountInfo", poolAccount(validPool))

		outcome, err := PoolShape(mock, "sol-usdc", addr).Run(context.Background())
		require.NoError(t, err)
		assert.Empty(t, outcome.Warnings)
	})

	t.Run("paused pool warns", func(t *testing.T) {
		paused := map[string]any{}
		for k, v := range validPool {
			paused[k] = v
		}
		paused["paused"] = true
		mock := rpc.NewMockCaller().Respond("getAccountInfo", poolAccount(paused))

		outcome, err := PoolShape(mock, "sol-usdc", addr).Run(context.Background())
		require.NoError(t, err)
		require.Len(t, outcome.Warnings, 1)
		assert.Contains(t, outcome.Warnings[0], "paused")
	})

	t.Run("missing fields fail", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getAccountInfo", poolAccount(map[string]any{"version": 2}))

		_, err := PoolShape(mock, "sol-usdc", addr).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shape invalid")
	})

	t.Run("absent account fails", func(t *testing.T) {
		mock := rpc.NewMockCaller().Respond("getAccountInfo", map[string]any{
			"context": map[string]any{"slot": 7},
			"value":   nil,
		})

		_, err := PoolShape(mock, "sol-usdc", addr).Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("malformed address", func(t *testing.T) {
		mock := rpc.NewMockCaller()

		_, err := PoolShape(mock, "sol-usdc", "!!not-an-address!!").Run(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid address")
		assert.Empty(t, mock.Calls())
	})
}
