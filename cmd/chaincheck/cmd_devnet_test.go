package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenfi/chaincheck/internal/models"
)

// newRPCServer serves canned JSON-RPC responses for every method the
// suites issue, with a slot counter that advances on each getSlot.
func newRPCServer(t *testing.T) *httptest.Server {
	t.Helper()

	var slot atomic.Uint64
	slot.Store(1000)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     uint64 `json:"id"`
			Method string `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad rpc request: %v", err)
			return
		}

		var result any
		switch req.Method {
		case "getHealth":
			result = "ok"
		case "getVersion":
			result = map[string]any{"solana-core": "2.1.0", "feature-set": 1}
		case "getSlot":
			result = slot.Add(1)
		case "getLatestBlockhash":
			result = map[string]any{
				"context": map[string]any{"slot": slot.Load()},
				"value": map[string]any{
					"blockhash":            "9sHcv6xwn9YkB8nxTUGKDwPwNnmqVp5oLubvEmwvBkmc",
					"lastValidBlockHeight": 100,
				},
			}
		case "requestAirdrop":
			result = "5igSigxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxxx"
		case "getBalance":
			result = map[string]any{
				"context": map[string]any{"slot": slot.Load()},
				"value":   2_000_000_000,
			}
		case "getRecentPerformanceSamples":
			result = []map[string]any{
				{"slot": slot.Load(), "numTransactions": 2700, "numSlots": 60, "samplePeriodSecs": 60},
			}
		default:
			t.Errorf("unexpected rpc method %q", req.Method)
		}

		if err := json.NewEncoder(w).Encode(map[string]any{
			"jsonrpc": "2.0", "id": req.ID, "result": result,
		}); err != nil {
			t.Errorf("encoding rpc response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDevnetCommand_FlagOverrides(t *testing.T) {
	srv := newRPCServer(t)
	writeProjectFile(t, `
networks:
  devnet:
    endpoint: "https://unreachable.invalid"
checks:
  rate_limit: 500
  timeout_seconds: 5
  latency_samples: 2
reports:
  dir: "results"
`)
	outDir := filepath.Join(t.TempDir(), "flagged")

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"devnet", "--rpc-url", srv.URL, "--output-dir", outDir})
	require.NoError(t, cmd.Execute())

	rep, err := models.LoadRunReport(filepath.Join(outDir, "devnet-report.json"))
	require.NoError(t, err)
	assert.Equal(t, srv.URL, rep.Endpoint, "--rpc-url replaces the configured endpoint")
	assert.True(t, rep.Ok())

	assert.NoFileExists(t, filepath.Join("results", "devnet-report.json"),
		"--output-dir redirects the report files")
}
