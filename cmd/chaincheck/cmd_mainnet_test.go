package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumenfi/chaincheck/internal/models"
)

func TestMainnetCommand_FlagOverrides(t *testing.T) {
	srv := newRPCServer(t)
	t.Setenv("SEARCH_APP_ID", "")
	t.Setenv("SEARCH_API_KEY", "")
	writeProjectFile(t, `
networks:
  mainnet:
    endpoint: "https://unreachable.invalid"
checks:
  rate_limit: 500
  timeout_seconds: 5
  latency_samples: 2
  burst_requests: 2
reports:
  dir: "results"
`)
	outDir := filepath.Join(t.TempDir(), "flagged")

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"mainnet", "--rpc-url", srv.URL, "--output-dir", outDir})
	require.NoError(t, cmd.Execute())

	rep, err := models.LoadRunReport(filepath.Join(outDir, "mainnet-report.json"))
	require.NoError(t, err)
	assert.Equal(t, srv.URL, rep.Endpoint, "--rpc-url replaces the configured endpoint")
	assert.True(t, rep.Ok())

	names := make([]string, 0, len(rep.Results))
	for _, res := range rep.Results {
		names = append(names, res.Name)
	}
	assert.Contains(t, names, "performance-samples")
	assert.NotContains(t, names, "airdrop", "mainnet runs stay read-only")
	assert.Equal(t, 2, rep.Digest.Skipped, "search checks skip without credentials")

	assert.NoFileExists(t, filepath.Join("results", "mainnet-report.json"),
		"--output-dir redirects the report files")
}
