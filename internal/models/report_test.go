package models

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReport() *RunReport {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &RunReport{
		RunID:      "run-1",
		Network:    "devnet",
		Endpoint:   "https://api.devnet.example.org",
		StartedAt:  start,
		FinishedAt: start.Add(4200 * time.Millisecond),
		Results: []CheckResult{
			{Name: "network-health", Success: true, Required: true, DurationMs: 120},
			{Name: "airdrop", Success: false, Required: true, DurationMs: 2400, Error: "insufficient funds"},
			{Name: "search-index", Skipped: true},
			{Name: "latency-sample", Success: true, DurationMs: 900},
		},
	}
}

func TestComputeDigest(t *testing.T) {
	report := newTestReport()
	report.ComputeDigest()

	assert.Equal(t, 4, report.Digest.TotalChecks)
	assert.Equal(t, 2, report.Digest.Passed)
	assert.Equal(t, 1, report.Digest.Failed)
	assert.Equal(t, 1, report.Digest.Skipped)
	assert.Equal(t, 1, report.Digest.RequiredFailed)
	assert.InDelta(t, 2.0/3.0, report.Digest.SuccessRate, 0.001)
	assert.Equal(t, int64(4200), report.Digest.DurationMs)
	assert.False(t, report.Ok())
}

func TestComputeDigest_AllSkipped(t *testing.T) {
	report := &RunReport{
		Results: []CheckResult{{Name: "a", Skipped: true}, {Name: "b", Skipped: true}},
	}
	report.ComputeDigest()

	assert.Equal(t, 0.0, report.Digest.SuccessRate)
	assert.True(t, report.Ok())
}

func TestCheckResultStatus(t *testing.T) {
	assert.Equal(t, StatusPassed, (&CheckResult{Success: true}).Status())
	assert.Equal(t, StatusFailed, (&CheckResult{}).Status())
	assert.Equal(t, StatusSkipped, (&CheckResult{Skipped: true, Success: true}).Status())
}

func TestLoadRunReport_RoundTrip(t *testing.T) {
	report := newTestReport()
	report.ComputeDigest()

	dir := t.TempDir()
	path := filepath.Join(dir, "devnet.json")

	data, err := json.MarshalIndent(report, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0644))

	loaded, err := LoadRunReport(path)
	require.NoError(t, err)

	assert.Equal(t, report.RunID, loaded.RunID)
	assert.Len(t, loaded.Results, 4)
	assert.Equal(t, "insufficient funds", loaded.Results[1].Error)
	assert.Equal(t, report.Digest, loaded.Digest)
}

func TestLoadRunReport_Missing(t *testing.T) {
	_, err := LoadRunReport(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
