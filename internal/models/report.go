package models

import (
	"encoding/json"
	"os"
	"time"
)

// Status represents the outcome status of a check.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// CheckResult is the recorded outcome of one named check.
type CheckResult struct {
	Name       string `json:"name"`
	Success    bool   `json:"success"`
	Required   bool   `json:"required"`
	Skipped    bool   `json:"skipped,omitempty"`
	DurationMs int64  `json:"duration_ms"`
	// Payload carries the check's arbitrary result object (slot numbers,
	// latency samples, account info) for the JSON report.
	Payload any    `json:"result,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Status derives the display status from the success/skipped flags.
func (c *CheckResult) Status() Status {
	switch {
	case c.Skipped:
		return StatusSkipped
	case c.Success:
		return StatusPassed
	default:
		return StatusFailed
	}
}

// RunReport aggregates the results of one validation run against a network.
type RunReport struct {
	RunID      string        `json:"run_id"`
	Network    string        `json:"network"`
	Endpoint   string        `json:"endpoint"`
	StartedAt  time.Time     `json:"started_at"`
	FinishedAt time.Time     `json:"finished_at"`
	Results    []CheckResult `json:"results"`
	Warnings   []string      `json:"warnings,omitempty"`
	Errors     []string      `json:"errors,omitempty"`
	Digest     RunDigest     `json:"summary"`
}

// RunDigest holds the rolled-up counts for a run.
type RunDigest struct {
	TotalChecks    int     `json:"total_checks"`
	Passed         int     `json:"passed"`
	Failed         int     `json:"failed"`
	Skipped        int     `json:"skipped"`
	RequiredFailed int     `json:"required_failed"`
	SuccessRate    float64 `json:"success_rate"`
	DurationMs     int64   `json:"duration_ms"`
}

// ComputeDigest recalculates the digest from the recorded results.
func (r *RunReport) ComputeDigest() {
	d := RunDigest{TotalChecks: len(r.Results)}
	for _, res := range r.Results {
		switch {
		case res.Skipped:
			d.Skipped++
		case res.Success:
			d.Passed++
		default:
			d.Failed++
			if res.Required {
				d.RequiredFailed++
			}
		}
	}
	scored := d.TotalChecks - d.Skipped
	if scored > 0 {
		d.SuccessRate = float64(d.Passed) / float64(scored)
	}
	d.DurationMs = r.FinishedAt.Sub(r.StartedAt).Milliseconds()
	r.Digest = d
}

// Ok reports whether the run had no required-check failures.
func (r *RunReport) Ok() bool {
	return r.Digest.RequiredFailed == 0
}

// LoadRunReport reads a JSON run report from disk.
func LoadRunReport(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var report RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
