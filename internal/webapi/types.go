package webapi

import "time"

// RunSummary is the API response for a single run in the list.
type RunSummary struct {
	ID          string    `json:"id"`
	Network     string    `json:"network"`
	Endpoint    string    `json:"endpoint"`
	Outcome     string    `json:"outcome"`
	Passed      int       `json:"passed"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
	TotalChecks int       `json:"totalChecks"`
	Duration    float64   `json:"duration"`
	Timestamp   time.Time `json:"timestamp"`
}

// RunDetail is the API response for a single run with per-check results.
type RunDetail struct {
	RunSummary
	Checks   []CheckView `json:"checks"`
	Warnings []string    `json:"warnings"`
	Errors   []string    `json:"errors"`
}

// CheckView is a per-check result within a run.
type CheckView struct {
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Required bool    `json:"required"`
	Duration float64 `json:"duration"`
	Error    string  `json:"error,omitempty"`
}

// SummaryResponse is the aggregate KPI response.
type SummaryResponse struct {
	TotalRuns   int      `json:"totalRuns"`
	TotalChecks int      `json:"totalChecks"`
	PassRate    float64  `json:"passRate"`
	Networks    []string `json:"networks"`
	AvgDuration float64  `json:"avgDuration"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
