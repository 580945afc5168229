// Package orchestrate runs an ordered list of named checks against a network
// endpoint, isolating each check's failure from its siblings.
package orchestrate

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lumenfi/chaincheck/internal/models"
)

// Outcome is what a check hands back on completion: an arbitrary payload for
// the report plus any soft problems observed along the way.
type Outcome struct {
	Payload  any
	Warnings []string
}

// Ok wraps a payload in a warning-free Outcome.
func Ok(payload any) *Outcome {
	return &Outcome{Payload: payload}
}

// Warn wraps a payload with soft-problem warnings attached.
func Warn(payload any, warnings ...string) *Outcome {
	return &Outcome{Payload: payload, Warnings: warnings}
}

// CheckFunc is one nullary check. Returned errors (and panics) are recorded
// as failures; they never abort the run.
type CheckFunc func(ctx context.Context) (*Outcome, error)

// Check is a named check in a suite.
type Check struct {
	Name     string
	Required bool
	Run      CheckFunc
}

// skipError marks a check as skipped rather than failed.
type skipError struct {
	reason string
}

func (e *skipError) Error() string { return e.reason }

// Skip returns an error that records the check as skipped, with the reason
// surfaced as a run warning.
func Skip(format string, args ...any) error {
	return &skipError{reason: fmt.Sprintf(format, args...)}
}

// EventType identifies a progress event.
type EventType string

const (
	EventRunStart      EventType = "run_start"
	EventCheckStart    EventType = "check_start"
	EventCheckComplete EventType = "check_complete"
	EventRunComplete   EventType = "run_complete"
)

// ProgressEvent is delivered to listeners as the run advances.
type ProgressEvent struct {
	EventType   EventType
	CheckName   string
	CheckNum    int
	TotalChecks int
	Status      models.Status
	DurationMs  int64
	Error       string
}

// ProgressListener receives progress updates.
type ProgressListener func(event ProgressEvent)

// Runner executes check suites sequentially.
type Runner struct {
	network  string
	endpoint string

	progressMu sync.Mutex
	listeners  []ProgressListener
}

// NewRunner creates a Runner for one network endpoint.
func NewRunner(network, endpoint string) *Runner {
	return &Runner{network: network, endpoint: endpoint}
}

// OnProgress registers a progress listener.
func (r *Runner) OnProgress(listener ProgressListener) {
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	r.listeners = append(r.listeners, listener)
}

func (r *Runner) notifyProgress(event ProgressEvent) {
	r.progressMu.Lock()
	listeners := make([]ProgressListener, len(r.listeners))
	copy(listeners, r.listeners)
	r.progressMu.Unlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// Run executes every check in order and returns the accumulated report.
// A failing or panicking check never terminates the run; only context
// cancellation does, between checks, leaving the remaining checks unrun.
func (r *Runner) Run(ctx context.Context, checks []Check) *models.RunReport {
	start := time.Now()
	report := &models.RunReport{
		RunID:     fmt.Sprintf("run-%s-%d", r.network, start.UnixNano()),
		Network:   r.network,
		Endpoint:  r.endpoint,
		StartedAt: start,
		Results:   make([]models.CheckResult, 0, len(checks)),
	}

	r.notifyProgress(ProgressEvent{
		EventType:   EventRunStart,
		TotalChecks: len(checks),
	})

	for i, chk := range checks {
		if ctx.Err() != nil {
			break
		}

		r.notifyProgress(ProgressEvent{
			EventType:   EventCheckStart,
			CheckName:   chk.Name,
			CheckNum:    i + 1,
			TotalChecks: len(checks),
		})

		result := r.runOne(ctx, chk, report)
		report.Results = append(report.Results, result)

		r.notifyProgress(ProgressEvent{
			EventType:   EventCheckComplete,
			CheckName:   chk.Name,
			CheckNum:    i + 1,
			TotalChecks: len(checks),
			Status:      result.Status(),
			DurationMs:  result.DurationMs,
			Error:       result.Error,
		})
	}

	report.FinishedAt = time.Now()
	report.ComputeDigest()

	r.notifyProgress(ProgressEvent{
		EventType:  EventRunComplete,
		DurationMs: report.Digest.DurationMs,
	})

	return report
}

// runOne executes a single check behind a panic boundary.
func (r *Runner) runOne(ctx context.Context, chk Check, report *models.RunReport) models.CheckResult {
	start := time.Now()

	outcome, err := callProtected(ctx, chk.Run)
	duration := time.Since(start).Milliseconds()

	result := models.CheckResult{
		Name:       chk.Name,
		Required:   chk.Required,
		DurationMs: duration,
	}

	var skip *skipError
	switch {
	case errors.As(err, &skip):
		result.Skipped = true
		report.Warnings = append(report.Warnings, fmt.Sprintf("%s: skipped: %s", chk.Name, skip.reason))
	case err != nil:
		result.Error = err.Error()
		if chk.Required {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %s", chk.Name, err))
		}
	default:
		result.Success = true
	}

	if outcome != nil {
		result.Payload = outcome.Payload
		for _, w := range outcome.Warnings {
			report.Warnings = append(report.Warnings, fmt.Sprintf("%s: %s", chk.Name, w))
		}
	}

	return result
}

func callProtected(ctx context.Context, fn CheckFunc) (outcome *Outcome, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			outcome = nil
			err = fmt.Errorf("check panicked: %v\n%s", rec, debug.Stack())
		}
	}()
	return fn(ctx)
}
