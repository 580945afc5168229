// Package webapi exposes run reports from the results directory as a small
// REST API for the dashboard server.
package webapi

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/lumenfi/chaincheck/internal/models"
)

// ErrRunNotFound is returned when a run ID does not match any stored run.
var ErrRunNotFound = errors.New("run not found")

// RunStore provides access to network check run data.
type RunStore interface {
	// ListRuns returns all runs, sorted by the given field and order.
	ListRuns(sortField, order string) ([]RunSummary, error)
	// GetRun returns a single run with full check details.
	GetRun(id string) (*RunDetail, error)
	// Summary returns aggregate metrics across all runs.
	Summary() (*SummaryResponse, error)
}

// FileStore reads RunReport JSON files from a results directory.
type FileStore struct {
	dir string

	mu      sync.RWMutex
	runs    map[string]*models.RunReport
	loaded  bool
	loadErr error
}

// NewFileStore creates a FileStore that reads reports from dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir:  dir,
		runs: make(map[string]*models.RunReport),
	}
}

// load reads all report JSON files from the configured directory.
func (fs *FileStore) load() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.runs = make(map[string]*models.RunReport)

	if fs.dir == "" {
		fs.loaded = true
		return nil
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			fs.loaded = true
			return nil
		}
		fs.loadErr = err
		return err
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rep, err := models.LoadRunReport(filepath.Join(fs.dir, e.Name()))
		if err != nil {
			continue
		}
		if rep.RunID == "" {
			// Use filename (without extension) as fallback ID.
			rep.RunID = strings.TrimSuffix(e.Name(), ".json")
		}
		fs.runs[rep.RunID] = rep
	}

	fs.loaded = true
	fs.loadErr = nil
	return nil
}

// ensureLoaded loads data if not already loaded.
func (fs *FileStore) ensureLoaded() error {
	fs.mu.RLock()
	if fs.loaded {
		fs.mu.RUnlock()
		return nil
	}
	fs.mu.RUnlock()
	return fs.load()
}

// Reload forces a fresh reload of all report files from disk.
func (fs *FileStore) Reload() error {
	return fs.load()
}

func reportToSummary(r *models.RunReport) RunSummary {
	outcome := "passed"
	if !r.Ok() {
		outcome = "failed"
	}

	return RunSummary{
		ID:          r.RunID,
		Network:     r.Network,
		Endpoint:    r.Endpoint,
		Outcome:     outcome,
		Passed:      r.Digest.Passed,
		Failed:      r.Digest.Failed,
		Skipped:     r.Digest.Skipped,
		TotalChecks: r.Digest.TotalChecks,
		Duration:    float64(r.Digest.DurationMs) / 1000.0,
		Timestamp:   r.StartedAt,
	}
}

func reportToDetail(r *models.RunReport) *RunDetail {
	detail := &RunDetail{RunSummary: reportToSummary(r)}

	for _, res := range r.Results {
		detail.Checks = append(detail.Checks, CheckView{
			Name:     res.Name,
			Status:   string(res.Status()),
			Required: res.Required,
			Duration: float64(res.DurationMs) / 1000.0,
			Error:    res.Error,
		})
	}
	if detail.Checks == nil {
		detail.Checks = []CheckView{}
	}

	detail.Warnings = r.Warnings
	if detail.Warnings == nil {
		detail.Warnings = []string{}
	}
	detail.Errors = r.Errors
	if detail.Errors == nil {
		detail.Errors = []string{}
	}

	return detail
}

// ListRuns returns all runs sorted by the given field and order.
func (fs *FileStore) ListRuns(sortField, order string) ([]RunSummary, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	runs := make([]RunSummary, 0, len(fs.runs))
	for _, r := range fs.runs {
		runs = append(runs, reportToSummary(r))
	}

	sortRuns(runs, sortField, order)
	return runs, nil
}

// GetRun returns a single run with full check details.
func (fs *FileStore) GetRun(id string) (*RunDetail, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	r, ok := fs.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}

	return reportToDetail(r), nil
}

// Summary returns aggregate metrics across all runs.
func (fs *FileStore) Summary() (*SummaryResponse, error) {
	if err := fs.ensureLoaded(); err != nil {
		return nil, err
	}

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	resp := &SummaryResponse{Networks: []string{}}
	if len(fs.runs) == 0 {
		return resp, nil
	}

	totalDuration := 0.0
	totalPassed := 0
	totalScored := 0
	networks := make(map[string]bool)

	for _, r := range fs.runs {
		resp.TotalRuns++
		resp.TotalChecks += r.Digest.TotalChecks
		totalPassed += r.Digest.Passed
		totalScored += r.Digest.TotalChecks - r.Digest.Skipped
		totalDuration += float64(r.Digest.DurationMs) / 1000.0
		networks[r.Network] = true
	}

	if totalScored > 0 {
		resp.PassRate = float64(totalPassed) / float64(totalScored) * 100.0
	}
	resp.AvgDuration = totalDuration / float64(resp.TotalRuns)

	for name := range networks {
		resp.Networks = append(resp.Networks, name)
	}
	sort.Strings(resp.Networks)

	return resp, nil
}

func sortRuns(runs []RunSummary, field, order string) {
	less := func(i, j int) bool {
		switch field {
		case "network":
			return runs[i].Network < runs[j].Network
		case "duration":
			return runs[i].Duration < runs[j].Duration
		case "passed":
			return runs[i].Passed < runs[j].Passed
		default: // "timestamp" or empty
			return runs[i].Timestamp.Before(runs[j].Timestamp)
		}
	}

	if order == "asc" {
		sort.Slice(runs, less)
	} else {
		sort.Slice(runs, func(i, j int) bool { return less(j, i) })
	}
}

// Ensure FileStore satisfies RunStore.
var _ RunStore = (*FileStore)(nil)
