// Package report serializes run reports into the formats the results
// directory holds: JSON, HTML, CSV, JUnit XML and a markdown summary.
package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lumenfi/chaincheck/internal/models"
)

// DefaultDir is where reports land unless overridden.
const DefaultDir = "test-results"

// Written lists the files one Write call produced.
type Written struct {
	JSON     string
	HTML     string
	CSV      string
	JUnit    string
	Markdown string
}

// Paths returns the written file paths in a stable order.
func (w Written) Paths() []string {
	return []string{w.JSON, w.HTML, w.CSV, w.JUnit, w.Markdown}
}

// Writer emits every report format for a run into one directory.
type Writer struct {
	dir     string
	log     *slog.Logger
	archive bool
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithLogger sets the logger used for per-file progress.
func WithLogger(log *slog.Logger) WriterOption {
	return func(w *Writer) { w.log = log }
}

// WithArchiving compresses a network's previous report files before the new
// ones are written.
func WithArchiving(enabled bool) WriterOption {
	return func(w *Writer) { w.archive = enabled }
}

// NewWriter creates a Writer targeting dir, which is created on first write.
func NewWriter(dir string, opts ...WriterOption) *Writer {
	if dir == "" {
		dir = DefaultDir
	}
	w := &Writer{dir: dir, log: slog.Default()}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Dir returns the results directory.
func (w *Writer) Dir() string {
	return w.dir
}

// Write emits all formats for the report. Failure to create the results
// directory is fatal to the run; a single format failing is not, it is
// returned after the remaining formats were attempted.
func (w *Writer) Write(rep *models.RunReport) (Written, error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return Written{}, fmt.Errorf("creating results directory %s: %w", w.dir, err)
	}

	if w.archive {
		if err := ArchiveOld(w.dir, rep.Network); err != nil {
			w.log.Warn("archiving previous reports failed", "error", err)
		}
	}

	out := Written{
		JSON:     w.path(rep, "json"),
		HTML:     w.path(rep, "html"),
		CSV:      w.path(rep, "csv"),
		JUnit:    w.path(rep, "xml"),
		Markdown: w.path(rep, "md"),
	}

	var firstErr error
	emit := func(path string, render func(*models.RunReport) ([]byte, error)) {
		data, err := render(rep)
		if err == nil {
			err = os.WriteFile(path, data, 0644)
		}
		if err != nil {
			w.log.Error("writing report", "path", path, "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("writing %s: %w", path, err)
			}
			return
		}
		w.log.Debug("report written", "path", path)
	}

	emit(out.JSON, RenderJSON)
	emit(out.HTML, RenderHTML)
	emit(out.CSV, RenderCSV)
	emit(out.JUnit, RenderJUnit)
	emit(out.Markdown, func(r *models.RunReport) ([]byte, error) {
		return []byte(RenderMarkdown(r)), nil
	})

	return out, firstErr
}

func (w *Writer) path(rep *models.RunReport, ext string) string {
	return filepath.Join(w.dir, fmt.Sprintf("%s-report.%s", rep.Network, ext))
}
