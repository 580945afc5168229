package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/lumenfi/chaincheck/internal/models"
)

var (
	passColor = color.New(color.FgGreen)
	failColor = color.New(color.FgRed, color.Bold)
	skipColor = color.New(color.FgYellow)
)

// formatDuration formats a duration in a consistent, human-readable way.
// This ensures stable output regardless of Go version changes.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(10 * time.Millisecond).String()
}

// printRunTable renders the per-check summary table for one run.
func printRunTable(w io.Writer, rep *models.RunReport) {
	nameWidth := len("Check")
	for _, res := range rep.Results {
		if width := runewidth.StringWidth(res.Name); width > nameWidth {
			nameWidth = width
		}
	}

	fmt.Fprintf(w, "\n%s network check (%s)\n\n", rep.Network, rep.Endpoint)
	fmt.Fprintf(w, "  %s  %-8s  %s\n", runewidth.FillRight("Check", nameWidth), "Status", "Duration")
	fmt.Fprintf(w, "  %s  %s  %s\n", strings.Repeat("-", nameWidth), strings.Repeat("-", 8), strings.Repeat("-", 8))

	for _, res := range rep.Results {
		status := statusColor(res.Status()).Sprintf("%-8s", res.Status())
		fmt.Fprintf(w, "  %s  %s  %s\n",
			runewidth.FillRight(res.Name, nameWidth),
			status,
			formatDuration(time.Duration(res.DurationMs)*time.Millisecond))
		if res.Error != "" {
			fmt.Fprintf(w, "  %s  %s\n",
				strings.Repeat(" ", nameWidth),
				failColor.Sprint(res.Error))
		}
	}

	d := rep.Digest
	fmt.Fprintf(w, "\n  %d checks: %s, %s, %s in %s\n",
		d.TotalChecks,
		passColor.Sprintf("%d passed", d.Passed),
		failColor.Sprintf("%d failed", d.Failed),
		skipColor.Sprintf("%d skipped", d.Skipped),
		formatDuration(time.Duration(d.DurationMs)*time.Millisecond))

	if len(rep.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings:\n")
		for _, warning := range rep.Warnings {
			fmt.Fprintf(w, "  %s %s\n", skipColor.Sprint("!"), warning)
		}
	}
	if len(rep.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors:\n")
		for _, e := range rep.Errors {
			fmt.Fprintf(w, "  %s %s\n", failColor.Sprint("✗"), e)
		}
	}
}

func statusColor(s models.Status) *color.Color {
	switch s {
	case models.StatusPassed:
		return passColor
	case models.StatusSkipped:
		return skipColor
	default:
		return failColor
	}
}
