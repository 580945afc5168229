package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/lumenfi/chaincheck/internal/models"
)

// InterpretSuccessRate returns a plain-language label for a run's success
// rate over its non-skipped checks.
func InterpretSuccessRate(rate float64) string {
	pct := rate * 100
	switch {
	case pct >= 100:
		return fmt.Sprintf("All checks passed (%.0f%%)", pct)
	case pct >= 80:
		return fmt.Sprintf("Most checks passed (%.0f%%)", pct)
	case pct >= 50:
		return fmt.Sprintf("About half the checks passed (%.0f%%)", pct)
	default:
		return fmt.Sprintf("Few checks passed (%.0f%%)", pct)
	}
}

// RenderMarkdown produces the human-readable run summary, suitable for a
// PR comment or CI job summary.
func RenderMarkdown(rep *models.RunReport) string {
	var b strings.Builder

	d := rep.Digest
	verdict := "✅ PASSED"
	if !rep.Ok() {
		verdict = "❌ FAILED"
	}

	fmt.Fprintf(&b, "## %s network check: %s\n\n", rep.Network, verdict)
	fmt.Fprintf(&b, "**Endpoint:** `%s`  \n", rep.Endpoint)
	fmt.Fprintf(&b, "**Started:** %s  \n", rep.StartedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "**Duration:** %v  \n", time.Duration(d.DurationMs)*time.Millisecond)
	fmt.Fprintf(&b, "**Result:** %s\n\n", InterpretSuccessRate(d.SuccessRate))

	b.WriteString("| Check | Status | Duration |\n")
	b.WriteString("|-------|--------|----------|\n")
	for _, res := range rep.Results {
		icon := "✓"
		switch res.Status() {
		case models.StatusFailed:
			icon = "✗"
		case models.StatusSkipped:
			icon = "–"
		}
		fmt.Fprintf(&b, "| %s | %s %s | %dms |\n", res.Name, icon, res.Status(), res.DurationMs)
	}

	if len(rep.Errors) > 0 {
		b.WriteString("\n### Errors\n\n")
		for _, e := range rep.Errors {
			fmt.Fprintf(&b, "- %s\n", e)
		}
	}
	if len(rep.Warnings) > 0 {
		b.WriteString("\n### Warnings\n\n")
		for _, w := range rep.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}
