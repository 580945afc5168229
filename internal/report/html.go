package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/lumenfi/chaincheck/internal/models"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"payloadJSON": payloadJSON,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Report.Network}} network check</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 60rem; color: #1c1e21; }
header { border-bottom: 2px solid #e3e3e3; padding-bottom: 1rem; }
.digest { display: flex; gap: 2rem; margin: 1rem 0; }
.digest div { text-align: center; }
.digest .count { font-size: 1.6rem; font-weight: 700; }
.result { border: 1px solid #e3e3e3; border-radius: 6px; padding: 0.8rem 1rem; margin: 0.6rem 0; }
.result.passed { border-left: 5px solid #2e8555; }
.result.failed { border-left: 5px solid #d73a49; }
.result.skipped { border-left: 5px solid #999; opacity: 0.8; }
.status { text-transform: uppercase; font-size: 0.8rem; font-weight: 700; }
.passed .status { color: #2e8555; }
.failed .status { color: #d73a49; }
.error { color: #d73a49; margin-top: 0.4rem; }
pre { background: #f6f8fa; padding: 0.6rem; border-radius: 4px; overflow-x: auto; font-size: 0.85rem; }
.notes { background: #f6f8fa; border-radius: 6px; padding: 0.5rem 1rem; margin-top: 1.5rem; }
.warnings li { color: #9a6700; }
.errors li { color: #d73a49; }
</style>
</head>
<body>
<header>
<h1>{{.Report.Network}} network check</h1>
<p>Endpoint <code>{{.Report.Endpoint}}</code> · {{.Report.StartedAt.Format "2006-01-02 15:04:05 MST"}} · {{.Duration}}</p>
</header>

<div class="digest">
<div><div class="count">{{.Report.Digest.Passed}}</div>passed</div>
<div><div class="count">{{.Report.Digest.Failed}}</div>failed</div>
<div><div class="count">{{.Report.Digest.Skipped}}</div>skipped</div>
</div>

{{range .Report.Results}}
<div class="result {{.Status}}">
<span class="status">{{.Status}}</span>
<strong>{{.Name}}</strong>
<span>({{.DurationMs}}ms)</span>
{{if .Error}}<div class="error">{{.Error}}</div>{{end}}
{{with payloadJSON .Payload}}<pre>{{.}}</pre>{{end}}
</div>
{{end}}

{{if .Report.Errors}}
<h2>Errors</h2>
<ul class="errors">{{range .Report.Errors}}<li>{{.}}</li>{{end}}</ul>
{{end}}

{{if .Report.Warnings}}
<h2>Warnings</h2>
<ul class="warnings">{{range .Report.Warnings}}<li>{{.}}</li>{{end}}</ul>
{{end}}

<div class="notes">
{{.Notes}}
</div>
</body>
</html>
`))

// RenderHTML produces the dashboard: one block per result with its status
// string, plus the rendered markdown summary as closing notes.
func RenderHTML(rep *models.RunReport) ([]byte, error) {
	notes, err := renderNotes(rep)
	if err != nil {
		return nil, fmt.Errorf("rendering summary notes: %w", err)
	}

	data := struct {
		Report   *models.RunReport
		Duration time.Duration
		Notes    template.HTML
	}{
		Report:   rep,
		Duration: time.Duration(rep.Digest.DurationMs) * time.Millisecond,
		Notes:    notes,
	}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderNotes converts the markdown summary into HTML for the dashboard's
// notes section.
func renderNotes(rep *models.RunReport) (template.HTML, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(RenderMarkdown(rep)), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil //nolint:gosec // markdown source is our own summary
}

func payloadJSON(payload any) string {
	if payload == nil {
		return ""
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return ""
	}
	return string(data)
}
