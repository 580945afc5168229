package webserver

import (
	"html/template"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/lumenfi/chaincheck/internal/webapi"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>chaincheck reports</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem auto; max-width: 48rem; }
li { margin: 0.4rem 0; }
.hint { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>chaincheck reports</h1>
{{if .Reports}}
<ul>
{{range .Reports}}<li><a href="/reports/{{.}}">{{.}}</a></li>
{{end}}</ul>
{{else}}
<p>No reports yet. Run a network check first.</p>
{{end}}
<p class="hint">Raw data at <a href="/api/runs">/api/runs</a>.</p>
</body>
</html>
`))

// registerRoutes sets up the API, the report file server, and the index page.
func registerRoutes(mux *http.ServeMux, store webapi.RunStore, cfg Config) {
	webapi.RegisterRoutes(mux, store)

	// Rendered report files straight off disk.
	mux.Handle("GET /reports/", http.StripPrefix("/reports/",
		http.FileServer(http.Dir(cfg.ResultsDir))))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		handleIndex(w, cfg.ResultsDir)
	})
}

// handleIndex lists the HTML reports available in the results directory.
func handleIndex(w http.ResponseWriter, resultsDir string) {
	var reports []string
	entries, err := os.ReadDir(resultsDir)
	if err == nil {
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".html") {
				reports = append(reports, e.Name())
			}
		}
	}
	sort.Strings(reports)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct{ Reports []string }{Reports: reports}
	indexTemplate.Execute(w, data) //nolint:errcheck
}
