package main

import (
	"github.com/spf13/cobra"

	"github.com/lumenfi/chaincheck/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port       int
		resultsDir string
		noBrowser  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a local dashboard over the results directory",
		Long: `Start a local HTTP server that browses past run reports.

The server exposes the rendered HTML reports plus a small JSON API
(/api/runs, /api/runs/{id}, /api/summary) over the report files in the
results directory. It binds to loopback only.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if port == 0 {
				port = cfg.Server.Port
			}
			if resultsDir == "" {
				resultsDir = cfg.Reports.Dir
			}

			srv, err := webserver.New(webserver.Config{
				Port:       port,
				ResultsDir: resultsDir,
				NoBrowser:  noBrowser,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default: from config)")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Results directory to serve (default: from config)")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Do not open a browser")

	return cmd
}
