// Package wizard implements the interactive .chaincheck.yaml setup form.
package wizard

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/lumenfi/chaincheck/internal/projectconfig"
)

// Answers holds all fields collected during the interactive wizard.
type Answers struct {
	DevnetEndpoint  string
	MainnetEndpoint string
	RateLimit       float64
	ResultsDir      string
	SearchAppID     string
	SearchAPIKey    string
	ArchiveReports  bool
}

// Run presents the huh form and collects project settings.
func Run(in io.Reader, out io.Writer) (*Answers, error) {
	var (
		devnetEndpoint  = projectconfig.DefaultDevnetEndpoint
		mainnetEndpoint = projectconfig.DefaultMainnetEndpoint
		rateLimitRaw    = strconv.FormatFloat(projectconfig.DefaultRateLimit, 'f', -1, 64)
		resultsDir      = projectconfig.DefaultResultsDir
		searchAppID     string
		searchAPIKey    string
		archiveReports  bool
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Devnet RPC endpoint").
				Description("The devnet endpoint the validation suites call").
				Value(&devnetEndpoint).
				Validate(validateEndpoint),
			huh.NewInput().
				Title("Mainnet RPC endpoint").
				Description("The mainnet endpoint for read-only checks").
				Value(&mainnetEndpoint).
				Validate(validateEndpoint),
			huh.NewInput().
				Title("Rate limit (requests/second)").
				Description("Spacing enforced between outbound RPC calls").
				Value(&rateLimitRaw).
				Validate(validateRate),
			huh.NewInput().
				Title("Results directory").
				Description("Where JSON/HTML/CSV reports are written").
				Value(&resultsDir),
			huh.NewInput().
				Title("Search app ID (optional)").
				Description("Docs search credentials; leave empty to skip live search checks").
				Value(&searchAppID),
			huh.NewInput().
				Title("Search API key (optional)").
				EchoMode(huh.EchoModePassword).
				Value(&searchAPIKey),
			huh.NewConfirm().
				Title("Archive old reports?").
				Description("Compress previous report files before each run").
				Value(&archiveReports),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("wizard failed: %w", err)
	}

	rate, err := strconv.ParseFloat(strings.TrimSpace(rateLimitRaw), 64)
	if err != nil {
		rate = projectconfig.DefaultRateLimit
	}

	return &Answers{
		DevnetEndpoint:  strings.TrimSpace(devnetEndpoint),
		MainnetEndpoint: strings.TrimSpace(mainnetEndpoint),
		RateLimit:       rate,
		ResultsDir:      strings.TrimSpace(resultsDir),
		SearchAppID:     strings.TrimSpace(searchAppID),
		SearchAPIKey:    strings.TrimSpace(searchAPIKey),
		ArchiveReports:  archiveReports,
	}, nil
}

// BuildConfig turns the collected answers into a ProjectConfig ready to be
// saved.
func BuildConfig(a *Answers) *projectconfig.ProjectConfig {
	cfg := projectconfig.New()

	devnet := cfg.Networks["devnet"]
	devnet.Endpoint = a.DevnetEndpoint
	cfg.Networks["devnet"] = devnet

	mainnet := cfg.Networks["mainnet"]
	mainnet.Endpoint = a.MainnetEndpoint
	cfg.Networks["mainnet"] = mainnet

	cfg.Checks.RateLimit = a.RateLimit
	if a.ResultsDir != "" {
		cfg.Reports.Dir = a.ResultsDir
	}
	cfg.Search.AppID = a.SearchAppID
	cfg.Search.APIKey = a.SearchAPIKey
	archive := a.ArchiveReports
	cfg.Reports.Archive = &archive

	return cfg
}

func validateEndpoint(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint needs a host")
	}
	return nil
}

func validateRate(s string) error {
	rate, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("must be a number")
	}
	if rate <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}
