// Package projectconfig provides the ProjectConfig struct and loader for
// .chaincheck.yaml project-level configuration files, with environment
// variable overrides layered on top.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values for project configuration.
const (
	DefaultResultsDir = "test-results"

	DefaultDevnetEndpoint  = "https://api.devnet.solana.com"
	DefaultTestnetEndpoint = "https://api.testnet.solana.com"
	DefaultMainnetEndpoint = "https://api.mainnet-beta.solana.com"

	DefaultRateLimit      = 10.0 // requests per second
	DefaultTimeoutSeconds = 30
	DefaultLatencySamples = 10
	DefaultBurstRequests  = 8

	DefaultSearchIndex = "chaincheck-docs"

	DefaultServerPort = 3000
)

// NetworkConfig describes one RPC target and the on-chain accounts the
// suites verify against it.
type NetworkConfig struct {
	Endpoint string            `yaml:"endpoint,omitempty"`
	Accounts map[string]string `yaml:"accounts,omitempty"`
	Pools    map[string]string `yaml:"pools,omitempty"`
}

// ChecksConfig holds check execution parameters.
type ChecksConfig struct {
	RateLimit      float64 `yaml:"rate_limit,omitempty"`
	TimeoutSeconds int     `yaml:"timeout_seconds,omitempty"`
	LatencySamples int     `yaml:"latency_samples,omitempty"`
	BurstRequests  int     `yaml:"burst_requests,omitempty"`
}

// SearchConfig holds the docs search service credentials. Both keys are
// optional; without them the live search checks are skipped.
type SearchConfig struct {
	AppID  string `yaml:"app_id,omitempty"`
	APIKey string `yaml:"api_key,omitempty"`
	Index  string `yaml:"index,omitempty"`
}

// ReportsConfig holds report output settings.
type ReportsConfig struct {
	Dir     string `yaml:"dir,omitempty"`
	Archive *bool  `yaml:"archive,omitempty"`
}

// ServerConfig holds report dashboard server settings.
type ServerConfig struct {
	Port int `yaml:"port,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .chaincheck.yaml.
type ProjectConfig struct {
	Networks map[string]NetworkConfig `yaml:"networks,omitempty"`
	Checks   ChecksConfig             `yaml:"checks,omitempty"`
	Search   SearchConfig             `yaml:"search,omitempty"`
	Reports  ReportsConfig            `yaml:"reports,omitempty"`
	Server   ServerConfig             `yaml:"server,omitempty"`
	Debug    *bool                    `yaml:"debug,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Networks: map[string]NetworkConfig{
			"devnet":  {Endpoint: DefaultDevnetEndpoint},
			"testnet": {Endpoint: DefaultTestnetEndpoint},
			"mainnet": {Endpoint: DefaultMainnetEndpoint},
		},
		Checks: ChecksConfig{
			RateLimit:      DefaultRateLimit,
			TimeoutSeconds: DefaultTimeoutSeconds,
			LatencySamples: DefaultLatencySamples,
			BurstRequests:  DefaultBurstRequests,
		},
		Search: SearchConfig{
			Index: DefaultSearchIndex,
		},
		Reports: ReportsConfig{
			Dir:     DefaultResultsDir,
			Archive: boolPtr(false),
		},
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
		Debug: boolPtr(false),
	}
}

// Load finds .chaincheck.yaml by walking up from startDir (max 10 levels),
// unmarshals it, fills in missing fields with defaults, and applies
// environment overrides. A .env file in the working directory is loaded
// first so overrides can come from either source.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	// Missing .env is the normal case.
	_ = godotenv.Load() //nolint:errcheck

	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("loading .chaincheck.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .chaincheck.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	cfg.applyEnv()
	return cfg, nil
}

// Network returns the configuration for a named network.
func (c *ProjectConfig) Network(name string) (NetworkConfig, error) {
	net, ok := c.Networks[name]
	if !ok {
		return NetworkConfig{}, fmt.Errorf("unknown network %q (configured: %s)",
			name, strings.Join(c.NetworkNames(), ", "))
	}
	if net.Endpoint == "" {
		return NetworkConfig{}, fmt.Errorf("network %q has no endpoint configured", name)
	}
	return net, nil
}

// NetworkNames returns the configured network names, sorted.
func (c *ProjectConfig) NetworkNames() []string {
	names := make([]string, 0, len(c.Networks))
	for name := range c.Networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DebugEnabled reports whether debug logging is on.
func (c *ProjectConfig) DebugEnabled() bool {
	return c.Debug != nil && *c.Debug
}

// ArchiveEnabled reports whether old reports are compressed before a run.
func (c *ProjectConfig) ArchiveEnabled() bool {
	return c.Reports.Archive != nil && *c.Reports.Archive
}

// Save writes the configuration as YAML to path.
func (c *ProjectConfig) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// findConfigFile walks up from dir looking for .chaincheck.yaml (max 10
// levels). Returns os.ErrNotExist if no config file is found. Propagates
// real I/O errors (e.g. permission denied) instead of silently swallowing
// them.
func findConfigFile(dir string) ([]byte, error) {
	// Convert to absolute path so filepath.Dir(".") walks correctly.
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".chaincheck.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero values from src onto dst.
func mergeConfig(dst, src *ProjectConfig) {
	for name, net := range src.Networks {
		merged := dst.Networks[name]
		if net.Endpoint != "" {
			merged.Endpoint = net.Endpoint
		}
		if len(net.Accounts) > 0 {
			merged.Accounts = net.Accounts
		}
		if len(net.Pools) > 0 {
			merged.Pools = net.Pools
		}
		dst.Networks[name] = merged
	}

	if src.Checks.RateLimit != 0 {
		dst.Checks.RateLimit = src.Checks.RateLimit
	}
	if src.Checks.TimeoutSeconds != 0 {
		dst.Checks.TimeoutSeconds = src.Checks.TimeoutSeconds
	}
	if src.Checks.LatencySamples != 0 {
		dst.Checks.LatencySamples = src.Checks.LatencySamples
	}
	if src.Checks.BurstRequests != 0 {
		dst.Checks.BurstRequests = src.Checks.BurstRequests
	}

	if src.Search.AppID != "" {
		dst.Search.AppID = src.Search.AppID
	}
	if src.Search.APIKey != "" {
		dst.Search.APIKey = src.Search.APIKey
	}
	if src.Search.Index != "" {
		dst.Search.Index = src.Search.Index
	}

	if src.Reports.Dir != "" {
		dst.Reports.Dir = src.Reports.Dir
	}
	if src.Reports.Archive != nil {
		dst.Reports.Archive = src.Reports.Archive
	}

	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}

	if src.Debug != nil {
		dst.Debug = src.Debug
	}
}

// applyEnv layers environment variable overrides onto the merged config.
// Endpoint overrides use CHAINCHECK_RPC_URL_<NETWORK> with the network name
// uppercased.
func (c *ProjectConfig) applyEnv() {
	for name, net := range c.Networks {
		key := "CHAINCHECK_RPC_URL_" + strings.ToUpper(name)
		if v := os.Getenv(key); v != "" {
			net.Endpoint = v
			c.Networks[name] = net
		}
	}

	if v := os.Getenv("SEARCH_APP_ID"); v != "" {
		c.Search.AppID = v
	}
	if v := os.Getenv("SEARCH_API_KEY"); v != "" {
		c.Search.APIKey = v
	}
	if v := os.Getenv("SEARCH_INDEX"); v != "" {
		c.Search.Index = v
	}
	if v := os.Getenv("CHAINCHECK_RESULTS_DIR"); v != "" {
		c.Reports.Dir = v
	}
	if os.Getenv("DEBUG_CHECKS") == "1" || strings.EqualFold(os.Getenv("DEBUG_CHECKS"), "true") {
		c.Debug = boolPtr(true)
	}
}

func boolPtr(b bool) *bool {
	return &b
}
