package projectconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_ReturnsAllDefaults(t *testing.T) {
	cfg := New()

	assertEqual(t, "Networks[devnet].Endpoint", DefaultDevnetEndpoint, cfg.Networks["devnet"].Endpoint)
	assertEqual(t, "Networks[testnet].Endpoint", DefaultTestnetEndpoint, cfg.Networks["testnet"].Endpoint)
	assertEqual(t, "Networks[mainnet].Endpoint", DefaultMainnetEndpoint, cfg.Networks["mainnet"].Endpoint)

	if cfg.Checks.RateLimit != DefaultRateLimit {
		t.Errorf("Checks.RateLimit: expected %v, got %v", DefaultRateLimit, cfg.Checks.RateLimit)
	}
	assertEqualInt(t, "Checks.TimeoutSeconds", DefaultTimeoutSeconds, cfg.Checks.TimeoutSeconds)
	assertEqualInt(t, "Checks.LatencySamples", DefaultLatencySamples, cfg.Checks.LatencySamples)
	assertEqualInt(t, "Checks.BurstRequests", DefaultBurstRequests, cfg.Checks.BurstRequests)

	assertEqual(t, "Search.AppID", "", cfg.Search.AppID)
	assertEqual(t, "Search.Index", DefaultSearchIndex, cfg.Search.Index)

	assertEqual(t, "Reports.Dir", DefaultResultsDir, cfg.Reports.Dir)
	assertBoolPtr(t, "Reports.Archive", false, cfg.Reports.Archive)

	assertEqualInt(t, "Server.Port", DefaultServerPort, cfg.Server.Port)
	assertBoolPtr(t, "Debug", false, cfg.Debug)
}

func TestLoad_FullConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".chaincheck.yaml", `
networks:
  devnet:
    endpoint: "http://localhost:8899"
    accounts:
      treasury: "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
    pools:
      sol-usdc: "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"
checks:
  rate_limit: 5
  timeout_seconds: 60
  latency_samples: 20
  burst_requests: 16
search:
  app_id: APP123
  api_key: KEY456
  index: custom-docs
reports:
  dir: "out/"
  archive: true
server:
  port: 8080
debug: true
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	assertEqual(t, "Networks[devnet].Endpoint", "http://localhost:8899", cfg.Networks["devnet"].Endpoint)
	assertEqual(t, "Networks[devnet].Accounts[treasury]",
		"4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T", cfg.Networks["devnet"].Accounts["treasury"])
	// untouched networks keep their defaults
	assertEqual(t, "Networks[mainnet].Endpoint", DefaultMainnetEndpoint, cfg.Networks["mainnet"].Endpoint)

	if cfg.Checks.RateLimit != 5 {
		t.Errorf("Checks.RateLimit: expected 5, got %v", cfg.Checks.RateLimit)
	}
	assertEqualInt(t, "Checks.TimeoutSeconds", 60, cfg.Checks.TimeoutSeconds)
	assertEqual(t, "Search.AppID", "APP123", cfg.Search.AppID)
	assertEqual(t, "Reports.Dir", "out/", cfg.Reports.Dir)
	assertBoolPtr(t, "Reports.Archive", true, cfg.Reports.Archive)
	assertEqualInt(t, "Server.Port", 8080, cfg.Server.Port)
	assertBoolPtr(t, "Debug", true, cfg.Debug)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".chaincheck.yaml", `
checks:
  rate_limit: 2
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Checks.RateLimit != 2 {
		t.Errorf("Checks.RateLimit: expected 2, got %v", cfg.Checks.RateLimit)
	}
	assertEqualInt(t, "Checks.TimeoutSeconds", DefaultTimeoutSeconds, cfg.Checks.TimeoutSeconds)
	assertEqual(t, "Networks[devnet].Endpoint", DefaultDevnetEndpoint, cfg.Networks["devnet"].Endpoint)
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertEqual(t, "Networks[devnet].Endpoint", DefaultDevnetEndpoint, cfg.Networks["devnet"].Endpoint)
}

func TestLoad_WalksUpToParent(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".chaincheck.yaml", `
reports:
  dir: "parent-results/"
`)
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(nested)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertEqual(t, "Reports.Dir", "parent-results/", cfg.Reports.Dir)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".chaincheck.yaml", "networks: [not: a: map")

	if _, err := Load(dir); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CHAINCHECK_RPC_URL_DEVNET", "http://127.0.0.1:8899")
	t.Setenv("SEARCH_APP_ID", "ENVAPP")
	t.Setenv("SEARCH_API_KEY", "ENVKEY")
	t.Setenv("DEBUG_CHECKS", "1")

	dir := t.TempDir()
	writeFile(t, dir, ".chaincheck.yaml", `
networks:
  devnet:
    endpoint: "https://file-endpoint.example.com"
search:
  app_id: FILEAPP
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// env wins over the file
	assertEqual(t, "Networks[devnet].Endpoint", "http://127.0.0.1:8899", cfg.Networks["devnet"].Endpoint)
	assertEqual(t, "Search.AppID", "ENVAPP", cfg.Search.AppID)
	assertEqual(t, "Search.APIKey", "ENVKEY", cfg.Search.APIKey)
	if !cfg.DebugEnabled() {
		t.Error("DEBUG_CHECKS=1 should enable debug")
	}
}

func TestNetwork(t *testing.T) {
	cfg := New()

	net, err := cfg.Network("devnet")
	if err != nil {
		t.Fatalf("Network(devnet): %v", err)
	}
	assertEqual(t, "Endpoint", DefaultDevnetEndpoint, net.Endpoint)

	if _, err := cfg.Network("localnet"); err == nil {
		t.Fatal("expected an error for an unknown network")
	}
}

func TestNetworkNames_Sorted(t *testing.T) {
	names := New().NetworkNames()
	expected := []string{"devnet", "mainnet", "testnet"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, names)
		}
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".chaincheck.yaml")

	cfg := New()
	cfg.Reports.Dir = "saved-results/"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	assertEqual(t, "Reports.Dir", "saved-results/", loaded.Reports.Dir)
}

// Test helpers

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func assertEqual(t *testing.T, field, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %q, got %q", field, expected, actual)
	}
}

func assertEqualInt(t *testing.T, field string, expected, actual int) {
	t.Helper()
	if expected != actual {
		t.Errorf("%s: expected %d, got %d", field, expected, actual)
	}
}

func assertBoolPtr(t *testing.T, field string, expected bool, actual *bool) {
	t.Helper()
	if actual == nil {
		t.Errorf("%s: expected %v, got nil", field, expected)
		return
	}
	if *actual != expected {
		t.Errorf("%s: expected %v, got %v", field, expected, *actual)
	}
}
