package checks

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/lumenfi/chaincheck/internal/orchestrate"
)

// EndpointConfig validates that an endpoint URL is well formed without
// touching the network. This is the whole suite in --config-only mode.
func EndpointConfig(network, endpoint string) orchestrate.Check {
	return orchestrate.Check{
		Name:     "endpoint-config",
		Required: true,
		Run: func(context.Context) (*orchestrate.Outcome, error) {
			u, err := url.Parse(endpoint)
			if err != nil {
				return nil, fmt.Errorf("%s endpoint %q: %w", network, endpoint, err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return nil, fmt.Errorf("%s endpoint %q: unsupported scheme %q", network, endpoint, u.Scheme)
			}
			if u.Host == "" {
				return nil, fmt.Errorf("%s endpoint %q: missing host", network, endpoint)
			}

			payload := map[string]string{"network": network, "endpoint": endpoint}
			if u.Scheme == "http" && !isLoopback(u.Hostname()) {
				return orchestrate.Warn(payload, "endpoint uses plain http"), nil
			}
			return orchestrate.Ok(payload), nil
		},
	}
}

func isLoopback(host string) bool {
	return host == "localhost" || strings.HasPrefix(host, "127.") || host == "::1"
}
