// Package searchidx queries the docs search service used by the
// documentation site, for freshness and reachability checks.
package searchidx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Config carries the search service credentials. Credentials are optional;
// when absent the live search checks are skipped with a warning.
type Config struct {
	AppID   string
	APIKey  string
	Index   string
	BaseURL string // overrides the derived service URL, used by tests
}

// Configured reports whether credentials are present.
func (c Config) Configured() bool {
	return c.AppID != "" && c.APIKey != ""
}

// Client talks to the search service's query and index-stats endpoints.
type Client struct {
	cfg  Config
	http *http.Client
}

// New creates a search client. The HTTP client may be nil for defaults.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{cfg: cfg, http: httpClient}
}

func (c *Client) baseURL() string {
	if c.cfg.BaseURL != "" {
		return c.cfg.BaseURL
	}
	return fmt.Sprintf("https://%s-dsn.algolia.net", c.cfg.AppID)
}

// QueryResult summarizes a search query response.
type QueryResult struct {
	Hits         int   `json:"hits"`
	ProcessingMs int64 `json:"processing_ms"`
}

// Query runs a search and returns the hit count.
func (c *Client) Query(ctx context.Context, query string) (*QueryResult, error) {
	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/1/indexes/%s/query", c.baseURL(), c.cfg.Index)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	c.setAuth(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search query: HTTP %d", resp.StatusCode)
	}

	var out struct {
		NbHits           int   `json:"nbHits"`
		ProcessingTimeMS int64 `json:"processingTimeMS"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return &QueryResult{Hits: out.NbHits, ProcessingMs: out.ProcessingTimeMS}, nil
}

// IndexStats describes the index's size and last update time.
type IndexStats struct {
	Entries   int       `json:"entries"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stats fetches index metadata from the settings endpoint.
func (c *Client) Stats(ctx context.Context) (*IndexStats, error) {
	url := fmt.Sprintf("%s/1/indexes/%s/settings", c.baseURL(), c.cfg.Index)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	c.setAuth(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("index stats: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("index stats: HTTP %d", resp.StatusCode)
	}

	var out struct {
		Entries   int    `json:"entries"`
		UpdatedAt string `json:"updatedAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding index stats: %w", err)
	}

	stats := &IndexStats{Entries: out.Entries}
	if out.UpdatedAt != "" {
		ts, err := time.Parse(time.RFC3339, out.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing index updatedAt %q: %w", out.UpdatedAt, err)
		}
		stats.UpdatedAt = ts
	}
	return stats, nil
}

func (c *Client) setAuth(req *http.Request) {
	req.Header.Set("X-Algolia-Application-Id", c.cfg.AppID)
	req.Header.Set("X-Algolia-API-Key", c.cfg.APIKey)
}
