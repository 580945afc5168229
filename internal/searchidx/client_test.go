package searchidx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigured(t *testing.T) {
	assert.False(t, Config{}.Configured())
	assert.False(t, Config{AppID: "APP"}.Configured())
	assert.True(t, Config{AppID: "APP", APIKey: "key"}.Configured())
}

func TestQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/indexes/docs/query", r.URL.Path)
		assert.Equal(t, "APP", r.Header.Get("X-Algolia-Application-Id"))
		assert.Equal(t, "secret", r.Header.Get("X-Algolia-API-Key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "swap", body["query"])

		json.NewEncoder(w).Encode(map[string]any{"nbHits": 17, "processingTimeMS": 3}) //nolint:errcheck
	}))
	t.Cleanup(srv.Close)

	client := New(Config{AppID: "APP", APIKey: "secret", Index: "docs", BaseURL: srv.URL}, nil)
	res, err := client.Query(context.Background(), "swap")
	require.NoError(t, err)
	assert.Equal(t, 17, res.Hits)
	assert.Equal(t, int64(3), res.ProcessingMs)
}

func TestStats(t *testing.T) {
	updated := time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1/indexes/docs/settings", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{ //nolint:errcheck
			"entries":   1204,
			"updatedAt": updated.Format(time.RFC3339),
		})
	}))
	t.Cleanup(srv.Close)

	client := New(Config{AppID: "APP", APIKey: "secret", Index: "docs", BaseURL: srv.URL}, nil)
	stats, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1204, stats.Entries)
	assert.True(t, stats.UpdatedAt.Equal(updated))
}

func TestQuery_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	client := New(Config{AppID: "APP", APIKey: "bad", Index: "docs", BaseURL: srv.URL}, nil)
	_, err := client.Query(context.Background(), "swap")
	assert.ErrorContains(t, err, "HTTP 403")
}
