package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenfi/chaincheck/internal/orchestrate"
	"github.com/lumenfi/chaincheck/internal/searchidx"
)

// StaleIndexThreshold is how old the search index may be before freshness
// checks emit a warning.
const StaleIndexThreshold = 7 * 24 * time.Hour

// SearchQuery runs a live query against the docs search index. Missing
// credentials skip the check rather than failing it.
func SearchQuery(client *searchidx.Client, cfg searchidx.Config, query string) orchestrate.Check {
	return orchestrate.Check{
		Name: "search-query",
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			if !cfg.Configured() {
				return nil, orchestrate.Skip("search credentials not configured")
			}

			res, err := client.Query(ctx, query)
			if err != nil {
				return nil, err
			}
			if res.Hits == 0 {
				return nil, fmt.Errorf("query %q returned no hits", query)
			}
			return orchestrate.Ok(res), nil
		},
	}
}

// SearchFreshness checks the index's last update time. A stale index is a
// soft problem.
func SearchFreshness(client *searchidx.Client, cfg searchidx.Config) orchestrate.Check {
	return SearchFreshnessAt(client, cfg, time.Now)
}

// SearchFreshnessAt is SearchFreshness with an injectable clock.
func SearchFreshnessAt(client *searchidx.Client, cfg searchidx.Config, now func() time.Time) orchestrate.Check {
	return orchestrate.Check{
		Name: "search-freshness",
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			if !cfg.Configured() {
				return nil, orchestrate.Skip("search credentials not configured")
			}

			stats, err := client.Stats(ctx)
			if err != nil {
				return nil, err
			}
			if stats.Entries == 0 {
				return nil, fmt.Errorf("search index is empty")
			}

			age := now().Sub(stats.UpdatedAt)
			if !stats.UpdatedAt.IsZero() && age > StaleIndexThreshold {
				return orchestrate.Warn(stats,
					fmt.Sprintf("stale index: last updated %s ago", age.Round(time.Hour))), nil
			}
			return orchestrate.Ok(stats), nil
		},
	}
}
