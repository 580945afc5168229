package checks

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumenfi/chaincheck/internal/keys"
	"github.com/lumenfi/chaincheck/internal/orchestrate"
	"github.com/lumenfi/chaincheck/internal/pool"
	"github.com/lumenfi/chaincheck/internal/rpc"
)

// PoolShape fetches a pool account and validates its data against the
// documented layout. A paused pool is a soft problem.
func PoolShape(c rpc.Caller, label, address string) orchestrate.Check {
	return orchestrate.Check{
		Name:     "pool-" + label,
		Required: true,
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			if _, err := keys.ParseAddress(address); err != nil {
				return nil, fmt.Errorf("invalid address for pool %s: %w", label, err)
			}

			info, err := rpc.GetAccountInfo(ctx, c, address)
			if err != nil {
				return nil, err
			}
			if info == nil {
				return nil, fmt.Errorf("pool account %s (%s) does not exist", label, address)
			}
			if len(info.Data) == 0 {
				return nil, fmt.Errorf("pool account %s has no data", label)
			}

			problems, err := pool.ValidateShape(info.Data)
			if err != nil {
				return nil, fmt.Errorf("pool %s: %w", label, err)
			}
			if len(problems) > 0 {
				return nil, fmt.Errorf("pool %s shape invalid: %s", label, strings.Join(problems, "; "))
			}

			acct, err := pool.Decode(info.Data)
			if err != nil {
				return nil, fmt.Errorf("pool %s: %w", label, err)
			}

			payload := map[string]any{"address": address, "pool": acct}
			if acct.Paused {
				return orchestrate.Warn(payload, "pool is paused"), nil
			}
			if acct.TokenA.Reserve == 0 || acct.TokenB.Reserve == 0 {
				return orchestrate.Warn(payload, "pool has an empty reserve"), nil
			}
			return orchestrate.Ok(payload), nil
		},
	}
}
