// Package checks defines the named validation checks the suites run against
// RPC endpoints and the docs search service.
package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/lumenfi/chaincheck/internal/keys"
	"github.com/lumenfi/chaincheck/internal/orchestrate"
	"github.com/lumenfi/chaincheck/internal/rpc"
)

// slotProbeDelay is the pause between the two slot samples used to confirm
// the chain is advancing.
const slotProbeDelay = 2 * time.Second

// Health verifies the node reports healthy.
func Health(c rpc.Caller) orchestrate.Check {
	return orchestrate.Check{
		Name:     "network-health",
		Required: true,
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			if err := rpc.GetHealth(ctx, c); err != nil {
				return nil, fmt.Errorf("health check failed: %w", err)
			}
			return orchestrate.Ok(map[string]string{"status": "ok"}), nil
		},
	}
}

// Version records the node software version.
func Version(c rpc.Caller) orchestrate.Check {
	return orchestrate.Check{
		Name: "node-version",
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			v, err := rpc.GetVersion(ctx, c)
			if err != nil {
				return nil, err
			}
			return orchestrate.Ok(v), nil
		},
	}
}

// SlotProgression samples the slot twice and requires it to advance.
func SlotProgression(c rpc.Caller) orchestrate.Check {
	return SlotProgressionWithDelay(c, slotProbeDelay)
}

// SlotProgressionWithDelay is SlotProgression with a configurable probe
// delay, for tests.
func SlotProgressionWithDelay(c rpc.Caller, delay time.Duration) orchestrate.Check {
	return orchestrate.Check{
		Name:     "slot-progression",
		Required: true,
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			first, err := rpc.GetSlot(ctx, c)
			if err != nil {
				return nil, err
			}

			t := time.NewTimer(delay)
			defer t.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-t.C:
			}

			second, err := rpc.GetSlot(ctx, c)
			if err != nil {
				return nil, err
			}

			payload := map[string]uint64{"first_slot": first, "second_slot": second}
			if second <= first {
				return &orchestrate.Outcome{Payload: payload},
					fmt.Errorf("slot did not advance: %d -> %d", first, second)
			}
			return orchestrate.Ok(payload), nil
		},
	}
}

// Blockhash verifies the endpoint serves a recent blockhash.
func Blockhash(c rpc.Caller) orchestrate.Check {
	return orchestrate.Check{
		Name: "latest-blockhash",
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			bh, err := rpc.GetLatestBlockhash(ctx, c)
			if err != nil {
				return nil, err
			}
			if bh.Blockhash == "" {
				return nil, fmt.Errorf("endpoint returned an empty blockhash")
			}
			return orchestrate.Ok(bh), nil
		},
	}
}

// AccountExists verifies a known account is present on chain. A
// malformed configured address fails before any RPC call is issued.
func AccountExists(c rpc.Caller, label, address string) orchestrate.Check {
	return orchestrate.Check{
		Name:     "account-" + label,
		Required: true,
		Run: func(ctx context.Context) (*orchestrate.Outcome, error) {
			if _, err := keys.ParseAddress(address); err != nil {
				return nil, fmt.Errorf("invalid address for account %s: %w", label, err)
			}

			info, err := rpc.GetAccountInfo(ctx, c, address)
			if err != nil {
				return nil, err
			}
			if info == nil {
				return nil, fmt.Errorf("account %s (%s) does not exist", label, address)
			}
			return orchestrate.Ok(map[string]any{
				"address":  address,
				"lamports": info.Lamports,
				"owner":    info.Owner,
			}), nil
		},
	}
}
