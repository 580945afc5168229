package rpc

import (
	"context"
	"encoding/json"
)

// Version is the node software version reported by getVersion.
type Version struct {
	Core       string `json:"solana-core"`
	FeatureSet uint32 `json:"feature-set"`
}

// Context carries the slot at which an RPC response was produced.
type Context struct {
	Slot uint64 `json:"slot"`
}

// AccountInfo describes an on-chain account.
type AccountInfo struct {
	Lamports   uint64          `json:"lamports"`
	Owner      string          `json:"owner"`
	Executable bool            `json:"executable"`
	RentEpoch  uint64          `json:"rentEpoch"`
	Data       json.RawMessage `json:"data"`
}

// LatestBlockhash is the result of getLatestBlockhash.
type LatestBlockhash struct {
	Blockhash            string `json:"blockhash"`
	LastValidBlockHeight uint64 `json:"lastValidBlockHeight"`
}

// PerformanceSample is one entry from getRecentPerformanceSamples.
type PerformanceSample struct {
	Slot              uint64 `json:"slot"`
	NumTransactions   uint64 `json:"numTransactions"`
	NumSlots          uint64 `json:"numSlots"`
	SamplePeriodSecs  uint16 `json:"samplePeriodSecs"`
	NumNonVoteTxCount uint64 `json:"numNonVoteTransactions"`
}

type contextValue[T any] struct {
	Context Context `json:"context"`
	Value   T       `json:"value"`
}

// GetHealth returns nil when the node reports healthy ("ok").
func GetHealth(ctx context.Context, c Caller) error {
	var status string
	return c.Call(ctx, "getHealth", nil, &status)
}

// GetVersion returns the node software version.
func GetVersion(ctx context.Context, c Caller) (*Version, error) {
	var v Version
	if err := c.Call(ctx, "getVersion", nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// GetSlot returns the current slot.
func GetSlot(ctx context.Context, c Caller) (uint64, error) {
	var slot uint64
	if err := c.Call(ctx, "getSlot", nil, &slot); err != nil {
		return 0, err
	}
	return slot, nil
}

// GetBalance returns an account's balance in lamports.
func GetBalance(ctx context.Context, c Caller, address string) (uint64, error) {
	var out contextValue[uint64]
	if err := c.Call(ctx, "getBalance", []any{address}, &out); err != nil {
		return 0, err
	}
	return out.Value, nil
}

// GetAccountInfo returns account data for the given address, or nil when the
// account does not exist.
func GetAccountInfo(ctx context.Context, c Caller, address string) (*AccountInfo, error) {
	var out contextValue[*AccountInfo]
	params := []any{address, map[string]string{"encoding": "jsonParsed"}}
	if err := c.Call(ctx, "getAccountInfo", params, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// GetLatestBlockhash returns the most recent blockhash.
func GetLatestBlockhash(ctx context.Context, c Caller) (*LatestBlockhash, error) {
	var out contextValue[LatestBlockhash]
	if err := c.Call(ctx, "getLatestBlockhash", nil, &out); err != nil {
		return nil, err
	}
	return &out.Value, nil
}

// GetRecentPerformanceSamples returns up to limit recent performance samples.
func GetRecentPerformanceSamples(ctx context.Context, c Caller, limit int) ([]PerformanceSample, error) {
	var samples []PerformanceSample
	if err := c.Call(ctx, "getRecentPerformanceSamples", []any{limit}, &samples); err != nil {
		return nil, err
	}
	return samples, nil
}

// RequestAirdrop asks a devnet faucet for lamports and returns the
// transaction signature. Mainnet endpoints reject this method.
func RequestAirdrop(ctx context.Context, c Caller, address string, lamports uint64) (string, error) {
	var signature string
	if err := c.Call(ctx, "requestAirdrop", []any{address, lamports}, &signature); err != nil {
		return "", err
	}
	return signature, nil
}
