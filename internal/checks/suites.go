package checks

import (
	"sort"

	"github.com/lumenfi/chaincheck/internal/orchestrate"
	"github.com/lumenfi/chaincheck/internal/rpc"
	"github.com/lumenfi/chaincheck/internal/searchidx"
)

// Deps carries everything a suite needs. Account and pool maps go from a
// short label to a base58 address.
type Deps struct {
	RPC       rpc.Caller
	Search    *searchidx.Client
	SearchCfg searchidx.Config

	KnownAccounts map[string]string
	Pools         map[string]string

	LatencySamples int
	BurstRequests  int
}

func (d Deps) latencySamples() int {
	if d.LatencySamples > 0 {
		return d.LatencySamples
	}
	return 10
}

func (d Deps) burstRequests() int {
	if d.BurstRequests > 0 {
		return d.BurstRequests
	}
	return 8
}

// DevnetSuite is the devnet validation run: read checks plus the throwaway
// keypair funding scenario.
func DevnetSuite(d Deps) []orchestrate.Check {
	funding := NewFundingScenario()

	suite := []orchestrate.Check{
		Health(d.RPC),
		Version(d.RPC),
		SlotProgression(d.RPC),
		Blockhash(d.RPC),
		funding.GenerateKeypair(),
		funding.RequestAirdrop(d.RPC),
		funding.VerifyFunded(d.RPC),
	}
	suite = append(suite, accountChecks(d)...)
	suite = append(suite, poolChecks(d)...)
	suite = append(suite, LatencySample(d.RPC, d.latencySamples()))
	return suite
}

// MainnetSuite is strictly read-only: no airdrops, ever.
func MainnetSuite(d Deps) []orchestrate.Check {
	suite := []orchestrate.Check{
		Health(d.RPC),
		Version(d.RPC),
		SlotProgression(d.RPC),
	}
	suite = append(suite, accountChecks(d)...)
	suite = append(suite, poolChecks(d)...)
	suite = append(suite,
		LatencySample(d.RPC, d.latencySamples()),
		BurstThroughput(d.RPC, d.burstRequests()),
		PerformanceSamples(d.RPC),
		SearchQuery(d.Search, d.SearchCfg, "swap"),
		SearchFreshness(d.Search, d.SearchCfg),
	)
	return suite
}

// NetworkOptions tailor the per-network core suite.
type NetworkOptions struct {
	ConfigOnly      bool
	SkipPerformance bool
}

// NetworkSuite is the core suite the multi-network runner executes against
// each configured network.
func NetworkSuite(network, endpoint string, d Deps, opts NetworkOptions) []orchestrate.Check {
	suite := []orchestrate.Check{EndpointConfig(network, endpoint)}
	if opts.ConfigOnly {
		return suite
	}

	suite = append(suite,
		Health(d.RPC),
		Version(d.RPC),
		Blockhash(d.RPC),
	)
	suite = append(suite, accountChecks(d)...)
	if !opts.SkipPerformance {
		suite = append(suite,
			LatencySample(d.RPC, d.latencySamples()),
			BurstThroughput(d.RPC, d.burstRequests()),
		)
	}
	return suite
}

func accountChecks(d Deps) []orchestrate.Check {
	out := make([]orchestrate.Check, 0, len(d.KnownAccounts))
	for _, label := range sortedKeys(d.KnownAccounts) {
		out = append(out, AccountExists(d.RPC, label, d.KnownAccounts[label]))
	}
	return out
}

func poolChecks(d Deps) []orchestrate.Check {
	out := make([]orchestrate.Check, 0, len(d.Pools))
	for _, label := range sortedKeys(d.Pools) {
		out = append(out, PoolShape(d.RPC, label, d.Pools[label]))
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
