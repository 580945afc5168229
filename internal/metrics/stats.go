// Package metrics computes summary statistics over latency samples.
package metrics

import (
	"math"
	"sort"
	"time"
)

// Mean computes the arithmetic mean of a float64 slice.
// Returns 0 for empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev computes the population standard deviation.
func StdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := Mean(values)
	sumSq := 0.0
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}

// Percentile returns the p-th percentile (0-100) using nearest-rank.
// Returns 0 for empty input.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	return sorted[rank-1]
}

// LatencySummary is the roll-up of a latency sampling pass.
type LatencySummary struct {
	Samples int     `json:"samples"`
	MeanMs  float64 `json:"mean_ms"`
	MinMs   float64 `json:"min_ms"`
	MaxMs   float64 `json:"max_ms"`
	P50Ms   float64 `json:"p50_ms"`
	P95Ms   float64 `json:"p95_ms"`
	StdDev  float64 `json:"std_dev_ms"`
}

// Summarize converts raw durations into a LatencySummary.
func Summarize(samples []time.Duration) LatencySummary {
	if len(samples) == 0 {
		return LatencySummary{}
	}
	ms := make([]float64, 0, len(samples))
	minMs := math.Inf(1)
	maxMs := math.Inf(-1)
	for _, s := range samples {
		v := float64(s.Microseconds()) / 1000.0
		ms = append(ms, v)
		minMs = math.Min(minMs, v)
		maxMs = math.Max(maxMs, v)
	}
	return LatencySummary{
		Samples: len(ms),
		MeanMs:  Mean(ms),
		MinMs:   minMs,
		MaxMs:   maxMs,
		P50Ms:   Percentile(ms, 50),
		P95Ms:   Percentile(ms, 95),
		StdDev:  StdDev(ms),
	}
}
