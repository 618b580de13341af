package relgen

import (
	"math"
	"sort"
)

// DistributionKind names a sampling shape selectable for a column or a
// foreign-key reference via a DistributionSpec.
type DistributionKind string

const (
	DistUniform   DistributionKind = "uniform"
	DistZipf      DistributionKind = "zipf"
	DistNormal    DistributionKind = "normal"
	DistWeighted  DistributionKind = "weighted"
	DistRange     DistributionKind = "range"
	DistHistogram DistributionKind = "histogram"
	DistSequential DistributionKind = "sequential"
)

// DistributionSpec configures one column's or one foreign key's sampling
// shape. Only the fields relevant to Kind are read.
type DistributionSpec struct {
	Table  string
	Column string
	Kind   DistributionKind

	// Zipf / Normal
	Skew   float64 // Zipf exponent, default 1.0
	Mean   float64
	Stddev float64

	// Weighted / Range
	Values  []any
	Weights []float64

	// Histogram
	BucketBounds []float64
	BucketCounts []float64
}

// ZipfSampler draws indices in [0, n) from a truncated Zipf distribution
// with exponent s, via a precomputed cumulative table and binary search —
// the table is built once per sampler rather than per draw.
type ZipfSampler struct {
	cumulative []float64
	n          int
}

// NewZipfSampler builds a sampler over n ranked items with skew exponent s.
// s <= 0 is remapped to 1.0 (the classic Zipf exponent).
func NewZipfSampler(n int, s float64) *ZipfSampler {
	if n <= 0 {
		n = 1
	}
	if s <= 0 {
		s = 1.0
	}
	weights := make([]float64, n)
	var total float64
	for i := 0; i < n; i++ {
		w := 1.0 / math.Pow(float64(i+1), s)
		weights[i] = w
		total += w
	}
	cumulative := make([]float64, n)
	var running float64
	for i, w := range weights {
		running += w / total
		cumulative[i] = running
	}
	return &ZipfSampler{cumulative: cumulative, n: n}
}

// Sample draws a rank index in [0, n) — 0 is the most probable.
func (z *ZipfSampler) Sample(rng *RNG) int {
	draw := rng.Float64()
	idx := sort.SearchFloat64s(z.cumulative, draw)
	if idx >= z.n {
		idx = z.n - 1
	}
	return idx
}

// sampleWeighted returns an index into values proportional to weights.
// weights must be the same length as values and sum to > 0.
func sampleWeighted(rng *RNG, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	draw := rng.Float64() * total
	var running float64
	for i, w := range weights {
		running += w
		if draw < running {
			return i
		}
	}
	return len(weights) - 1
}

// sampleHistogramBucket picks a bucket index by count weight, then returns
// a uniform draw within [bounds[i], bounds[i+1]).
func sampleHistogramBucket(rng *RNG, bounds, counts []float64) (float64, error) {
	if len(bounds) < 2 || len(counts) != len(bounds)-1 {
		return 0, errConfigInvalid("histogram needs len(bounds) == len(counts)+1", nil)
	}
	idx := sampleWeighted(rng, counts)
	lo, hi := bounds[idx], bounds[idx+1]
	if hi <= lo {
		return lo, nil
	}
	return lo + rng.Float64()*(hi-lo), nil
}
