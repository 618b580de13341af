package relgen

import "testing"

func TestZipfSamplerFavorsLowIndices(t *testing.T) {
	z := NewZipfSampler(100, 1.5)
	rng := NewRNG(1)
	counts := make([]int, 100)
	for i := 0; i < 5000; i++ {
		counts[z.Sample(rng)]++
	}
	if counts[0] < counts[99] {
		t.Fatalf("expected rank 0 to be drawn more often than rank 99: %d vs %d", counts[0], counts[99])
	}
}

func TestZipfSamplerInRange(t *testing.T) {
	z := NewZipfSampler(10, 1.0)
	rng := NewRNG(2)
	for i := 0; i < 500; i++ {
		idx := z.Sample(rng)
		if idx < 0 || idx >= 10 {
			t.Fatalf("sample out of range: %d", idx)
		}
	}
}

func TestSampleWeightedRespectsZeroWeights(t *testing.T) {
	rng := NewRNG(3)
	weights := []float64{0, 0, 1}
	for i := 0; i < 100; i++ {
		if idx := sampleWeighted(rng, weights); idx != 2 {
			t.Fatalf("expected index 2 (only nonzero weight), got %d", idx)
		}
	}
}

func TestSampleHistogramBucketValidatesShape(t *testing.T) {
	rng := NewRNG(1)
	if _, err := sampleHistogramBucket(rng, []float64{0, 10}, []float64{1, 2}); err == nil {
		t.Fatal("expected a ConfigInvalid error for mismatched bounds/counts length")
	}
}
