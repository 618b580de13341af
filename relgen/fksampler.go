package relgen

// FKSampler draws a referenced row's key value for a foreign-key column,
// from the already-generated parent table data held in a GenContext.
type FKSampler struct{}

func NewFKSampler() *FKSampler { return &FKSampler{} }

// Sample picks one row of ctx's already-generated RefTable data and
// returns the value of its RefColumns[0] (composite FKs sample the same
// row index across all referenced columns — see SampleComposite).
// The draw comes from ctx.RNG.Sub(rowIndex), an RNG seeded with the run
// RNG's current state plus rowIndex, so it consumes no draws from the run
// stream; the sub-stream depends on every draw made earlier in the run, not
// on the seed and rowIndex alone.
func (f *FKSampler) Sample(ctx *GenContext, fk *ForeignKey, rowIndex int, spec *DistributionSpec) (any, error) {
	values, err := f.sampleRow(ctx, fk, rowIndex, spec)
	if err != nil {
		return nil, err
	}
	return values[fk.RefColumns[0]], nil
}

// SampleComposite returns the full referenced row (all RefColumns) for a
// multi-column foreign key, so the caller can assign every FK column from
// the same sampled parent row.
func (f *FKSampler) SampleComposite(ctx *GenContext, fk *ForeignKey, rowIndex int, spec *DistributionSpec) (Record, error) {
	return f.sampleRow(ctx, fk, rowIndex, spec)
}

func (f *FKSampler) sampleRow(ctx *GenContext, fk *ForeignKey, rowIndex int, spec *DistributionSpec) (Record, error) {
	parent, ok := ctx.Output[fk.RefTable]
	if !ok || len(parent.Records) == 0 {
		return nil, errMissingParent(fk.RefTable, "", "referenced table has no generated rows")
	}
	n := len(parent.Records)
	sub := ctx.RNG.Sub(rowIndex)

	idx := 0
	kind := DistUniform
	if spec != nil {
		kind = spec.Kind
	}
	switch kind {
	case DistZipf:
		skew := 1.0
		if spec != nil && spec.Skew > 0 {
			skew = spec.Skew
		}
		idx = NewZipfSampler(n, skew).Sample(sub)
	case DistNormal:
		mean := float64(n) / 2
		stddev := float64(n) / 6
		if spec != nil {
			if spec.Mean != 0 {
				mean = spec.Mean
			}
			if spec.Stddev != 0 {
				stddev = spec.Stddev
			}
		}
		if stddev <= 0 {
			stddev = 1
		}
		draw, err := sub.Normal(mean, stddev)
		if err != nil {
			return nil, err
		}
		idx = clampIndex(int(draw), n)
	case DistSequential:
		idx = rowIndex % n
	case DistWeighted:
		if spec != nil && len(spec.Weights) == n {
			idx = sampleWeighted(sub, spec.Weights)
		} else {
			idx = sub.Intn(n)
		}
	case DistRange:
		lo, hi := 0, n-1
		if spec != nil && len(spec.Values) == 2 {
			if loF, ok := toFloat(spec.Values[0]); ok {
				lo = clampIndex(int(loF), n)
			}
			if hiF, ok := toFloat(spec.Values[1]); ok {
				hi = clampIndex(int(hiF), n)
			}
			if hi < lo {
				lo, hi = hi, lo
			}
		}
		idx = lo + sub.Intn(hi-lo+1)
	case DistHistogram:
		if spec != nil {
			v, err := sampleHistogramBucket(sub, spec.BucketBounds, spec.BucketCounts)
			if err != nil {
				return nil, err
			}
			idx = clampIndex(int(v), n)
		} else {
			idx = sub.Intn(n)
		}
	default:
		idx = sub.Intn(n)
	}

	return parent.Records[idx], nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
