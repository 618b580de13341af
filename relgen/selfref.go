package relgen

// tierAssigner buckets rows of a self-referencing table into tiers, so
// parent references always point to an earlier, already-materialized tier
// rather than creating a forward reference within the same generation
// pass. The split is a geometric-ish falloff: roughly half the rows land
// in tier 0 (roots, nullable self-FK set to nil), a quarter in tier 1,
// an eighth in tier 2, and so on, which keeps the hierarchy shallow and
// broad rather than one long chain.
type tierAssigner struct {
	tierBoundaries []int // cumulative row counts: tierBoundaries[i] rows fall in tiers [0,i]
}

func newTierAssigner(totalRows int) *tierAssigner {
	if totalRows <= 0 {
		return &tierAssigner{}
	}
	var boundaries []int
	remaining := totalRows
	cumulative := 0
	for remaining > 0 {
		take := (remaining + 1) / 2
		if take < 1 {
			take = 1
		}
		cumulative += take
		boundaries = append(boundaries, cumulative)
		remaining -= take
	}
	return &tierAssigner{tierBoundaries: boundaries}
}

// TierOf returns the tier index for the row at rowIndex (0-based).
func (a *tierAssigner) TierOf(rowIndex int) int {
	for tier, boundary := range a.tierBoundaries {
		if rowIndex < boundary {
			return tier
		}
	}
	if len(a.tierBoundaries) == 0 {
		return 0
	}
	return len(a.tierBoundaries) - 1
}

// PickParentRow returns a row index strictly in an earlier tier than
// rowIndex's own tier, or -1 if rowIndex is in tier 0 (a root with no
// parent). The candidate pool is every row with a smaller tier number.
func (a *tierAssigner) PickParentRow(rowIndex int, rng *RNG) int {
	tier := a.TierOf(rowIndex)
	if tier == 0 {
		return -1
	}
	upperBound := a.tierBoundaries[tier-1]
	return rng.Intn(upperBound)
}
