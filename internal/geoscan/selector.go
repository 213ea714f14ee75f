package geoscan

import (
	"math"
	"sort"
)

// DefaultTolerance is the per-axis tolerance, in degrees, used when
// matching candidates against the target coordinate (~11m).
const DefaultTolerance = 1e-4

// Target is the coordinate the selector prefers when a candidate lies
// within tolerance of it on both axes.
type Target struct {
	Lat float64
	Lon float64
}

// Select applies the two-phase selection policy to the deduplicated
// candidate list:
//
//  1. The first candidate (in discovery order) whose latitude AND
//     longitude are each within 'tolerance' degrees of the target is
//     selected immediately - even if a closer candidate exists later.
//  2. Otherwise the candidate appearing earliest in the file wins, i.e.
//     smallest EarliestOffset; ties keep their discovery order.
//
// Returns nil when the candidate list is empty. Select is a pure function
// of its arguments.
func Select(unique []CoordinatePair, target Target, tolerance float64) *CoordinatePair {
	for _, candidate := range unique {
		if math.Abs(candidate.Lat-target.Lat) <= tolerance && math.Abs(candidate.Lon-target.Lon) <= tolerance {
			chosen := candidate
			return &chosen
		}
	}

	if len(unique) == 0 {
		return nil
	}

	sorted := make([]CoordinatePair, len(unique))
	copy(sorted, unique)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EarliestOffset() < sorted[j].EarliestOffset()
	})

	chosen := sorted[0]
	return &chosen
}
