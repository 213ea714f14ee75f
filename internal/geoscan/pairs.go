package geoscan

// DefaultWindowBytes is the maximum byte distance between the two floats
// of a candidate pair used by the end-to-end extraction flow.
const DefaultWindowBytes = 300

// CoordinatePair is a candidate (longitude, latitude) reading derived from
// two nearby float matches. Pos1 and Pos2 are the byte offsets of the two
// source tokens; Lon and Lat are always within their legal ranges by
// construction.
type CoordinatePair struct {
	Pos1 int
	Pos2 int
	Lon  float64
	Lat  float64
}

// EarliestOffset returns the smaller of the pair's two source offsets,
// i.e. where in the file the candidate first appears.
func (pair CoordinatePair) EarliestOffset() int {
	if pair.Pos1 < pair.Pos2 {
		return pair.Pos1
	}

	return pair.Pos2
}

func validLongitude(v float64) bool { return v >= -180 && v <= 180 }
func validLatitude(v float64) bool  { return v >= -90 && v <= 90 }

// FindPairs tests every pair of matches within 'window' bytes of each
// other against the valid longitude/latitude ranges, in both orderings,
// and returns the candidates in discovery order (ascending i, then
// ascending j, with the swapped-order emission second). Both orderings of
// the same underlying pair may validate independently.
//
// Offsets are sorted ascending so the inner loop exits the moment the
// window is exceeded; the cost is proportional to the number of in-window
// pairs rather than n². That is still worst-case quadratic when
// numeric-looking bytes cluster inside the window, which is common in
// compressed media - a known performance cliff, not mitigated here.
func FindPairs(matches []FloatMatch, window int) []CoordinatePair {
	pairs := make([]CoordinatePair, 0)
	for i := 0; i < len(matches); i++ {
		for j := i + 1; j < len(matches); j++ {
			if matches[j].Offset-matches[i].Offset > window {
				break
			}

			v1, v2 := matches[i].Value, matches[j].Value
			if validLongitude(v1) && validLatitude(v2) {
				pairs = append(pairs, CoordinatePair{Pos1: matches[i].Offset, Pos2: matches[j].Offset, Lon: v1, Lat: v2})
			}
			if validLongitude(v2) && validLatitude(v1) {
				pairs = append(pairs, CoordinatePair{Pos1: matches[i].Offset, Pos2: matches[j].Offset, Lon: v2, Lat: v1})
			}
		}
	}

	return pairs
}
