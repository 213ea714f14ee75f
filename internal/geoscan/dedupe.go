package geoscan

import "math"

// canonicalKey identifies a coordinate pair rounded to 7 decimal places
// (~1.1cm). Candidates colliding on this key are duplicates for our
// purposes and only the first-discovered one is kept.
type canonicalKey struct {
	lat float64
	lon float64
}

func round7(v float64) float64 {
	return math.Round(v*1e7) / 1e7
}

func canonical(pair CoordinatePair) canonicalKey {
	return canonicalKey{lat: round7(pair.Lat), lon: round7(pair.Lon)}
}

// Dedupe is a streaming, single-pass, order-preserving filter over the
// candidate sequence: the first pair seen for each canonical key is
// retained with its full-precision values and original offsets, later
// collisions are discarded. It never reorders.
func Dedupe(pairs []CoordinatePair) []CoordinatePair {
	seen := make(map[canonicalKey]struct{}, len(pairs))
	unique := make([]CoordinatePair, 0, len(pairs))
	for _, pair := range pairs {
		key := canonical(pair)
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		unique = append(unique, pair)
	}

	return unique
}
