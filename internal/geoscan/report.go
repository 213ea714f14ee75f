package geoscan

import (
	"fmt"
	"io"
)

// WriteReport renders the selection outcome as the small text artifact the
// sibling tools consume. A found coordinate produces a two-line CSV with a
// literal 'longitude,latitude' header and both values at exactly 7 decimal
// places; no coordinate produces a single diagnostic line naming the input
// path, with no header. These are the only two shapes.
func WriteReport(w io.Writer, chosen *CoordinatePair, inputPath string) error {
	if chosen == nil {
		_, err := fmt.Fprintf(w, "No longitude/latitude found in %s\n", inputPath)
		return err
	}

	if _, err := fmt.Fprint(w, "longitude,latitude\n"); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%.7f,%.7f\n", chosen.Lon, chosen.Lat)
	return err
}

// ParseReport reads a previously written artifact back into a coordinate,
// returning nil when the artifact records the not-found outcome. Used by
// the overlay tool to reuse an earlier extraction.
func ParseReport(data []byte) *CoordinatePair {
	var lon, lat float64
	if n, err := fmt.Sscanf(string(data), "longitude,latitude\n%f,%f", &lon, &lat); err != nil || n != 2 {
		return nil
	}

	return &CoordinatePair{Lon: lon, Lat: lat}
}
