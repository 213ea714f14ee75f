package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// SampleShots is the four-stroke example round used to seed a shot CSV
// for trying out the shot map without real tracking data.
func SampleShots() []Shot {
	return []Shot{
		{StrokeNumber: 1, HoleNumber: 1, Latitude: 37.972241, Longitude: -121.810302},
		{StrokeNumber: 2, HoleNumber: 1, Latitude: 37.971043, Longitude: -121.810119},
		{StrokeNumber: 3, HoleNumber: 1, Latitude: 37.970157, Longitude: -121.810390},
		{StrokeNumber: 4, HoleNumber: 1, Latitude: 37.970077, Longitude: -121.810187},
	}
}

// WriteShotsCSV writes shots in the canonical column order, with header.
func WriteShotsCSV(w io.Writer, shots []Shot) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"stroke_number", "hole_number", "latitude", "longitude"}); err != nil {
		return err
	}

	for _, shot := range shots {
		record := []string{
			strconv.Itoa(shot.StrokeNumber),
			strconv.Itoa(shot.HoleNumber),
			strconv.FormatFloat(shot.Latitude, 'f', 6, 64),
			strconv.FormatFloat(shot.Longitude, 'f', 6, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
