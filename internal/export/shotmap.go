package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strconv"
)

// Shot is one row of a shot-tracking CSV: where a stroke was taken.
type Shot struct {
	StrokeNumber int     `json:"stroke"`
	HoleNumber   int     `json:"hole"`
	Latitude     float64 `json:"lat"`
	Longitude    float64 `json:"lon"`
}

// ReadShots parses a shot CSV with a 'stroke_number,hole_number,latitude,
// longitude' header row. Column order is not significant; unknown columns
// are ignored.
func ReadShots(r io.Reader) ([]Shot, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse shot CSV: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("shot CSV contains no data rows")
	}

	columns := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		columns[name] = i
	}
	for _, required := range []string{"stroke_number", "hole_number", "latitude", "longitude"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("shot CSV is missing required column '%s'", required)
		}
	}

	shots := make([]Shot, 0, len(records)-1)
	for i, record := range records[1:] {
		shot := Shot{}
		var parseErr error
		shot.StrokeNumber, parseErr = strconv.Atoi(record[columns["stroke_number"]])
		if parseErr == nil {
			shot.HoleNumber, parseErr = strconv.Atoi(record[columns["hole_number"]])
		}
		if parseErr == nil {
			shot.Latitude, parseErr = strconv.ParseFloat(record[columns["latitude"]], 64)
		}
		if parseErr == nil {
			shot.Longitude, parseErr = strconv.ParseFloat(record[columns["longitude"]], 64)
		}
		if parseErr != nil {
			return nil, fmt.Errorf("shot CSV row %d is malformed: %w", i+2, parseErr)
		}

		shots = append(shots, shot)
	}

	return shots, nil
}

// shotMapTemplate renders a self-contained Leaflet page: one marker per
// shot with a stroke/hole popup, and a polyline connecting the shots in
// order, centred on the first shot.
var shotMapTemplate = template.Must(template.New("shotmap").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8"/>
<title>Shot Map</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css"/>
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>html, body, #map { height: 100%; margin: 0; }</style>
</head>
<body>
<div id="map"></div>
<script>
var shots = {{.Shots}};
var map = L.map('map').setView([shots[0].lat, shots[0].lon], 18);
L.tileLayer('https://tile.openstreetmap.org/{z}/{x}/{y}.png', {
	attribution: '&copy; OpenStreetMap contributors'
}).addTo(map);
var path = [];
shots.forEach(function (shot) {
	path.push([shot.lat, shot.lon]);
	L.marker([shot.lat, shot.lon])
		.bindPopup('Stroke ' + shot.stroke + ' - Hole ' + shot.hole)
		.addTo(map);
});
L.polyline(path, { color: 'blue', weight: 4, opacity: 0.8 }).addTo(map);
</script>
</body>
</html>
`))

// WriteShotMapHTML renders the shots as an HTML map artifact.
func WriteShotMapHTML(w io.Writer, shots []Shot) error {
	if len(shots) == 0 {
		return fmt.Errorf("cannot render a shot map with no shots")
	}

	encoded, err := json.Marshal(shots)
	if err != nil {
		return fmt.Errorf("failed to encode shots: %w", err)
	}

	return shotMapTemplate.Execute(w, struct {
		Shots template.JS
	}{
		Shots: template.JS(encoded),
	})
}
