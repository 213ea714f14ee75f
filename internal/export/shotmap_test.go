package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fairway-tools/fairway/internal/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReadShots(t *testing.T) {
	t.Run("Canonical column order", func(t *testing.T) {
		input := "stroke_number,hole_number,latitude,longitude\n" +
			"1,1,37.972241,-121.810302\n" +
			"2,1,37.971043,-121.810119\n"

		shots, err := export.ReadShots(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, shots, 2)
		assert.Equal(t, export.Shot{StrokeNumber: 1, HoleNumber: 1, Latitude: 37.972241, Longitude: -121.810302}, shots[0])
	})

	t.Run("Shuffled columns", func(t *testing.T) {
		input := "latitude,longitude,stroke_number,hole_number\n" +
			"37.9,-121.8,3,2\n"

		shots, err := export.ReadShots(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, shots, 1)
		assert.Equal(t, export.Shot{StrokeNumber: 3, HoleNumber: 2, Latitude: 37.9, Longitude: -121.8}, shots[0])
	})

	t.Run("Missing column", func(t *testing.T) {
		_, err := export.ReadShots(strings.NewReader("stroke_number,hole_number,latitude\n1,1,37.9\n"))
		assert.Error(t, err)
	})

	t.Run("Malformed row", func(t *testing.T) {
		_, err := export.ReadShots(strings.NewReader("stroke_number,hole_number,latitude,longitude\nx,1,37.9,-121.8\n"))
		assert.Error(t, err)
	})

	t.Run("Header only", func(t *testing.T) {
		_, err := export.ReadShots(strings.NewReader("stroke_number,hole_number,latitude,longitude\n"))
		assert.Error(t, err)
	})
}

func Test_WriteShotMapHTML(t *testing.T) {
	shots := export.SampleShots()

	var out bytes.Buffer
	require.NoError(t, export.WriteShotMapHTML(&out, shots))
	html := out.String()

	// Centred on the first shot, with a marker popup per stroke and a
	// connecting polyline.
	assert.Contains(t, html, "setView([shots[0].lat, shots[0].lon], 18)")
	assert.Contains(t, html, "37.972241")
	assert.Contains(t, html, "L.polyline")
	assert.Contains(t, html, `"stroke":1`)
	assert.Contains(t, html, `"stroke":4`)
	assert.Contains(t, html, "openstreetmap")
}

func Test_WriteShotMapHTML_NoShots(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, export.WriteShotMapHTML(&out, nil))
}

func Test_WriteShotsCSV_RoundTrip(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, export.WriteShotsCSV(&out, export.SampleShots()))

	shots, err := export.ReadShots(bytes.NewReader(out.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, export.SampleShots(), shots)
}
