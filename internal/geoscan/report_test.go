package geoscan_test

import (
	"bytes"
	"testing"

	"github.com/fairway-tools/fairway/internal/geoscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_WriteReport_Found(t *testing.T) {
	var out bytes.Buffer
	chosen := &geoscan.CoordinatePair{Pos1: 10, Pos2: 40, Lon: -122.0591, Lat: 37.9361}

	require.NoError(t, geoscan.WriteReport(&out, chosen, "/tmp/Golf.mov"))
	assert.Equal(t, "longitude,latitude\n-122.0591000,37.9361000\n", out.String())
}

func Test_WriteReport_NotFound(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, geoscan.WriteReport(&out, nil, "/tmp/Golf.mov"))
	assert.Equal(t, "No longitude/latitude found in /tmp/Golf.mov\n", out.String())
}

func Test_ParseReport_RoundTrip(t *testing.T) {
	var out bytes.Buffer
	chosen := &geoscan.CoordinatePair{Lon: -122.0591, Lat: 37.9361}
	require.NoError(t, geoscan.WriteReport(&out, chosen, "in.mov"))

	parsed := geoscan.ParseReport(out.Bytes())
	require.NotNil(t, parsed)
	assert.InDelta(t, -122.0591, parsed.Lon, 1e-7)
	assert.InDelta(t, 37.9361, parsed.Lat, 1e-7)
}

func Test_ParseReport_NotFoundArtifact(t *testing.T) {
	assert.Nil(t, geoscan.ParseReport([]byte("No longitude/latitude found in in.mov\n")))
	assert.Nil(t, geoscan.ParseReport([]byte{}))
}
