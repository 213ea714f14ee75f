package geoscan_test

import (
	"testing"

	"github.com/fairway-tools/fairway/internal/geoscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Dedupe(t *testing.T) {
	tests := []struct {
		summary  string
		pairs    []geoscan.CoordinatePair
		expected []geoscan.CoordinatePair
	}{
		{
			summary: "Collision at 7 decimal places keeps first occurrence",
			pairs: []geoscan.CoordinatePair{
				{Pos1: 10, Pos2: 20, Lon: -122.05910001, Lat: 37.93610001},
				{Pos1: 90, Pos2: 95, Lon: -122.05910004, Lat: 37.93610004},
			},
			expected: []geoscan.CoordinatePair{
				{Pos1: 10, Pos2: 20, Lon: -122.05910001, Lat: 37.93610001},
			},
		},
		{
			summary: "Distinct coordinates all survive in order",
			pairs: []geoscan.CoordinatePair{
				{Pos1: 0, Pos2: 5, Lon: 1.5, Lat: 2.5},
				{Pos1: 10, Pos2: 15, Lon: 3.5, Lat: 4.5},
				{Pos1: 20, Pos2: 25, Lon: 1.5, Lat: 4.5},
			},
			expected: []geoscan.CoordinatePair{
				{Pos1: 0, Pos2: 5, Lon: 1.5, Lat: 2.5},
				{Pos1: 10, Pos2: 15, Lon: 3.5, Lat: 4.5},
				{Pos1: 20, Pos2: 25, Lon: 1.5, Lat: 4.5},
			},
		},
		{
			summary: "Swapped lon/lat are not duplicates of each other",
			pairs: []geoscan.CoordinatePair{
				{Pos1: 0, Pos2: 5, Lon: 10.5, Lat: 20.5},
				{Pos1: 0, Pos2: 5, Lon: 20.5, Lat: 10.5},
			},
			expected: []geoscan.CoordinatePair{
				{Pos1: 0, Pos2: 5, Lon: 10.5, Lat: 20.5},
				{Pos1: 0, Pos2: 5, Lon: 20.5, Lat: 10.5},
			},
		},
		{
			summary:  "Empty input",
			pairs:    []geoscan.CoordinatePair{},
			expected: []geoscan.CoordinatePair{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			assert.Equal(t, tt.expected, geoscan.Dedupe(tt.pairs))
		})
	}
}

func Test_Dedupe_RetainsFullPrecision(t *testing.T) {
	// The canonical key rounds to 7 decimal places, but the survivor must
	// keep its unrounded values and original offsets.
	pairs := []geoscan.CoordinatePair{
		{Pos1: 42, Pos2: 99, Lon: -122.059100049, Lat: 37.936100049},
		{Pos1: 1, Pos2: 2, Lon: -122.059100041, Lat: 37.936100041},
	}

	unique := geoscan.Dedupe(pairs)
	require.Len(t, unique, 1)
	assert.Equal(t, pairs[0], unique[0])
}
