package geoscan_test

import (
	"testing"

	"github.com/fairway-tools/fairway/internal/geoscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Scan_FindsDecimalTokens(t *testing.T) {
	tests := []struct {
		summary  string
		input    []byte
		expected []geoscan.FloatMatch
	}{
		{
			summary:  "Single signed float",
			input:    []byte("xx-122.0591000xx"),
			expected: []geoscan.FloatMatch{{Offset: 2, Value: -122.0591}},
		},
		{
			summary: "Two floats with offsets",
			input:   []byte("..-122.0591000xx37.9361000xx"),
			expected: []geoscan.FloatMatch{
				{Offset: 2, Value: -122.0591},
				{Offset: 16, Value: 37.9361},
			},
		},
		{
			summary:  "Exponent suffix",
			input:    []byte("val=12.5e3;"),
			expected: []geoscan.FloatMatch{{Offset: 4, Value: 12500}},
		},
		{
			summary:  "Negative exponent",
			input:    []byte("1.5E-2"),
			expected: []geoscan.FloatMatch{{Offset: 0, Value: 0.015}},
		},
		{
			summary:  "Long integer part matches in full",
			input:    []byte("1234.5"),
			expected: []geoscan.FloatMatch{{Offset: 0, Value: 1234.5}},
		},
		{
			summary:  "Integer without fraction is not a token",
			input:    []byte("no 1234 here"),
			expected: []geoscan.FloatMatch{},
		},
		{
			summary:  "Empty buffer",
			input:    []byte{},
			expected: []geoscan.FloatMatch{},
		},
		{
			summary:  "Binary noise around a token",
			input:    append(append([]byte{0x00, 0xFF, 0x89}, []byte("37.93")...), 0x00, 0xFE),
			expected: []geoscan.FloatMatch{{Offset: 3, Value: 37.93}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.summary, func(t *testing.T) {
			matches := geoscan.Matches(geoscan.Scan(tt.input))
			assert.Equal(t, tt.expected, matches)
		})
	}
}

func Test_Scan_OffsetsStrictlyIncreasing(t *testing.T) {
	input := []byte("1.2 3.4 5.6 7.8 9.0 -1.1 2.2e1")
	results := geoscan.Scan(input)
	require.NotEmpty(t, results)

	previous := -1
	for _, result := range results {
		assert.Greater(t, result.Offset, previous, "offsets must strictly increase")
		previous = result.Offset
	}
}

func Test_Scan_NonOverlapping(t *testing.T) {
	// A run of digits and dots only yields the leftmost legal token; the
	// scanner resumes after its end rather than re-entering it.
	matches := geoscan.Matches(geoscan.Scan([]byte("1.23.4")))
	require.Len(t, matches, 1)
	assert.Equal(t, geoscan.FloatMatch{Offset: 0, Value: 1.23}, matches[0])
}

func Test_Scan_UnparseableTokenIsDroppedNotFatal(t *testing.T) {
	// The exponent overflows float64, so the token matches the grammar but
	// fails to parse. It must surface as an errored TokenResult and the
	// scan must carry on to the next token.
	input := []byte("xx1.0e999xx37.5xx2.5xx")
	results := geoscan.Scan(input)
	require.Len(t, results, 3)

	assert.Nil(t, results[0].Match)
	assert.Error(t, results[0].Err)
	assert.Equal(t, []byte("1.0e999"), results[0].Token)

	matches := geoscan.Matches(results)
	assert.Equal(t, []geoscan.FloatMatch{
		{Offset: 11, Value: 37.5},
		{Offset: 17, Value: 2.5},
	}, matches)
}
