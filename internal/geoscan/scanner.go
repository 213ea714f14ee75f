package geoscan

import (
	"regexp"
	"strconv"
)

// floatPattern matches ASCII decimal literals embedded in arbitrary binary
// data: an optional sign, an integer part, a mandatory decimal point, a
// fractional part, and an optional exponent. The two integer-part
// alternatives overlap (the first caps the integer digits at three, the
// second does not); the alternation order is load-bearing and must not be
// "tidied up" - changing it changes which candidates downstream stages see
// for tokens with long integer parts.
var floatPattern = regexp.MustCompile(`[-+]?(?:[0-9]{1,3}\.[0-9]+|[0-9]+\.[0-9]+)(?:[eE][-+]?[0-9]+)?`)

// FloatMatch is a decoded decimal number together with the byte offset at
// which its token begins in the scanned buffer.
type FloatMatch struct {
	Offset int
	Value  float64
}

// TokenResult is the per-token outcome of a scan. Exactly one of Match and
// Err is set: a token which matched the grammar but failed to parse as a
// float carries the parse error instead of a match, and never aborts the
// scan.
type TokenResult struct {
	Offset int
	Token  []byte
	Match  *FloatMatch
	Err    error
}

// Scan finds every non-overlapping token in data matching the decimal
// grammar, left to right, and attempts to parse each one. The returned
// results are ordered by strictly increasing offset and cover the whole
// buffer. Scan is a pure function of its input.
func Scan(data []byte) []TokenResult {
	locations := floatPattern.FindAllIndex(data, -1)
	results := make([]TokenResult, 0, len(locations))
	for _, loc := range locations {
		token := data[loc[0]:loc[1]]
		result := TokenResult{Offset: loc[0], Token: token}

		if value, err := strconv.ParseFloat(string(token), 64); err == nil {
			result.Match = &FloatMatch{Offset: loc[0], Value: value}
		} else {
			result.Err = err
		}

		results = append(results, result)
	}

	return results
}

// Matches applies the drop-and-continue policy to a scan: tokens which
// failed to parse are discarded and every successful match is returned in
// its original order.
func Matches(results []TokenResult) []FloatMatch {
	matches := make([]FloatMatch, 0, len(results))
	for _, result := range results {
		if result.Match != nil {
			matches = append(matches, *result.Match)
		}
	}

	return matches
}
