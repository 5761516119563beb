package similarity

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/xrash/smetrics"
)

// JaroWinkler wraps smetrics.JaroWinkler on lower-cased input
type JaroWinkler struct {
	BoostThreshold float64
	PrefixSize     int
}

// NewJaroWinkler returns Jaro-Winkler with the usual 0.7 boost and 4-rune prefix
func NewJaroWinkler() JaroWinkler {
	return JaroWinkler{BoostThreshold: 0.7, PrefixSize: 4}
}

// Similarity implements Similarity
func (jw JaroWinkler) Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}
	return clamp(smetrics.JaroWinkler(a, b, jw.BoostThreshold, jw.PrefixSize))
}

// Levenshtein is 1 - editDistance/maxLen on lower-cased input
type Levenshtein struct{}

// Similarity implements Similarity
func (Levenshtein) Similarity(a, b string) float64 {
	a, b = strings.ToLower(a), strings.ToLower(b)
	maxLen := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if maxLen == 0 {
		return 1
	}
	return clamp(1 - float64(levenshtein.ComputeDistance(a, b))/float64(maxLen))
}
