package similarity

import (
	"math"
	"strings"
)

// CharNGram compares strings by the cosine of their character n-gram count
// vectors. Inputs are lower-cased; n ranges over [Min, Max].
type CharNGram struct {
	Min int
	Max int
}

// NewCharNGram creates a character n-gram similarity
func NewCharNGram(min, max int) CharNGram {
	if min < 1 {
		min = 1
	}
	if max < min {
		max = min
	}
	return CharNGram{Min: min, Max: max}
}

// Counts returns the n-gram count vector of text
func (c CharNGram) Counts(text string) map[string]int {
	runes := []rune(strings.ToLower(text))
	counts := make(map[string]int)
	for n := c.Min; n <= c.Max; n++ {
		for i := 0; i+n <= len(runes); i++ {
			counts[string(runes[i:i+n])]++
		}
	}
	return counts
}

// Similarity implements Similarity
func (c CharNGram) Similarity(a, b string) float64 {
	return countCosine(c.Counts(a), c.Counts(b))
}

func countCosine(a, b map[string]int) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for gram, countA := range a {
		normA += float64(countA * countA)
		if countB, ok := b[gram]; ok {
			dot += float64(countA * countB)
		}
	}
	for _, countB := range b {
		normB += float64(countB * countB)
	}
	return clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
