// Package similarity provides the string similarity primitives used for
// address field comparison and state-name resolution. Every primitive
// returns a score in [0,1] and is safe for concurrent use once constructed.
package similarity

import (
	"fmt"
	"math"
)

// Similarity scores how alike two strings are, 1.0 meaning identical.
type Similarity interface {
	Similarity(a, b string) float64
}

// Func adapts a plain function to the Similarity interface
type Func func(a, b string) float64

// Similarity implements Similarity
func (f Func) Similarity(a, b string) float64 {
	return f(a, b)
}

// Method names accepted by New
const (
	MethodEmbedding   = "embedding"
	MethodJaroWinkler = "jaro_winkler"
	MethodLevenshtein = "levenshtein"
	MethodNGram       = "ngram"
)

// New builds the primitive selected by method. dimensions is only used by the
// embedding method. The result is wrapped in a memoizing cache.
func New(method string, dimensions int) (Similarity, error) {
	var inner Similarity
	switch method {
	case MethodEmbedding, "":
		inner = NewEmbedding(NewHashEmbedder(dimensions))
	case MethodJaroWinkler:
		inner = NewJaroWinkler()
	case MethodLevenshtein:
		inner = Levenshtein{}
	case MethodNGram:
		inner = NewCharNGram(1, 2)
	default:
		return nil, fmt.Errorf("unknown similarity method %q", method)
	}
	return NewCached(inner), nil
}

// cosine returns the cosine of the angle between two dense vectors
func cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return clamp(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}

// clamp keeps floating point noise inside [0,1]
func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
