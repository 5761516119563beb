package similarity

import (
	"hash/fnv"
	"math"
	"strings"
)

// Embedder turns text into a dense vector
type Embedder interface {
	Embed(text string) ([]float32, error)
}

// HashEmbedder projects character trigrams and whole words into a fixed
// number of hashed dimensions. It is a lightweight local substitute for a
// pre-trained sentence model and produces unit-length vectors.
type HashEmbedder struct {
	dimensions int
}

// NewHashEmbedder creates a hashed embedder
func NewHashEmbedder(dimensions int) *HashEmbedder {
	if dimensions <= 0 {
		dimensions = 256
	}
	return &HashEmbedder{dimensions: dimensions}
}

// Dimensions returns the vector size
func (he *HashEmbedder) Dimensions() int {
	return he.dimensions
}

// Embed creates the vector representation of text
func (he *HashEmbedder) Embed(text string) ([]float32, error) {
	vector := make([]float32, he.dimensions)

	text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
	if text == "" {
		return vector, nil
	}

	padded := []rune(" " + text + " ")
	for i := 0; i+3 <= len(padded); i++ {
		vector[he.bucket(string(padded[i:i+3]))]++
	}

	// Whole words carry extra weight so token swaps stay close
	for _, word := range strings.Fields(text) {
		vector[he.bucket("w:"+word)] += 2
	}

	var norm float64
	for _, val := range vector {
		norm += float64(val) * float64(val)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vector {
			vector[i] = float32(float64(vector[i]) / norm)
		}
	}
	return vector, nil
}

func (he *HashEmbedder) bucket(feature string) int {
	h := fnv.New32a()
	h.Write([]byte(feature))
	return int(h.Sum32() % uint32(he.dimensions))
}

// Embedding scores two strings by the cosine similarity of their embeddings
type Embedding struct {
	embedder Embedder
}

// NewEmbedding creates an embedding-backed similarity
func NewEmbedding(embedder Embedder) *Embedding {
	return &Embedding{embedder: embedder}
}

// Similarity implements Similarity. Embedding failures score 0.
func (e *Embedding) Similarity(a, b string) float64 {
	va, err := e.embedder.Embed(a)
	if err != nil {
		return 0
	}
	vb, err := e.embedder.Embed(b)
	if err != nil {
		return 0
	}
	return cosine(va, vb)
}
