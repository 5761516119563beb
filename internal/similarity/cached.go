package similarity

import "sync"

// Cached memoizes another Similarity. It is safe for concurrent use; the
// wrapped primitive is never mutated.
type Cached struct {
	inner Similarity

	mu   sync.RWMutex
	memo map[[2]string]float64
}

// NewCached wraps inner with a memo table
func NewCached(inner Similarity) *Cached {
	return &Cached{inner: inner, memo: make(map[[2]string]float64)}
}

// Similarity implements Similarity
func (c *Cached) Similarity(a, b string) float64 {
	key := [2]string{a, b}

	c.mu.RLock()
	score, ok := c.memo[key]
	c.mu.RUnlock()
	if ok {
		return score
	}

	score = c.inner.Similarity(a, b)
	c.mu.Lock()
	c.memo[key] = score
	c.mu.Unlock()
	return score
}

// Len reports the number of memoized pairs
func (c *Cached) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.memo)
}
