// Package bucket groups rent-roll and lease records by property address.
package bucket

import (
	"fmt"

	"github.com/leasematch/internal/address"
	"github.com/leasematch/internal/document"
)

// Bucket holds the records believed to describe one property
type Bucket struct {
	Address   string
	RentRolls []document.Record
	Leases    []document.Record
}

// Set is an insertion-ordered collection of buckets keyed by address
type Set struct {
	order   []string
	buckets map[string]*Bucket
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{buckets: make(map[string]*Bucket)}
}

// Get returns the bucket for addr, or nil
func (s *Set) Get(addr string) *Bucket {
	return s.buckets[addr]
}

// Ensure returns the bucket for addr, creating it at the end of the order
func (s *Set) Ensure(addr string) *Bucket {
	if b, ok := s.buckets[addr]; ok {
		return b
	}
	b := &Bucket{Address: addr}
	s.buckets[addr] = b
	s.order = append(s.order, addr)
	return b
}

// All returns the buckets in insertion order
func (s *Set) All() []*Bucket {
	all := make([]*Bucket, 0, len(s.order))
	for _, addr := range s.order {
		all = append(all, s.buckets[addr])
	}
	return all
}

// Keys returns the bucket addresses in insertion order
func (s *Set) Keys() []string {
	return append([]string(nil), s.order...)
}

// Len returns the number of buckets
func (s *Set) Len() int {
	return len(s.order)
}

// Comparer decides whether two addresses denote the same property
type Comparer interface {
	Compare(a, b string) (bool, error)
}

// Evaluator explains an address comparison with a score
type Evaluator interface {
	Evaluate(a, b string) (address.Decision, error)
}

// Scorer both decides and explains address comparisons
type Scorer interface {
	Comparer
	Evaluator
}

// Strategy assigns records to buckets
type Strategy interface {
	Build(rentRolls, leases []document.Record) *Set
}

// Strategy names accepted by NewStrategy
const (
	StrategyFirstMatch = "first_match"
	StrategyBestMatch  = "best_match"
)

// NewStrategy builds the named strategy around comparator
func NewStrategy(name string, comparator Scorer, debugMode bool) (Strategy, error) {
	switch name {
	case "", StrategyFirstMatch:
		return &FirstMatch{Comparer: comparator, Debug: debugMode}, nil
	case StrategyBestMatch:
		return &BestMatch{Evaluator: comparator, Debug: debugMode}, nil
	}
	return nil, fmt.Errorf("unknown bucket strategy %q", name)
}

// seedRentRolls buckets every rent roll under its own declared address.
// Rent rolls are never merged with each other.
func seedRentRolls(rentRolls []document.Record) *Set {
	set := NewSet()
	for _, rr := range rentRolls {
		b := set.Ensure(rr.Address())
		b.RentRolls = append(b.RentRolls, rr)
	}
	return set
}
