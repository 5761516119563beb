package bucket

import (
	"log"

	"github.com/leasematch/internal/debug"
	"github.com/leasematch/internal/document"
)

// FirstMatch places each lease in the first existing bucket, in insertion
// order, whose address compares equal. A lease is never reconsidered once
// placed. Unmatched leases open a new bucket under their own address.
type FirstMatch struct {
	Comparer Comparer
	Debug    bool
}

// Build implements Strategy
func (fm *FirstMatch) Build(rentRolls, leases []document.Record) *Set {
	set := seedRentRolls(rentRolls)

	for _, lease := range leases {
		leaseAddr := lease.Address()
		target := ""
		found := false
		for _, key := range set.Keys() {
			same, err := fm.Comparer.Compare(leaseAddr, key)
			if err != nil {
				log.Printf("Warning: cannot compare lease %s address %q with %q: %v", lease.Key, leaseAddr, key, err)
				continue
			}
			if same {
				target, found = key, true
				break
			}
		}
		if !found {
			target = leaseAddr
		}
		debug.Output(fm.Debug, "Lease %s (%q) -> bucket %q", lease.Key, leaseAddr, target)

		b := set.Ensure(target)
		b.Leases = append(b.Leases, lease)
	}
	return set
}

// BestMatch places each lease in the matching bucket with the highest score.
// Ties keep the earlier bucket.
type BestMatch struct {
	Evaluator Evaluator
	Debug     bool
}

// Build implements Strategy
func (bm *BestMatch) Build(rentRolls, leases []document.Record) *Set {
	set := seedRentRolls(rentRolls)

	for _, lease := range leases {
		leaseAddr := lease.Address()
		target := leaseAddr
		bestScore := -1.0
		for _, key := range set.Keys() {
			decision, err := bm.Evaluator.Evaluate(leaseAddr, key)
			if err != nil {
				log.Printf("Warning: cannot compare lease %s address %q with %q: %v", lease.Key, leaseAddr, key, err)
				continue
			}
			if decision.Match && decision.Score > bestScore {
				target, bestScore = key, decision.Score
			}
		}
		debug.Output(bm.Debug, "Lease %s (%q) -> bucket %q (score %.3f)", lease.Key, leaseAddr, target, bestScore)

		b := set.Ensure(target)
		b.Leases = append(b.Leases, lease)
	}
	return set
}
